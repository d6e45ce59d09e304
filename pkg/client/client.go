package client

import (
	"context"
	"time"

	"stayease/pkg/model"
)

// Client groups the upstream API clients that share one transport.
type Client struct {
	HTTP       *HttpClient
	Bookings   *BookingClient
	Properties *PropertyClient
	Rooms      *RoomClient
	Auth       *AuthClient
	Inquiries  *InquiryClient
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	httpClient := NewHttpClient(baseURL, timeout, opts...)
	return &Client{
		HTTP:       httpClient,
		Bookings:   NewBookingClient(httpClient),
		Properties: NewPropertyClient(httpClient),
		Rooms:      NewRoomClient(httpClient),
		Auth:       NewAuthClient(httpClient),
		Inquiries:  NewInquiryClient(httpClient),
	}
}

// Ping checks that the API answers a public read.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Properties.Search(ctx, model.PropertySearch{Page: 0, Size: 1})
	return err
}

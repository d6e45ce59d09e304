package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	apperrors "stayease/pkg/errors"
	"stayease/pkg/model"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(httpClient *HttpClient) *BookingClient {
	return &BookingClient{
		httpClient: httpClient,
	}
}

func (c *BookingClient) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	booking, err := call[model.Booking](ctx, c.httpClient, http.MethodPost, "/bookings", req, true)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperrors.Transport("upstream did not return the created booking", nil)
	}
	return booking, nil
}

func (c *BookingClient) ListMine(ctx context.Context, page, size int) (*model.Page[model.Booking], error) {
	return getJSON[model.Page[model.Booking]](ctx, c.httpClient, "/bookings?"+pageQuery(page, size).Encode())
}

func (c *BookingClient) Get(ctx context.Context, id int64) (*model.Booking, error) {
	return getJSON[model.Booking](ctx, c.httpClient, "/bookings/"+strconv.FormatInt(id, 10))
}

func (c *BookingClient) Cancel(ctx context.Context, id int64) error {
	path := "/bookings/" + strconv.FormatInt(id, 10) + "/cancel"
	_, err := call[struct{}](ctx, c.httpClient, http.MethodPost, path, nil, true)
	return err
}

func (c *BookingClient) ListOwner(ctx context.Context, filter model.BookingFilter) (*model.Page[model.Booking], error) {
	q := pageQuery(filter.Page, filter.Size)
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	return getJSON[model.Page[model.Booking]](ctx, c.httpClient, "/owner/bookings?"+q.Encode())
}

func (c *BookingClient) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) (*model.Booking, error) {
	q := url.Values{}
	q.Set("status", string(status))
	path := "/owner/bookings/" + strconv.FormatInt(id, 10) + "/status?" + q.Encode()

	booking, err := call[model.Booking](ctx, c.httpClient, http.MethodPatch, path, nil, true)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperrors.Transport("upstream did not return the updated booking", nil)
	}
	return booking, nil
}

func pageQuery(page, size int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return q
}

package client

import (
	"context"
	"net/http"

	apperrors "stayease/pkg/errors"
	"stayease/pkg/model"
)

// InquiryUnavailableMessage is shown when the backend has no inquiry endpoint.
const InquiryUnavailableMessage = "Inquiry endpoint not available in backend yet."

type InquiryClient struct {
	httpClient *HttpClient
}

func NewInquiryClient(httpClient *HttpClient) *InquiryClient {
	return &InquiryClient{
		httpClient: httpClient,
	}
}

// Create posts an inquiry. A 404 means the backend does not offer inquiries
// and is reported as a feature-unavailable error.
func (c *InquiryClient) Create(ctx context.Context, req *model.InquiryRequest) error {
	resp, err := c.httpClient.POST(ctx, "/inquiries", req)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNotFound {
		return apperrors.FeatureUnavailable(InquiryUnavailableMessage)
	}
	_, err = decode[struct{}](resp, true)
	return err
}

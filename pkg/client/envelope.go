package client

import (
	"context"
	"net/http"

	apperrors "stayease/pkg/errors"
	"stayease/pkg/model"
)

// call issues the request and unwraps the response envelope. mutation marks
// writes so that a 4xx rejection surfaces as a conflict.
func call[T any](ctx context.Context, c *HttpClient, method, path string, body any, mutation bool) (*T, error) {
	resp, err := c.request(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	return decode[T](resp, mutation)
}

func decode[T any](resp *Response, mutation bool) (*T, error) {
	if !resp.OK() {
		return nil, apperrors.FromUpstream(resp.StatusCode, GetErrorMessage(resp), mutation)
	}

	if len(resp.Body) == 0 {
		return nil, nil
	}

	var envelope model.APIResponse[T]
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, apperrors.Transport("could not decode upstream response", err)
	}
	if !envelope.Success {
		return nil, apperrors.FromUpstream(http.StatusBadGateway, envelope.Message, mutation)
	}
	return envelope.Data, nil
}

func getJSON[T any](ctx context.Context, c *HttpClient, path string) (*T, error) {
	out, err := call[T](ctx, c, http.MethodGet, path, nil, false)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, apperrors.Transport("upstream response had no data", nil)
	}
	return out, nil
}

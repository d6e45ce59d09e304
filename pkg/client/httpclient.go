package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "stayease/pkg/errors"
	"stayease/pkg/logger"
	"stayease/pkg/middleware"

	"github.com/google/uuid"
)

// TokenSource supplies the bearer credential for each request. An empty
// token sends the request unauthenticated.
type TokenSource interface {
	Token() string
}

// UnauthorizedNotifier is told about every 401/403 the upstream returns.
type UnauthorizedNotifier interface {
	NotifyUnauthorized(status int)
}

type HttpClient struct {
	BaseURL    string
	HTTPClient *http.Client

	tokens   TokenSource
	notifier UnauthorizedNotifier
	log      *logger.Logger
}

type Option func(*HttpClient)

func WithTokenSource(tokens TokenSource) Option {
	return func(c *HttpClient) {
		c.tokens = tokens
	}
}

func WithUnauthorizedNotifier(notifier UnauthorizedNotifier) Option {
	return func(c *HttpClient) {
		c.notifier = notifier
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(c *HttpClient) {
		c.log = log
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HttpClient) {
		c.HTTPClient = hc
	}
}

func NewHttpClient(baseURL string, timeout time.Duration, opts ...Option) *HttpClient {
	c := &HttpClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Response struct {
	*http.Response
	Body []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (c *HttpClient) GET(ctx context.Context, path string) (*Response, error) {
	return c.request(ctx, http.MethodGet, path, nil)
}

func (c *HttpClient) POST(ctx context.Context, path string, body any) (*Response, error) {
	return c.request(ctx, http.MethodPost, path, body)
}

func (c *HttpClient) PATCH(ctx context.Context, path string, body any) (*Response, error) {
	return c.request(ctx, http.MethodPatch, path, body)
}

func (c *HttpClient) request(ctx context.Context, method, path string, body any) (*Response, error) {
	var reqBody io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Internal("failed to marshal request body", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	return c.do(ctx, method, path, reqBody, body != nil)
}

func (c *HttpClient) do(ctx context.Context, method, path string, reqBody io.Reader, hasBody bool) (*Response, error) {
	url := c.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, apperrors.Internal("failed to create request", err)
	}

	requestID := middleware.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(middleware.HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log.Warn("Upstream request failed",
			"request_id", requestID,
			"method", method,
			"path", path,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return nil, apperrors.Transport(err.Error(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Transport("failed to read response body", err)
	}

	c.log.Debug("Upstream request completed",
		"request_id", requestID,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) && c.notifier != nil {
		c.notifier.NotifyUnauthorized(resp.StatusCode)
	}

	return &Response{
		Response: resp,
		Body:     respBody,
	}, nil
}

// GetErrorMessage extracts the server's message from an error body, or ""
// when the body carries none.
func GetErrorMessage(resp *Response) string {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := resp.DecodeJSON(&errResp); err != nil {
		return ""
	}

	if errResp.Message != "" {
		return errResp.Message
	}
	return errResp.Error
}

func (r *Response) String() string {
	return fmt.Sprintf("%s %s -> %d: %s", r.Request.Method, r.Request.URL.Path, r.StatusCode, string(r.Body))
}

package client

import (
	"context"
	"net/http"

	apperrors "stayease/pkg/errors"
	"stayease/pkg/model"
)

type AuthClient struct {
	httpClient *HttpClient
}

func NewAuthClient(httpClient *HttpClient) *AuthClient {
	return &AuthClient{
		httpClient: httpClient,
	}
}

func (c *AuthClient) Login(ctx context.Context, req *model.LoginRequest) (*model.JwtResponse, error) {
	jwt, err := call[model.JwtResponse](ctx, c.httpClient, http.MethodPost, "/auth/login", req, false)
	if err != nil {
		return nil, err
	}
	if jwt == nil || jwt.AccessToken == "" {
		return nil, apperrors.Transport("upstream did not return an access token", nil)
	}
	return jwt, nil
}

func (c *AuthClient) Me(ctx context.Context) (*model.User, error) {
	return getJSON[model.User](ctx, c.httpClient, "/auth/me")
}

// Register creates an account. RoleOwner selects the owner sign-up; any
// other role creates a seeker.
func (c *AuthClient) Register(ctx context.Context, req *model.RegisterRequest, role model.Role) (*model.User, error) {
	path := "/auth/register"
	if role == model.RoleOwner {
		path = "/auth/register/owner"
	}
	user, err := call[model.User](ctx, c.httpClient, http.MethodPost, path, req, true)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.Transport("upstream did not return the registered user", nil)
	}
	return user, nil
}

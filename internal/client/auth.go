package client

import (
	"context"
	"net/http"

	"github.com/realspace/realspace/internal/dto"
)

// Register creates an account. POST auth/register.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	return getOne[dto.AuthResponse](ctx, c, http.MethodPost, authNone, req, "auth", "register")
}

// Login exchanges credentials for a token. POST auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	req := dto.LoginRequest{Email: email, Password: password}
	return getOne[dto.AuthResponse](ctx, c, http.MethodPost, authNone, req, "auth", "login")
}

// CurrentUser returns the user the token belongs to. GET auth/me.
func (c *Client) CurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	return getOne[dto.UserResponse](ctx, c, http.MethodGet, authRequired, nil, "auth", "me")
}

package client

import (
	"context"
	"net/http"

	"github.com/realspace/realspace/internal/dto"
)

// GetUser fetches a public profile. GET users/{id}.
func (c *Client) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	return getOne[dto.UserResponse](ctx, c, http.MethodGet, authOptional, nil, "users", id)
}

// GetUserPosts returns a user's posts, newest first. GET users/{id}/posts.
func (c *Client) GetUserPosts(ctx context.Context, userID string) ([]dto.PostResponse, error) {
	return getList[dto.PostResponse](ctx, c, authRequired, "users", userID, "posts")
}

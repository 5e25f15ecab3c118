package client

import (
	"context"
	"net/http"

	"github.com/realspace/realspace/internal/dto"
)

// ListPosts returns the feed, newest first. GET posts.
func (c *Client) ListPosts(ctx context.Context) ([]dto.PostResponse, error) {
	return getList[dto.PostResponse](ctx, c, authRequired, "posts")
}

// GetPost fetches one post. GET posts/{id}.
func (c *Client) GetPost(ctx context.Context, id string) (*dto.PostResponse, error) {
	return getOne[dto.PostResponse](ctx, c, http.MethodGet, authRequired, nil, "posts", id)
}

// CreatePost publishes an "action + subject" update. POST posts.
func (c *Client) CreatePost(ctx context.Context, req dto.CreatePostRequest) (*dto.PostResponse, error) {
	return getOne[dto.PostResponse](ctx, c, http.MethodPost, authRequired, req, "posts")
}

// UpdatePost changes a post's content or image. PUT posts/{id}.
func (c *Client) UpdatePost(ctx context.Context, id string, req dto.UpdatePostRequest) (*dto.PostResponse, error) {
	return getOne[dto.PostResponse](ctx, c, http.MethodPut, authRequired, req, "posts", id)
}

// DeletePost removes a post. DELETE posts/{id}, expects 204.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.deleteResource(ctx, "posts", id)
}

// LikePost adds the current user to the post's like set. POST posts/{id}/like.
func (c *Client) LikePost(ctx context.Context, id string) (*dto.PostResponse, error) {
	return getOne[dto.PostResponse](ctx, c, http.MethodPost, authRequired, nil, "posts", id, "like")
}

// UnlikePost removes the current user from the like set. DELETE posts/{id}/like.
func (c *Client) UnlikePost(ctx context.Context, id string) (*dto.PostResponse, error) {
	return getOne[dto.PostResponse](ctx, c, http.MethodDelete, authRequired, nil, "posts", id, "like")
}

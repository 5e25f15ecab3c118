package client

import (
	"context"
	"net/http"

	"github.com/realspace/realspace/internal/dto"
)

// ListItems returns the current user's wishlist. GET list.
func (c *Client) ListItems(ctx context.Context) ([]dto.ListItemResponse, error) {
	return getList[dto.ListItemResponse](ctx, c, authRequired, "list")
}

// CreateListItem adds to the wishlist. POST list.
func (c *Client) CreateListItem(ctx context.Context, action, subject string, isPublic bool) (*dto.ListItemResponse, error) {
	req := dto.CreateListItemRequest{Action: action, Subject: subject, IsPublic: isPublic}
	return getOne[dto.ListItemResponse](ctx, c, http.MethodPost, authRequired, req, "list")
}

// DeleteListItem removes a wishlist entry. DELETE list/{id}, expects 204.
func (c *Client) DeleteListItem(ctx context.Context, id string) error {
	return c.deleteResource(ctx, "list", id)
}

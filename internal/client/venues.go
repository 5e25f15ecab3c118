package client

import (
	"context"
	"net/http"

	"github.com/realspace/realspace/internal/dto"
)

// ListEntities returns every venue. GET entities.
func (c *Client) ListEntities(ctx context.Context) ([]dto.EntityResponse, error) {
	return getList[dto.EntityResponse](ctx, c, authOptional, "entities")
}

// GetEntity fetches one venue. GET entities/{id}.
func (c *Client) GetEntity(ctx context.Context, id string) (*dto.EntityResponse, error) {
	return getOne[dto.EntityResponse](ctx, c, http.MethodGet, authOptional, nil, "entities", id)
}

// CreateEntity adds a venue. POST entities.
func (c *Client) CreateEntity(ctx context.Context, req dto.CreateEntityRequest) (*dto.EntityResponse, error) {
	return getOne[dto.EntityResponse](ctx, c, http.MethodPost, authRequired, req, "entities")
}

// UpdateEntity edits a venue. PUT entities/{id}.
func (c *Client) UpdateEntity(ctx context.Context, id string, req dto.UpdateEntityRequest) (*dto.EntityResponse, error) {
	return getOne[dto.EntityResponse](ctx, c, http.MethodPut, authRequired, req, "entities", id)
}

// ListEvents returns every event. GET events.
func (c *Client) ListEvents(ctx context.Context) ([]dto.EventResponse, error) {
	return getList[dto.EventResponse](ctx, c, authOptional, "events")
}

// GetEvent fetches one event. GET events/{id}.
func (c *Client) GetEvent(ctx context.Context, id string) (*dto.EventResponse, error) {
	return getOne[dto.EventResponse](ctx, c, http.MethodGet, authOptional, nil, "events", id)
}

// CreateEvent schedules an event at a venue. POST events.
func (c *Client) CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*dto.EventResponse, error) {
	return getOne[dto.EventResponse](ctx, c, http.MethodPost, authRequired, req, "events")
}

// UpdateEvent edits an event. PUT events/{id}.
func (c *Client) UpdateEvent(ctx context.Context, id string, req dto.UpdateEventRequest) (*dto.EventResponse, error) {
	return getOne[dto.EventResponse](ctx, c, http.MethodPut, authRequired, req, "events", id)
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/model"
	"github.com/realspace/realspace/internal/repository"
)

// VenueService manages entities (venues) and the events they host. Any
// signed-in user may create or edit either.
type VenueService struct {
	repo   repository.VenueRepository
	logger *slog.Logger
}

func NewVenueService(repo repository.VenueRepository, logger *slog.Logger) *VenueService {
	return &VenueService{repo: repo, logger: logger}
}

func (s *VenueService) ListEntities(ctx context.Context) ([]dto.EntityResponse, error) {
	entities, err := s.repo.ListEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/venue: listing entities: %w", err)
	}
	out := make([]dto.EntityResponse, 0, len(entities))
	for i := range entities {
		out = append(out, entityResponse(&entities[i]))
	}
	return out, nil
}

func (s *VenueService) GetEntity(ctx context.Context, id string) (*dto.EntityResponse, error) {
	n, err := s.repo.GetEntity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/venue: fetching entity %s: %w", id, err)
	}
	resp := entityResponse(n)
	return &resp, nil
}

func (s *VenueService) CreateEntity(ctx context.Context, req dto.CreateEntityRequest) (*dto.EntityResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	entity := &model.Entity{Name: req.Name, Address: req.Address, ImageURL: req.ImageURL}
	if err := s.repo.CreateEntity(ctx, entity); err != nil {
		return nil, fmt.Errorf("service/venue: creating entity: %w", err)
	}
	s.logger.Info("entity created", slog.String("entityID", entity.ID))
	resp := entityResponse(entity)
	return &resp, nil
}

// UpdateEntity applies the non-nil fields of req.
func (s *VenueService) UpdateEntity(ctx context.Context, id string, req dto.UpdateEntityRequest) (*dto.EntityResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	entity, err := s.repo.GetEntity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/venue: fetching entity %s: %w", id, err)
	}
	if req.Name != nil {
		entity.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		entity.Address = strings.TrimSpace(*req.Address)
	}
	if req.ImageURL != nil {
		entity.ImageURL = req.ImageURL
	}
	if err := s.repo.UpdateEntity(ctx, entity); err != nil {
		return nil, fmt.Errorf("service/venue: updating entity %s: %w", id, err)
	}
	return s.GetEntity(ctx, id)
}

func (s *VenueService) ListEvents(ctx context.Context) ([]dto.EventResponse, error) {
	views, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/venue: listing events: %w", err)
	}
	out := make([]dto.EventResponse, 0, len(views))
	for i := range views {
		out = append(out, eventResponse(&views[i]))
	}
	return out, nil
}

func (s *VenueService) GetEvent(ctx context.Context, id string) (*dto.EventResponse, error) {
	v, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/venue: fetching event %s: %w", id, err)
	}
	resp := eventResponse(v)
	return &resp, nil
}

// CreateEvent schedules an event at req.EntityID, which must exist.
func (s *VenueService) CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*dto.EventResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	event := &model.Event{
		EntityID:    req.EntityID,
		Name:        req.Name,
		Date:        req.Date.Time,
		Description: req.EventDescription,
		Link:        req.Link,
		ImageURL:    req.ImageURL,
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("service/venue: creating event: %w", err)
	}
	s.logger.Info("event created",
		slog.String("eventID", event.ID),
		slog.String("entityID", event.EntityID),
	)
	return s.GetEvent(ctx, event.ID)
}

// UpdateEvent applies the non-nil fields of req. The hosting entity is fixed.
func (s *VenueService) UpdateEvent(ctx context.Context, id string, req dto.UpdateEventRequest) (*dto.EventResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	current, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/venue: fetching event %s: %w", id, err)
	}
	event := current.Event
	if req.Name != nil {
		event.Name = strings.TrimSpace(*req.Name)
	}
	if req.Date != nil {
		event.Date = req.Date.Time
	}
	if req.EventDescription != nil {
		event.Description = req.EventDescription
	}
	if req.Link != nil {
		event.Link = req.Link
	}
	if req.ImageURL != nil {
		event.ImageURL = req.ImageURL
	}
	if err := s.repo.UpdateEvent(ctx, &event); err != nil {
		return nil, fmt.Errorf("service/venue: updating event %s: %w", id, err)
	}
	return s.GetEvent(ctx, id)
}

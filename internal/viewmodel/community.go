package viewmodel

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/realspace/realspace/internal/dto"
)

// CommunityAPI is the part of the HTTP client the community screen uses.
type CommunityAPI interface {
	ListEvents(ctx context.Context) ([]dto.EventResponse, error)
	CreateEvent(ctx context.Context, req dto.CreateEventRequest) (*dto.EventResponse, error)
	ListEntities(ctx context.Context) ([]dto.EntityResponse, error)
	CreateEntity(ctx context.Context, req dto.CreateEntityRequest) (*dto.EntityResponse, error)
}

// EventForm is the event composer. EntityID is the venue picked from Entities.
type EventForm struct {
	Name        string
	Date        time.Time
	Description string
	EntityID    string
}

// EntityForm is the venue composer.
type EntityForm struct {
	Name     string
	Address  string
	ImageURL string
}

// CommunityViewModel backs the community screen: upcoming events, plus the
// venues an event can be created at.
type CommunityViewModel struct {
	collection[dto.EventResponse]
	entities []dto.EntityResponse
	api      CommunityAPI
}

// NewCommunityViewModel creates a CommunityViewModel.
func NewCommunityViewModel(api CommunityAPI, logger *slog.Logger) *CommunityViewModel {
	vm := &CommunityViewModel{api: api}
	vm.init(logger)
	return vm
}

// Entities returns a snapshot of the loaded venues.
func (vm *CommunityViewModel) Entities() []dto.EntityResponse {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return slices.Clone(vm.entities)
}

// LoadEvents replaces the events with the server's.
func (vm *CommunityViewModel) LoadEvents(ctx context.Context) bool {
	return load(&vm.base, &vm.items, "Error loading events", func() ([]dto.EventResponse, error) {
		return vm.api.ListEvents(ctx)
	})
}

// LoadEntities replaces the venues with the server's.
func (vm *CommunityViewModel) LoadEntities(ctx context.Context) bool {
	return load(&vm.base, &vm.entities, "Error loading entities", func() ([]dto.EntityResponse, error) {
		return vm.api.ListEntities(ctx)
	})
}

// CanCreateEvent reports whether form has a name and a venue.
func (f EventForm) CanCreateEvent() bool {
	return strings.TrimSpace(f.Name) != "" && f.EntityID != ""
}

// CreateEvent schedules an event. A form without a name or a venue is ignored.
// A blank description is sent as none. A zero Date means now.
func (vm *CommunityViewModel) CreateEvent(ctx context.Context, form EventForm) bool {
	if !form.CanCreateEvent() {
		return false
	}
	date := form.Date
	if date.IsZero() {
		date = time.Now()
	}

	req := dto.CreateEventRequest{
		Name:             strings.TrimSpace(form.Name),
		Date:             dto.NewTimestamp(date),
		EntityID:         form.EntityID,
		EventDescription: dto.StringPtr(strings.TrimSpace(form.Description)),
	}
	if validate.Struct(req) != nil {
		return false
	}
	return mutate(&vm.base, &vm.items, OpCreate, "Failed to create event", func() (func([]dto.EventResponse) []dto.EventResponse, error) {
		event, err := vm.api.CreateEvent(ctx, req)
		if err != nil {
			return nil, err
		}
		return prepend(*event), nil
	})
}

// CreateEntity adds a venue to the front of Entities.
func (vm *CommunityViewModel) CreateEntity(ctx context.Context, form EntityForm) bool {
	req := dto.CreateEntityRequest{
		Name:     strings.TrimSpace(form.Name),
		Address:  strings.TrimSpace(form.Address),
		ImageURL: dto.StringPtr(strings.TrimSpace(form.ImageURL)),
	}
	if validate.Struct(req) != nil {
		return false
	}
	return mutate(&vm.base, &vm.entities, OpCreate, "Failed to create entity", func() (func([]dto.EntityResponse) []dto.EntityResponse, error) {
		entity, err := vm.api.CreateEntity(ctx, req)
		if err != nil {
			return nil, err
		}
		return prepend(*entity), nil
	})
}

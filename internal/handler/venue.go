package handler

import (
	"log/slog"
	"net/http"

	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/service"
)

// VenueHandler serves entities/... and events/.... Reads are public.
type VenueHandler struct {
	venues *service.VenueService
	logger *slog.Logger
}

func NewVenueHandler(venues *service.VenueService, logger *slog.Logger) *VenueHandler {
	return &VenueHandler{venues: venues, logger: logger}
}

func (h *VenueHandler) HandleListEntities(w http.ResponseWriter, r *http.Request) {
	entities, err := h.venues.ListEntities(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities)
}

func (h *VenueHandler) HandleGetEntity(w http.ResponseWriter, r *http.Request) {
	entity, err := h.venues.GetEntity(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entity)
}

func (h *VenueHandler) HandleCreateEntity(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	entity, err := h.venues.CreateEntity(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entity)
}

func (h *VenueHandler) HandleUpdateEntity(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateEntityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	entity, err := h.venues.UpdateEntity(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entity)
}

func (h *VenueHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.venues.ListEvents(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *VenueHandler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.venues.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *VenueHandler) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	event, err := h.venues.CreateEvent(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (h *VenueHandler) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	event, err := h.venues.UpdateEvent(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

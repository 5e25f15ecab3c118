package handler

import (
	"log/slog"
	"net/http"

	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/service"
)

// ListHandler serves list/..., the caller's own wishlist.
type ListHandler struct {
	items  *service.ListItemService
	logger *slog.Logger
}

func NewListHandler(items *service.ListItemService, logger *slog.Logger) *ListHandler {
	return &ListHandler{items: items, logger: logger}
}

func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context(), viewer(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ListHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateListItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	item, err := h.items.Create(r.Context(), viewer(r), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ListHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.items.Delete(r.Context(), viewer(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeNoContent(w)
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/realspace/realspace/internal/service"
)

// CommentHandler serves DELETE comments/{id}. Listing and creating comments
// live under their parent (PostHandler, TopicHandler).
type CommentHandler struct {
	comments *service.CommentService
	logger   *slog.Logger
}

func NewCommentHandler(comments *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: logger}
}

func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.comments.Delete(r.Context(), viewer(r), id); err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("comment deleted", slog.String("commentID", id))
	writeNoContent(w)
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/service"
)

// PostHandler serves posts/..., including a post's likes and comments.
// Every route requires a bearer token.
type PostHandler struct {
	posts    *service.PostService
	comments *service.CommentService
	logger   *slog.Logger
}

func NewPostHandler(posts *service.PostService, comments *service.CommentService, logger *slog.Logger) *PostHandler {
	return &PostHandler{posts: posts, comments: comments, logger: logger}
}

// HandleList -> GET posts?limit=&offset=
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context(), viewer(r), listOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.posts.Create(r.Context(), viewer(r), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Get(r.Context(), r.PathValue("id"), viewer(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.posts.Update(r.Context(), viewer(r), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.Delete(r.Context(), viewer(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeNoContent(w)
}

// HandleLike -> POST posts/{id}/like, answers the updated post.
func (h *PostHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Like(r.Context(), viewer(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// HandleUnlike -> DELETE posts/{id}/like. Unlike a resource delete, this
// answers 200 with the updated post.
func (h *PostHandler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Unlike(r.Context(), viewer(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListForPost(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *PostHandler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	comment, err := h.comments.CreateForPost(r.Context(), viewer(r), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

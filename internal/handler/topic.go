package handler

import (
	"log/slog"
	"net/http"

	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/service"
)

// TopicHandler serves topics/... and topicposts/....
//
// Reads are public. A bearer token, when present, personalises
// isLikedByCurrentUser. Writes require one.
type TopicHandler struct {
	topics   *service.TopicService
	comments *service.CommentService
	logger   *slog.Logger
}

func NewTopicHandler(topics *service.TopicService, comments *service.CommentService, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{topics: topics, comments: comments, logger: logger}
}

func (h *TopicHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topics.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

func (h *TopicHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTopicRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	topic, err := h.topics.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, topic)
}

func (h *TopicHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	topic, err := h.topics.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

// HandleListPosts -> GET topics/{id}/posts?limit=&offset=
func (h *TopicHandler) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.topics.ListPosts(r.Context(), r.PathValue("id"), viewer(r), listOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *TopicHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTopicPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.topics.CreatePost(r.Context(), viewer(r), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *TopicHandler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.topics.GetPost(r.Context(), r.PathValue("id"), viewer(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *TopicHandler) HandleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTopicPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.topics.UpdatePost(r.Context(), viewer(r), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *TopicHandler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.topics.DeletePost(r.Context(), viewer(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeNoContent(w)
}

func (h *TopicHandler) HandleLikePost(w http.ResponseWriter, r *http.Request) {
	post, err := h.topics.LikePost(r.Context(), viewer(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *TopicHandler) HandleUnlikePost(w http.ResponseWriter, r *http.Request) {
	post, err := h.topics.UnlikePost(r.Context(), viewer(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *TopicHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListForTopicPost(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *TopicHandler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	comment, err := h.comments.CreateForTopicPost(r.Context(), viewer(r), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/service"
)

// AuthHandler serves registration, login and user profiles.
//
//   - HandleRegister -> POST auth/register
//   - HandleLogin    -> POST auth/login
//   - HandleMe       -> GET  auth/me       (bearer required)
//   - HandleGetUser  -> GET  users/{id}
//   - HandleGetUserPosts -> GET users/{id}/posts (bearer required)
type AuthHandler struct {
	auth   *service.AuthService
	posts  *service.PostService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, posts *service.PostService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, posts: posts, logger: logger}
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.CurrentUser(r.Context(), viewer(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleGetUserPosts answers 404 for an unknown user rather than an empty list.
func (h *AuthHandler) HandleGetUserPosts(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if _, err := h.auth.GetUser(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}

	posts, err := h.posts.ListByAuthor(r.Context(), userID, viewer(r), listOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

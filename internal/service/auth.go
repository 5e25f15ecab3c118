package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/realspace/realspace/internal/apperror"
	"github.com/realspace/realspace/internal/auth"
	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/model"
	"github.com/realspace/realspace/internal/repository"
)

// invalidCredentials is deliberately the same for an unknown email and a wrong
// password.
const invalidCredentials = "invalid email or password"

// AuthService registers users, checks passwords and issues tokens.
//
//	AuthHandler (HTTP) -> AuthService -> UserRepository (DB)
//	                                  -> TokenService (JWT)
//	                                  -> PasswordService (bcrypt)
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates an account and signs the new user in. A username or email
// already in use is apperror.ErrUnprocessable ("username taken").
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{
		Username:     req.Username,
		DisplayName:  req.DisplayName,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: registering %q: %w", req.Username, err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)
	return s.issue(user)
}

// Login checks email and password. Both an unknown email and a wrong password
// are apperror.ErrUnauthorized with the same reason.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.Unauthorized(invalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("service/auth: looking up %q: %w", req.Email, err)
	}

	if err := s.passwords.Verify(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("login failed", slog.String("userID", user.ID))
			return nil, apperror.Unauthorized(invalidCredentials)
		}
		return nil, fmt.Errorf("service/auth: verifying password: %w", err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))
	return s.issue(user)
}

// GetUser returns the public profile of id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", id, err)
	}
	resp := userResponse(user)
	return &resp, nil
}

// CurrentUser returns the token bearer's profile. A token for a user that has
// since been deleted is apperror.ErrUnauthorized, not not-found.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	resp, err := s.GetUser(ctx, userID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.Unauthorized("Unauthorized")
	}
	return resp, err
}

func (s *AuthService) issue(user *model.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}
	return &dto.AuthResponse{Token: token, User: userResponse(user)}, nil
}

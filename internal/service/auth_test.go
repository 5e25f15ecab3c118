package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/realspace/realspace/internal/apperror"
	"github.com/realspace/realspace/internal/auth"
	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/model"
)

// fakeUserRepo is an in-memory repository.UserRepository with the same
// uniqueness rules as the sqlite store.
type fakeUserRepo struct {
	users  map[string]*model.User
	nextID int
	// set to simulate a database failure
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if u.Username == user.Username {
			return apperror.Taken("username")
		}
		if u.Email == user.Email {
			return apperror.Taken("email")
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now().UTC()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	out := *u
	return &out, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return apperror.NotFound("user", id)
	}
	delete(f.users, id)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!", time.Hour)
	require.NoError(t, err)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, tokens, auth.NewPasswordServiceForTest(bcrypt.MinCost), discardLogger())
	return svc, repo, tokens
}

func aliceRegistration() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username:    "alice",
		DisplayName: "Alice",
		Email:       "a@x.com",
		Password:    "secret1",
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, repo, tokens := newTestAuthService(t)

	resp, err := svc.Register(context.Background(), aliceRegistration())
	require.NoError(t, err)

	assert.Equal(t, "alice", resp.User.Username)
	assert.NotEmpty(t, resp.User.ID)

	userID, err := tokens.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)

	stored := repo.users[resp.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash, "password must be hashed")
}

func TestAuthService_Register_Errors(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*dto.RegisterRequest)
		wantErr    error
		wantReason string
	}{
		{
			name:       "username taken",
			mutate:     func(r *dto.RegisterRequest) { r.Email = "other@x.com" },
			wantErr:    apperror.ErrUnprocessable,
			wantReason: "username taken",
		},
		{
			name:       "email taken, case-insensitive",
			mutate:     func(r *dto.RegisterRequest) { r.Username = "alice2"; r.Email = "A@X.com" },
			wantErr:    apperror.ErrUnprocessable,
			wantReason: "email taken",
		},
		{
			name:    "short password",
			mutate:  func(r *dto.RegisterRequest) { r.Username = "bob"; r.Email = "b@x.com"; r.Password = "123" },
			wantErr: apperror.ErrValidation,
		},
		{
			name:    "bad email",
			mutate:  func(r *dto.RegisterRequest) { r.Username = "bob"; r.Email = "nope" },
			wantErr: apperror.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestAuthService(t)
			_, err := svc.Register(context.Background(), aliceRegistration())
			require.NoError(t, err)

			req := aliceRegistration()
			tt.mutate(&req)
			_, err = svc.Register(context.Background(), req)

			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantReason != "" {
				var appErr *apperror.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, tt.wantReason, appErr.Message)
			}
		})
	}
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	repo.createErr = errors.New("disk full")

	_, err := svc.Register(context.Background(), aliceRegistration())
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperror.ErrUnprocessable)
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	registered, err := svc.Register(context.Background(), aliceRegistration())
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"correct", "a@x.com", "secret1", nil},
		{"email is case-insensitive", " A@x.com ", "secret1", nil},
		{"wrong password", "a@x.com", "secret2", apperror.ErrUnauthorized},
		{"unknown email", "z@x.com", "secret1", apperror.ErrUnauthorized},
		{"invalid email", "nope", "secret1", apperror.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.User.ID, resp.User.ID)
			assert.NotEmpty(t, resp.Token)
		})
	}
}

func TestAuthService_Login_SameReasonForUnknownAndWrong(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	_, err := svc.Register(context.Background(), aliceRegistration())
	require.NoError(t, err)

	_, wrong := svc.Login(context.Background(), dto.LoginRequest{Email: "a@x.com", Password: "secret2"})
	_, unknown := svc.Login(context.Background(), dto.LoginRequest{Email: "z@x.com", Password: "secret1"})
	assert.Equal(t, wrong.Error(), unknown.Error())
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	registered, err := svc.Register(context.Background(), aliceRegistration())
	require.NoError(t, err)

	me, err := svc.CurrentUser(context.Background(), registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, me.ID)

	require.NoError(t, repo.DeleteUser(context.Background(), registered.User.ID))
	_, err = svc.CurrentUser(context.Background(), registered.User.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = svc.GetUser(context.Background(), registered.User.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

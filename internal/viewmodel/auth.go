package viewmodel

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/realspace/realspace/internal/apperror"
	"github.com/realspace/realspace/internal/client"
	"github.com/realspace/realspace/internal/dto"
)

// AuthAPI is the part of the HTTP client the login and sign-up screens use.
type AuthAPI interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*dto.AuthResponse, error)
	CurrentUser(ctx context.Context) (*dto.UserResponse, error)
}

// Session is where a successful login is recorded. *session.Store implements it.
type Session interface {
	Login(token string, user dto.UserResponse) error
	Logout() error
	IsAuthenticated() bool
	CurrentUser() *dto.UserResponse
	SetCurrentUser(user dto.UserResponse)
}

// LoginForm is validated before any request is made.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthViewModel backs the login and sign-up screens and restores a stored session.
type AuthViewModel struct {
	base
	api     AuthAPI
	session Session
}

// NewAuthViewModel creates an AuthViewModel.
func NewAuthViewModel(api AuthAPI, session Session, logger *slog.Logger) *AuthViewModel {
	vm := &AuthViewModel{api: api, session: session}
	vm.init(logger)
	return vm
}

// IsAuthenticated reports whether a session exists.
func (vm *AuthViewModel) IsAuthenticated() bool {
	return vm.session.IsAuthenticated()
}

// CurrentUser returns the logged-in user, or nil when unknown.
func (vm *AuthViewModel) CurrentUser() *dto.UserResponse {
	return vm.session.CurrentUser()
}

// Login validates the form locally, then exchanges it for a token and stores it.
// Local validation failures are shown as the error message.
func (vm *AuthViewModel) Login(ctx context.Context, form LoginForm) bool {
	form.Email = strings.TrimSpace(form.Email)
	if err := validate.Struct(form); err != nil {
		vm.setError(validationMessage(err))
		return false
	}
	return vm.authenticate("Login failed", func() (*dto.AuthResponse, error) {
		return vm.api.Login(ctx, form.Email, form.Password)
	})
}

// Register validates req locally, creates the account and logs it in.
func (vm *AuthViewModel) Register(ctx context.Context, req dto.RegisterRequest) bool {
	req.Username = strings.TrimSpace(req.Username)
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	req.Email = strings.TrimSpace(req.Email)
	if err := validate.Struct(req); err != nil {
		vm.setError(validationMessage(err))
		return false
	}
	return vm.authenticate("Registration failed", func() (*dto.AuthResponse, error) {
		return vm.api.Register(ctx, req)
	})
}

func (vm *AuthViewModel) authenticate(failure string, call func() (*dto.AuthResponse, error)) bool {
	vm.update(func() {
		vm.loading = true
		vm.errMsg = ""
	})

	res, err := call()
	if err == nil {
		err = vm.session.Login(res.Token, res.User)
	}

	vm.update(func() {
		vm.loading = false
		if err != nil {
			vm.errMsg = ErrorMessage(failure, err)
		}
	})
	if err != nil {
		vm.logFailure(failure, err)
		return false
	}
	vm.logger.Info("authenticated", slog.String("userID", res.User.ID))
	return true
}

// RestoreSession fetches the user a stored token belongs to. A token the
// server rejects is discarded. It returns true when a user was restored.
func (vm *AuthViewModel) RestoreSession(ctx context.Context) bool {
	if !vm.session.IsAuthenticated() {
		return false
	}

	vm.update(func() {
		vm.loading = true
		vm.errMsg = ""
	})
	user, err := vm.api.CurrentUser(ctx)

	switch {
	case err == nil:
		vm.session.SetCurrentUser(*user)
	case client.IsAuthError(err):
		vm.logFailure("stored session rejected", err)
		if lerr := vm.session.Logout(); lerr != nil {
			vm.logFailure("clearing session", lerr)
		}
	default:
		vm.logFailure("restoring session", err)
	}

	vm.update(func() {
		vm.loading = false
		if err != nil {
			vm.errMsg = ErrorMessage("Error restoring session", err)
			if client.IsAuthError(err) {
				vm.errMsg = MsgLoginAgain
			}
		}
	})
	return err == nil
}

// Logout forgets the session.
func (vm *AuthViewModel) Logout() error {
	err := vm.session.Logout()
	vm.update(func() { vm.errMsg = "" })
	return err
}

// validationMessage returns the message of a validation error, or its text.
func validationMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

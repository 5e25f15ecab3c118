package viewmodel

import (
	"context"
	"log/slog"

	"github.com/realspace/realspace/internal/dto"
)

// ProfileAPI is the part of the HTTP client the profile screen uses.
type ProfileAPI interface {
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	GetUserPosts(ctx context.Context, userID string) ([]dto.PostResponse, error)
}

// ProfileViewModel backs a user's profile: the user and their posts.
type ProfileViewModel struct {
	collection[dto.PostResponse]
	api  ProfileAPI
	user *dto.UserResponse
}

// NewProfileViewModel creates a ProfileViewModel.
func NewProfileViewModel(api ProfileAPI, logger *slog.Logger) *ProfileViewModel {
	vm := &ProfileViewModel{api: api}
	vm.init(logger)
	return vm
}

// User returns the loaded user, or nil.
func (vm *ProfileViewModel) User() *dto.UserResponse {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	if vm.user == nil {
		return nil
	}
	u := *vm.user
	return &u
}

// Load fetches the user, then their posts. Nothing is replaced unless both succeed.
func (vm *ProfileViewModel) Load(ctx context.Context, userID string) bool {
	var user *dto.UserResponse
	ok := load(&vm.base, &vm.items, "Error loading profile", func() ([]dto.PostResponse, error) {
		var err error
		if user, err = vm.api.GetUser(ctx, userID); err != nil {
			return nil, err
		}
		return vm.api.GetUserPosts(ctx, userID)
	})
	if ok {
		vm.update(func() { vm.user = user })
	}
	return ok
}

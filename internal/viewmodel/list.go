package viewmodel

import (
	"context"
	"log/slog"
	"strings"

	"github.com/realspace/realspace/internal/dto"
)

// ListActions are offered by the wishlist form. The first is the default.
var ListActions = []string{"watch", "read", "go to"}

// ListAPI is the part of the HTTP client the wishlist uses.
type ListAPI interface {
	ListItems(ctx context.Context) ([]dto.ListItemResponse, error)
	CreateListItem(ctx context.Context, action, subject string, isPublic bool) (*dto.ListItemResponse, error)
	DeleteListItem(ctx context.Context, id string) error
}

// ListForm is the "I want to read Emma" composer.
type ListForm struct {
	Action   string `json:"action" validate:"required,oneof=watch read 'go to'"`
	Subject  string `json:"subject" validate:"required,max=200"`
	IsPublic bool   `json:"isPublic"`
}

// NewListForm returns an empty private form with the default action.
func NewListForm() ListForm {
	return ListForm{Action: ListActions[0]}
}

// CanCreate reports whether the form would be submitted.
func (f ListForm) CanCreate() bool {
	f.Subject = strings.TrimSpace(f.Subject)
	return validate.Struct(f) == nil
}

// ListViewModel backs the personal wishlist.
type ListViewModel struct {
	collection[dto.ListItemResponse]
	api ListAPI
}

// NewListViewModel creates a ListViewModel.
func NewListViewModel(api ListAPI, logger *slog.Logger) *ListViewModel {
	vm := &ListViewModel{api: api}
	vm.init(logger)
	return vm
}

// Load replaces the wishlist with the server's.
func (vm *ListViewModel) Load(ctx context.Context) bool {
	return load(&vm.base, &vm.items, "Error loading list", func() ([]dto.ListItemResponse, error) {
		return vm.api.ListItems(ctx)
	})
}

// CreateItem adds an entry. An invalid form is ignored.
func (vm *ListViewModel) CreateItem(ctx context.Context, form ListForm) bool {
	if !form.CanCreate() {
		return false
	}
	subject := strings.TrimSpace(form.Subject)
	return mutate(&vm.base, &vm.items, OpCreate, "Failed to create list item", func() (func([]dto.ListItemResponse) []dto.ListItemResponse, error) {
		item, err := vm.api.CreateListItem(ctx, form.Action, subject, form.IsPublic)
		if err != nil {
			return nil, err
		}
		return prepend(*item), nil
	})
}

// DeleteItem removes an entry.
func (vm *ListViewModel) DeleteItem(ctx context.Context, id string) bool {
	return mutate(&vm.base, &vm.items, OpDelete, "Failed to delete item", func() (func([]dto.ListItemResponse) []dto.ListItemResponse, error) {
		if err := vm.api.DeleteListItem(ctx, id); err != nil {
			return nil, err
		}
		return removeID[dto.ListItemResponse](id), nil
	})
}

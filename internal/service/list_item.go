package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/model"
	"github.com/realspace/realspace/internal/repository"
)

// ListItemService manages each user's personal wishlist.
type ListItemService struct {
	repo   repository.ListItemRepository
	logger *slog.Logger
}

func NewListItemService(repo repository.ListItemRepository, logger *slog.Logger) *ListItemService {
	return &ListItemService{repo: repo, logger: logger}
}

// List returns userID's own items, newest first.
func (s *ListItemService) List(ctx context.Context, userID string) ([]dto.ListItemResponse, error) {
	items, err := s.repo.ListItemsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/list: listing items of %s: %w", userID, err)
	}
	out := make([]dto.ListItemResponse, 0, len(items))
	for i := range items {
		out = append(out, listItemResponse(&items[i]))
	}
	return out, nil
}

func (s *ListItemService) Create(ctx context.Context, userID string, req dto.CreateListItemRequest) (*dto.ListItemResponse, error) {
	req.Action = strings.TrimSpace(req.Action)
	req.Subject = strings.TrimSpace(req.Subject)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	item := &model.ListItem{
		UserID:   userID,
		Action:   req.Action,
		Subject:  req.Subject,
		IsPublic: req.IsPublic,
	}
	if err := s.repo.CreateListItem(ctx, item); err != nil {
		return nil, fmt.Errorf("service/list: creating item: %w", err)
	}
	s.logger.Info("list item created", slog.String("itemID", item.ID))
	resp := listItemResponse(item)
	return &resp, nil
}

// Delete removes one of userID's own items.
func (s *ListItemService) Delete(ctx context.Context, userID, id string) error {
	item, err := s.repo.GetListItem(ctx, id)
	if err != nil {
		return fmt.Errorf("service/list: fetching item %s: %w", id, err)
	}
	if err := requireOwner(item.UserID, userID, "delete this item"); err != nil {
		return err
	}
	if err := s.repo.DeleteListItem(ctx, id); err != nil {
		return fmt.Errorf("service/list: deleting item %s: %w", id, err)
	}
	return nil
}

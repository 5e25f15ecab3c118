package viewmodel

import (
	"context"
	"log/slog"
	"strings"

	"github.com/realspace/realspace/internal/dto"
)

// TopicsAPI is the part of the HTTP client the topic directory uses.
type TopicsAPI interface {
	ListTopics(ctx context.Context) ([]dto.TopicResponse, error)
	CreateTopic(ctx context.Context, name, description string) (*dto.TopicResponse, error)
}

// TopicsViewModel backs the topic directory.
type TopicsViewModel struct {
	collection[dto.TopicResponse]
	api TopicsAPI
}

// NewTopicsViewModel creates a TopicsViewModel.
func NewTopicsViewModel(api TopicsAPI, logger *slog.Logger) *TopicsViewModel {
	vm := &TopicsViewModel{api: api}
	vm.init(logger)
	return vm
}

// Load replaces the directory with the server's.
func (vm *TopicsViewModel) Load(ctx context.Context) bool {
	return load(&vm.base, &vm.items, "Error loading topics", func() ([]dto.TopicResponse, error) {
		return vm.api.ListTopics(ctx)
	})
}

// CreateTopic creates a topic. A blank name is ignored.
func (vm *TopicsViewModel) CreateTopic(ctx context.Context, name, description string) bool {
	req := dto.CreateTopicRequest{
		Name:             strings.TrimSpace(name),
		TopicDescription: strings.TrimSpace(description),
	}
	if validate.Struct(req) != nil {
		return false
	}
	return mutate(&vm.base, &vm.items, OpCreate, "Failed to create topic", func() (func([]dto.TopicResponse) []dto.TopicResponse, error) {
		topic, err := vm.api.CreateTopic(ctx, req.Name, req.TopicDescription)
		if err != nil {
			return nil, err
		}
		return prepend(*topic), nil
	})
}

// Filtered returns the topics whose name or description contains search,
// ignoring case. An empty search returns everything.
func (vm *TopicsViewModel) Filtered(search string) []dto.TopicResponse {
	topics := vm.Items()
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return topics
	}

	out := topics[:0]
	for _, t := range topics {
		if strings.Contains(strings.ToLower(t.Name), search) ||
			strings.Contains(strings.ToLower(t.TopicDescription), search) {
			out = append(out, t)
		}
	}
	return out
}

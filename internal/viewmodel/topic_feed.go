package viewmodel

import (
	"context"
	"log/slog"
	"strings"

	"github.com/realspace/realspace/internal/dto"
)

// TopicFeedAPI is the part of the HTTP client a topic's feed uses.
type TopicFeedAPI interface {
	ListTopicPosts(ctx context.Context, topicID string) ([]dto.TopicPostResponse, error)
	CreateTopicPost(ctx context.Context, topicID, content string) (*dto.TopicPostResponse, error)
	UpdateTopicPost(ctx context.Context, id, content string) (*dto.TopicPostResponse, error)
	DeleteTopicPost(ctx context.Context, id string) error
	LikeTopicPost(ctx context.Context, id string) (*dto.TopicPostResponse, error)
	UnlikeTopicPost(ctx context.Context, id string) (*dto.TopicPostResponse, error)
}

// TopicFeedViewModel backs the feed of one topic.
type TopicFeedViewModel struct {
	collection[dto.TopicPostResponse]
	api     TopicFeedAPI
	topicID string
}

// NewTopicFeedViewModel creates a TopicFeedViewModel. Call Load to pick the topic.
func NewTopicFeedViewModel(api TopicFeedAPI, logger *slog.Logger) *TopicFeedViewModel {
	vm := &TopicFeedViewModel{api: api}
	vm.init(logger)
	return vm
}

// TopicID returns the topic shown, or "" before the first Load.
func (vm *TopicFeedViewModel) TopicID() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.topicID
}

// Load shows topicID and replaces the feed with its posts.
func (vm *TopicFeedViewModel) Load(ctx context.Context, topicID string) bool {
	vm.update(func() { vm.topicID = topicID })
	return load(&vm.base, &vm.items, "Error loading posts", func() ([]dto.TopicPostResponse, error) {
		return vm.api.ListTopicPosts(ctx, topicID)
	})
}

// CreatePost posts content into the current topic. Blank content, or no topic
// loaded yet, is ignored.
func (vm *TopicFeedViewModel) CreatePost(ctx context.Context, content string) bool {
	topicID := vm.TopicID()
	req := dto.CreateTopicPostRequest{Content: strings.TrimSpace(content)}
	if topicID == "" || validate.Struct(req) != nil {
		return false
	}
	return mutate(&vm.base, &vm.items, OpCreate, "Failed to create post", func() (func([]dto.TopicPostResponse) []dto.TopicPostResponse, error) {
		post, err := vm.api.CreateTopicPost(ctx, topicID, req.Content)
		if err != nil {
			return nil, err
		}
		return prepend(*post), nil
	})
}

// UpdatePost replaces a post's content.
func (vm *TopicFeedViewModel) UpdatePost(ctx context.Context, id, content string) bool {
	req := dto.UpdateTopicPostRequest{Content: strings.TrimSpace(content)}
	if validate.Struct(req) != nil {
		return false
	}
	return mutate(&vm.base, &vm.items, OpUpdate, "Failed to update post", func() (func([]dto.TopicPostResponse) []dto.TopicPostResponse, error) {
		post, err := vm.api.UpdateTopicPost(ctx, id, req.Content)
		if err != nil {
			return nil, err
		}
		return replaceID(*post), nil
	})
}

// ToggleLike likes or unlikes a post based on its last known state.
func (vm *TopicFeedViewModel) ToggleLike(ctx context.Context, id string) bool {
	post, ok := vm.Find(id)
	if !ok {
		return false
	}
	return mutate(&vm.base, &vm.items, OpLike, "Failed to like post", func() (func([]dto.TopicPostResponse) []dto.TopicPostResponse, error) {
		call := vm.api.LikeTopicPost
		if post.LikedByMe() {
			call = vm.api.UnlikeTopicPost
		}
		updated, err := call(ctx, id)
		if err != nil {
			return nil, err
		}
		return replaceID(*updated), nil
	})
}

// DeletePost deletes a post and drops it from the feed.
func (vm *TopicFeedViewModel) DeletePost(ctx context.Context, id string) bool {
	return mutate(&vm.base, &vm.items, OpDelete, "Failed to delete post", func() (func([]dto.TopicPostResponse) []dto.TopicPostResponse, error) {
		if err := vm.api.DeleteTopicPost(ctx, id); err != nil {
			return nil, err
		}
		return removeID[dto.TopicPostResponse](id), nil
	})
}

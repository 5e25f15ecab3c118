package viewmodel

import (
	"context"
	"log/slog"
	"strings"

	"github.com/realspace/realspace/internal/dto"
)

// Post actions offered by the feed form. The first is the default.
var PostActions = []string{"watched", "read", "went to"}

// Feed tabs.
const (
	TabFriends = "Friends"
	TabTopics  = "Topics"
)

// FeedAPI is the part of the HTTP client the friends feed uses.
type FeedAPI interface {
	ListPosts(ctx context.Context) ([]dto.PostResponse, error)
	CreatePost(ctx context.Context, req dto.CreatePostRequest) (*dto.PostResponse, error)
	LikePost(ctx context.Context, id string) (*dto.PostResponse, error)
	UnlikePost(ctx context.Context, id string) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, id string) error
}

// PostForm is the "I watched Dune" composer.
type PostForm struct {
	Action  string `json:"action" validate:"required,oneof=watched read 'went to'"`
	Subject string `json:"subject" validate:"required,max=200"`
	Body    string `json:"body" validate:"max=2000"`
}

// NewPostForm returns an empty form with the default action.
func NewPostForm() PostForm {
	return PostForm{Action: PostActions[0]}
}

func (f PostForm) normalized() PostForm {
	f.Subject = strings.TrimSpace(f.Subject)
	f.Body = strings.TrimSpace(f.Body)
	return f
}

// CanPost reports whether the form would be submitted.
func (f PostForm) CanPost() bool {
	return validate.Struct(f.normalized()) == nil
}

// FeedViewModel backs the friends feed.
type FeedViewModel struct {
	collection[dto.PostResponse]
	api FeedAPI
	tab string
}

// NewFeedViewModel creates a FeedViewModel on the Friends tab.
func NewFeedViewModel(api FeedAPI, logger *slog.Logger) *FeedViewModel {
	vm := &FeedViewModel{api: api, tab: TabFriends}
	vm.init(logger)
	return vm
}

// Load replaces the feed with the server's.
func (vm *FeedViewModel) Load(ctx context.Context) bool {
	return load(&vm.base, &vm.items, "Error loading posts", func() ([]dto.PostResponse, error) {
		return vm.api.ListPosts(ctx)
	})
}

// CreatePost submits form. An invalid form (e.g. blank subject) is ignored and
// false is returned without a request. A blank body is sent as no content.
func (vm *FeedViewModel) CreatePost(ctx context.Context, form PostForm) bool {
	form = form.normalized()
	if validate.Struct(form) != nil {
		return false
	}

	req := dto.CreatePostRequest{
		Action:  form.Action,
		Subject: form.Subject,
		Content: dto.StringPtr(form.Body),
	}
	return mutate(&vm.base, &vm.items, OpCreate, "Failed to create post", func() (func([]dto.PostResponse) []dto.PostResponse, error) {
		post, err := vm.api.CreatePost(ctx, req)
		if err != nil {
			return nil, err
		}
		return prepend(*post), nil
	})
}

// ToggleLike likes the post, or unlikes it when the last known state says it
// is liked, and replaces it with the server's answer.
func (vm *FeedViewModel) ToggleLike(ctx context.Context, id string) bool {
	post, ok := vm.Find(id)
	if !ok {
		return false
	}
	return mutate(&vm.base, &vm.items, OpLike, "Failed to like post", func() (func([]dto.PostResponse) []dto.PostResponse, error) {
		call := vm.api.LikePost
		if post.LikedByMe() {
			call = vm.api.UnlikePost
		}
		updated, err := call(ctx, id)
		if err != nil {
			return nil, err
		}
		return replaceID(*updated), nil
	})
}

// DeletePost deletes the post and drops it from the feed.
func (vm *FeedViewModel) DeletePost(ctx context.Context, id string) bool {
	return mutate(&vm.base, &vm.items, OpDelete, "Failed to delete post", func() (func([]dto.PostResponse) []dto.PostResponse, error) {
		if err := vm.api.DeletePost(ctx, id); err != nil {
			return nil, err
		}
		return removeID[dto.PostResponse](id), nil
	})
}

// SelectTab switches the visible tab.
func (vm *FeedViewModel) SelectTab(tab string) {
	vm.update(func() { vm.tab = tab })
}

// SelectedTab returns the visible tab.
func (vm *FeedViewModel) SelectedTab() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.tab
}

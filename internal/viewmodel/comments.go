package viewmodel

import (
	"context"
	"log/slog"
	"strings"

	"github.com/realspace/realspace/internal/dto"
)

// CommentsAPI is the part of the HTTP client a comment thread uses.
type CommentsAPI interface {
	ListPostComments(ctx context.Context, postID string) ([]dto.CommentResponse, error)
	CreatePostComment(ctx context.Context, postID, content string) (*dto.CommentResponse, error)
	ListTopicPostComments(ctx context.Context, topicPostID string) ([]dto.CommentResponse, error)
	CreateTopicPostComment(ctx context.Context, topicPostID, content string) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, id string) error
}

// CommentsViewModel backs the comment thread under one post or one topic-post.
type CommentsViewModel struct {
	collection[dto.CommentResponse]
	api    CommentsAPI
	list   func(ctx context.Context) ([]dto.CommentResponse, error)
	create func(ctx context.Context, content string) (*dto.CommentResponse, error)
}

// NewPostCommentsViewModel creates the thread under a feed post.
func NewPostCommentsViewModel(api CommentsAPI, postID string, logger *slog.Logger) *CommentsViewModel {
	vm := &CommentsViewModel{
		api: api,
		list: func(ctx context.Context) ([]dto.CommentResponse, error) {
			return api.ListPostComments(ctx, postID)
		},
		create: func(ctx context.Context, content string) (*dto.CommentResponse, error) {
			return api.CreatePostComment(ctx, postID, content)
		},
	}
	vm.init(logger)
	return vm
}

// NewTopicPostCommentsViewModel creates the thread under a topic-post.
func NewTopicPostCommentsViewModel(api CommentsAPI, topicPostID string, logger *slog.Logger) *CommentsViewModel {
	vm := &CommentsViewModel{
		api: api,
		list: func(ctx context.Context) ([]dto.CommentResponse, error) {
			return api.ListTopicPostComments(ctx, topicPostID)
		},
		create: func(ctx context.Context, content string) (*dto.CommentResponse, error) {
			return api.CreateTopicPostComment(ctx, topicPostID, content)
		},
	}
	vm.init(logger)
	return vm
}

// Load replaces the thread with the server's.
func (vm *CommentsViewModel) Load(ctx context.Context) bool {
	return load(&vm.base, &vm.items, "Error loading comments", func() ([]dto.CommentResponse, error) {
		return vm.list(ctx)
	})
}

// Create adds a comment at the head. Blank content is ignored.
func (vm *CommentsViewModel) Create(ctx context.Context, content string) bool {
	req := dto.CreateCommentRequest{Content: strings.TrimSpace(content)}
	if validate.Struct(req) != nil {
		return false
	}
	return mutate(&vm.base, &vm.items, OpCreate, "Failed to post comment", func() (func([]dto.CommentResponse) []dto.CommentResponse, error) {
		comment, err := vm.create(ctx, req.Content)
		if err != nil {
			return nil, err
		}
		return prepend(*comment), nil
	})
}

// Delete removes a comment.
func (vm *CommentsViewModel) Delete(ctx context.Context, id string) bool {
	return mutate(&vm.base, &vm.items, OpDelete, "Failed to delete comment", func() (func([]dto.CommentResponse) []dto.CommentResponse, error) {
		if err := vm.api.DeleteComment(ctx, id); err != nil {
			return nil, err
		}
		return removeID[dto.CommentResponse](id), nil
	})
}

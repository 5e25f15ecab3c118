package client

import (
	"context"
	"net/http"

	"github.com/realspace/realspace/internal/dto"
)

// ListPostComments returns a post's comments. GET posts/{id}/comments.
func (c *Client) ListPostComments(ctx context.Context, postID string) ([]dto.CommentResponse, error) {
	return getList[dto.CommentResponse](ctx, c, authRequired, "posts", postID, "comments")
}

// CreatePostComment comments on a post. POST posts/{id}/comments.
func (c *Client) CreatePostComment(ctx context.Context, postID, content string) (*dto.CommentResponse, error) {
	req := dto.CreateCommentRequest{Content: content}
	return getOne[dto.CommentResponse](ctx, c, http.MethodPost, authRequired, req, "posts", postID, "comments")
}

// ListTopicPostComments returns a topic-post's comments. GET topicposts/{id}/comments.
func (c *Client) ListTopicPostComments(ctx context.Context, topicPostID string) ([]dto.CommentResponse, error) {
	return getList[dto.CommentResponse](ctx, c, authOptional, "topicposts", topicPostID, "comments")
}

// CreateTopicPostComment comments on a topic-post. POST topicposts/{id}/comments.
func (c *Client) CreateTopicPostComment(ctx context.Context, topicPostID, content string) (*dto.CommentResponse, error) {
	req := dto.CreateCommentRequest{Content: content}
	return getOne[dto.CommentResponse](ctx, c, http.MethodPost, authRequired, req, "topicposts", topicPostID, "comments")
}

// DeleteComment removes a comment. DELETE comments/{id}, expects 204.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.deleteResource(ctx, "comments", id)
}

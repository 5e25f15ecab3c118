package client

import (
	"context"
	"net/http"

	"github.com/realspace/realspace/internal/dto"
)

// ListTopics returns every topic. GET topics.
func (c *Client) ListTopics(ctx context.Context) ([]dto.TopicResponse, error) {
	return getList[dto.TopicResponse](ctx, c, authOptional, "topics")
}

// GetTopic fetches one topic. GET topics/{id}.
func (c *Client) GetTopic(ctx context.Context, id string) (*dto.TopicResponse, error) {
	return getOne[dto.TopicResponse](ctx, c, http.MethodGet, authOptional, nil, "topics", id)
}

// CreateTopic creates a topic. POST topics.
func (c *Client) CreateTopic(ctx context.Context, name, description string) (*dto.TopicResponse, error) {
	req := dto.CreateTopicRequest{Name: name, TopicDescription: description}
	return getOne[dto.TopicResponse](ctx, c, http.MethodPost, authRequired, req, "topics")
}

// ListTopicPosts returns a topic's posts, newest first. GET topics/{id}/posts.
//
// The token is sent when present so isLikedByCurrentUser reflects this session.
func (c *Client) ListTopicPosts(ctx context.Context, topicID string) ([]dto.TopicPostResponse, error) {
	return getList[dto.TopicPostResponse](ctx, c, authOptional, "topics", topicID, "posts")
}

// CreateTopicPost posts into a topic. POST topics/{id}/posts.
func (c *Client) CreateTopicPost(ctx context.Context, topicID, content string) (*dto.TopicPostResponse, error) {
	req := dto.CreateTopicPostRequest{Content: content}
	return getOne[dto.TopicPostResponse](ctx, c, http.MethodPost, authRequired, req, "topics", topicID, "posts")
}

// GetTopicPost fetches one topic-post. GET topicposts/{id}.
func (c *Client) GetTopicPost(ctx context.Context, id string) (*dto.TopicPostResponse, error) {
	return getOne[dto.TopicPostResponse](ctx, c, http.MethodGet, authRequired, nil, "topicposts", id)
}

// UpdateTopicPost replaces a topic-post's content. PUT topicposts/{id}.
func (c *Client) UpdateTopicPost(ctx context.Context, id, content string) (*dto.TopicPostResponse, error) {
	req := dto.UpdateTopicPostRequest{Content: content}
	return getOne[dto.TopicPostResponse](ctx, c, http.MethodPut, authRequired, req, "topicposts", id)
}

// DeleteTopicPost removes a topic-post and its comments. DELETE topicposts/{id}, expects 204.
func (c *Client) DeleteTopicPost(ctx context.Context, id string) error {
	return c.deleteResource(ctx, "topicposts", id)
}

// LikeTopicPost likes a topic-post. POST topicposts/{id}/like.
func (c *Client) LikeTopicPost(ctx context.Context, id string) (*dto.TopicPostResponse, error) {
	return getOne[dto.TopicPostResponse](ctx, c, http.MethodPost, authRequired, nil, "topicposts", id, "like")
}

// UnlikeTopicPost unlikes a topic-post. DELETE topicposts/{id}/like.
func (c *Client) UnlikeTopicPost(ctx context.Context, id string) (*dto.TopicPostResponse, error) {
	return getOne[dto.TopicPostResponse](ctx, c, http.MethodDelete, authRequired, nil, "topicposts", id, "like")
}

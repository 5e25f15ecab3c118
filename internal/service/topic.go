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

// TopicService manages topics and the posts inside them.
type TopicService struct {
	repo   repository.TopicRepository
	logger *slog.Logger
}

func NewTopicService(repo repository.TopicRepository, logger *slog.Logger) *TopicService {
	return &TopicService{repo: repo, logger: logger}
}

func (s *TopicService) List(ctx context.Context) ([]dto.TopicResponse, error) {
	topics, err := s.repo.ListTopics(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/topic: listing topics: %w", err)
	}
	out := make([]dto.TopicResponse, 0, len(topics))
	for i := range topics {
		out = append(out, topicResponse(&topics[i]))
	}
	return out, nil
}

func (s *TopicService) Get(ctx context.Context, id string) (*dto.TopicResponse, error) {
	t, err := s.repo.GetTopic(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/topic: fetching topic %s: %w", id, err)
	}
	resp := topicResponse(t)
	return &resp, nil
}

// Create adds a topic. Names are unique regardless of case.
func (s *TopicService) Create(ctx context.Context, req dto.CreateTopicRequest) (*dto.TopicResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.TopicDescription = strings.TrimSpace(req.TopicDescription)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	topic := &model.Topic{Name: req.Name, Description: req.TopicDescription}
	if err := s.repo.CreateTopic(ctx, topic); err != nil {
		return nil, fmt.Errorf("service/topic: creating topic: %w", err)
	}

	s.logger.Info("topic created", slog.String("topicID", topic.ID), slog.String("name", topic.Name))
	resp := topicResponse(topic)
	return &resp, nil
}

// ListPosts returns the topic's posts, newest first.
func (s *TopicService) ListPosts(ctx context.Context, topicID, viewerID string, opts repository.ListOptions) ([]dto.TopicPostResponse, error) {
	views, err := s.repo.ListTopicPosts(ctx, topicID, viewerID, opts)
	if err != nil {
		return nil, fmt.Errorf("service/topic: listing posts of %s: %w", topicID, err)
	}
	out := make([]dto.TopicPostResponse, 0, len(views))
	for i := range views {
		out = append(out, topicPostResponse(&views[i]))
	}
	return out, nil
}

func (s *TopicService) GetPost(ctx context.Context, id, viewerID string) (*dto.TopicPostResponse, error) {
	v, err := s.repo.GetTopicPost(ctx, id, viewerID)
	if err != nil {
		return nil, fmt.Errorf("service/topic: fetching topic post %s: %w", id, err)
	}
	resp := topicPostResponse(v)
	return &resp, nil
}

// CreatePost adds a post by authorID to topicID.
func (s *TopicService) CreatePost(ctx context.Context, authorID, topicID string, req dto.CreateTopicPostRequest) (*dto.TopicPostResponse, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	post := &model.TopicPost{TopicID: topicID, AuthorID: authorID, Content: req.Content}
	if err := s.repo.CreateTopicPost(ctx, post); err != nil {
		return nil, fmt.Errorf("service/topic: creating topic post: %w", err)
	}

	s.logger.Info("topic post created",
		slog.String("topicPostID", post.ID),
		slog.String("topicID", topicID),
	)
	return s.GetPost(ctx, post.ID, authorID)
}

// UpdatePost replaces the content of userID's own topic-post.
func (s *TopicService) UpdatePost(ctx context.Context, userID, id string, req dto.UpdateTopicPostRequest) (*dto.TopicPostResponse, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	current, err := s.repo.GetTopicPost(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("service/topic: fetching topic post %s: %w", id, err)
	}
	if err := requireOwner(current.AuthorID, userID, "edit this post"); err != nil {
		return nil, err
	}

	post := current.TopicPost
	post.Content = req.Content
	if err := s.repo.UpdateTopicPost(ctx, &post); err != nil {
		return nil, fmt.Errorf("service/topic: updating topic post %s: %w", id, err)
	}
	return s.GetPost(ctx, id, userID)
}

// DeletePost removes userID's own topic-post with its comments and likes.
func (s *TopicService) DeletePost(ctx context.Context, userID, id string) error {
	current, err := s.repo.GetTopicPost(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("service/topic: fetching topic post %s: %w", id, err)
	}
	if err := requireOwner(current.AuthorID, userID, "delete this post"); err != nil {
		return err
	}
	if err := s.repo.DeleteTopicPost(ctx, id); err != nil {
		return fmt.Errorf("service/topic: deleting topic post %s: %w", id, err)
	}

	s.logger.Info("topic post deleted", slog.String("topicPostID", id))
	return nil
}

func (s *TopicService) LikePost(ctx context.Context, userID, id string) (*dto.TopicPostResponse, error) {
	if err := s.repo.LikeTopicPost(ctx, id, userID); err != nil {
		return nil, fmt.Errorf("service/topic: liking topic post %s: %w", id, err)
	}
	return s.GetPost(ctx, id, userID)
}

func (s *TopicService) UnlikePost(ctx context.Context, userID, id string) (*dto.TopicPostResponse, error) {
	if err := s.repo.UnlikeTopicPost(ctx, id, userID); err != nil {
		return nil, fmt.Errorf("service/topic: unliking topic post %s: %w", id, err)
	}
	return s.GetPost(ctx, id, userID)
}

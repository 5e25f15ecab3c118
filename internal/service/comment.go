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

// CommentService manages comments on posts and topic-posts.
type CommentService struct {
	repo   repository.CommentRepository
	logger *slog.Logger
}

func NewCommentService(repo repository.CommentRepository, logger *slog.Logger) *CommentService {
	return &CommentService{repo: repo, logger: logger}
}

func (s *CommentService) ListForPost(ctx context.Context, postID string) ([]dto.CommentResponse, error) {
	views, err := s.repo.ListPostComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("service/comment: listing comments of post %s: %w", postID, err)
	}
	return commentResponses(views), nil
}

func (s *CommentService) ListForTopicPost(ctx context.Context, topicPostID string) ([]dto.CommentResponse, error) {
	views, err := s.repo.ListTopicPostComments(ctx, topicPostID)
	if err != nil {
		return nil, fmt.Errorf("service/comment: listing comments of topic post %s: %w", topicPostID, err)
	}
	return commentResponses(views), nil
}

func (s *CommentService) CreateForPost(ctx context.Context, authorID, postID string, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	return s.create(ctx, &model.Comment{AuthorID: authorID, PostID: postID}, req)
}

func (s *CommentService) CreateForTopicPost(ctx context.Context, authorID, topicPostID string, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	return s.create(ctx, &model.Comment{AuthorID: authorID, TopicPostID: topicPostID}, req)
}

func (s *CommentService) create(ctx context.Context, comment *model.Comment, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	comment.Content = req.Content
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("service/comment: creating comment: %w", err)
	}

	v, err := s.repo.GetComment(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("service/comment: fetching comment %s: %w", comment.ID, err)
	}
	s.logger.Info("comment created", slog.String("commentID", comment.ID))
	resp := commentResponse(v)
	return &resp, nil
}

// Delete removes userID's own comment.
func (s *CommentService) Delete(ctx context.Context, userID, id string) error {
	current, err := s.repo.GetComment(ctx, id)
	if err != nil {
		return fmt.Errorf("service/comment: fetching comment %s: %w", id, err)
	}
	if err := requireOwner(current.AuthorID, userID, "delete this comment"); err != nil {
		return err
	}
	if err := s.repo.DeleteComment(ctx, id); err != nil {
		return fmt.Errorf("service/comment: deleting comment %s: %w", id, err)
	}
	return nil
}

func commentResponses(views []model.CommentView) []dto.CommentResponse {
	out := make([]dto.CommentResponse, 0, len(views))
	for i := range views {
		out = append(out, commentResponse(&views[i]))
	}
	return out
}

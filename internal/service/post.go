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

// PostService manages feed posts and their likes.
type PostService struct {
	repo   repository.PostRepository
	logger *slog.Logger
}

func NewPostService(repo repository.PostRepository, logger *slog.Logger) *PostService {
	return &PostService{repo: repo, logger: logger}
}

// List returns the feed, newest first.
func (s *PostService) List(ctx context.Context, viewerID string, opts repository.ListOptions) ([]dto.PostResponse, error) {
	views, err := s.repo.ListPosts(ctx, viewerID, opts)
	if err != nil {
		return nil, fmt.Errorf("service/post: listing posts: %w", err)
	}
	return postResponses(views), nil
}

// ListByAuthor returns authorID's posts, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, authorID, viewerID string, opts repository.ListOptions) ([]dto.PostResponse, error) {
	views, err := s.repo.ListPostsByAuthor(ctx, authorID, viewerID, opts)
	if err != nil {
		return nil, fmt.Errorf("service/post: listing posts by %s: %w", authorID, err)
	}
	return postResponses(views), nil
}

func (s *PostService) Get(ctx context.Context, id, viewerID string) (*dto.PostResponse, error) {
	v, err := s.repo.GetPost(ctx, id, viewerID)
	if err != nil {
		return nil, fmt.Errorf("service/post: fetching post %s: %w", id, err)
	}
	resp := postResponse(v)
	return &resp, nil
}

// Create publishes a post by authorID.
func (s *PostService) Create(ctx context.Context, authorID string, req dto.CreatePostRequest) (*dto.PostResponse, error) {
	req.Action = strings.TrimSpace(req.Action)
	req.Subject = strings.TrimSpace(req.Subject)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	post := &model.Post{
		AuthorID: authorID,
		Action:   req.Action,
		Subject:  req.Subject,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("service/post: creating post: %w", err)
	}

	s.logger.Info("post created",
		slog.String("postID", post.ID),
		slog.String("authorID", authorID),
	)
	return s.Get(ctx, post.ID, authorID)
}

// Update changes the content and image of userID's own post. Nil request
// fields keep their current value.
func (s *PostService) Update(ctx context.Context, userID, id string, req dto.UpdatePostRequest) (*dto.PostResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	current, err := s.repo.GetPost(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("service/post: fetching post %s: %w", id, err)
	}
	if err := requireOwner(current.AuthorID, userID, "edit this post"); err != nil {
		return nil, err
	}

	post := current.Post
	if req.Content != nil {
		post.Content = req.Content
	}
	if req.ImageURL != nil {
		post.ImageURL = req.ImageURL
	}
	if err := s.repo.UpdatePost(ctx, &post); err != nil {
		return nil, fmt.Errorf("service/post: updating post %s: %w", id, err)
	}
	return s.Get(ctx, id, userID)
}

// Delete removes userID's own post with its comments and likes.
func (s *PostService) Delete(ctx context.Context, userID, id string) error {
	current, err := s.repo.GetPost(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("service/post: fetching post %s: %w", id, err)
	}
	if err := requireOwner(current.AuthorID, userID, "delete this post"); err != nil {
		return err
	}
	if err := s.repo.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("service/post: deleting post %s: %w", id, err)
	}

	s.logger.Info("post deleted", slog.String("postID", id))
	return nil
}

// Like and Unlike are idempotent and return the post as userID now sees it.
func (s *PostService) Like(ctx context.Context, userID, id string) (*dto.PostResponse, error) {
	if err := s.repo.LikePost(ctx, id, userID); err != nil {
		return nil, fmt.Errorf("service/post: liking post %s: %w", id, err)
	}
	return s.Get(ctx, id, userID)
}

func (s *PostService) Unlike(ctx context.Context, userID, id string) (*dto.PostResponse, error) {
	if err := s.repo.UnlikePost(ctx, id, userID); err != nil {
		return nil, fmt.Errorf("service/post: unliking post %s: %w", id, err)
	}
	return s.Get(ctx, id, userID)
}

// Package repository defines the storage contract of the dev API.
//
// Implementations return apperror values for domain failures (not found,
// unique field taken) and wrapped errors for everything else. Deletes honor
// the cascade contract: removing a parent removes everything that refers to it.
//
//	Topic     -> TopicPosts -> their Comments and likes
//	User      -> Posts (with their Comments and likes), authored TopicPosts
//	             and Comments, ListItems, like memberships
//	Post      -> Comments, likes
//	TopicPost -> Comments, likes
//	Entity    -> Events
//
// Read methods that take a viewerID compute LikedByViewer for that user. An
// empty viewerID is an anonymous reader.
package repository

import (
	"context"

	"github.com/realspace/realspace/internal/model"
)

// ListOptions pages a list. Zero values mean the first page of the default size.
type ListOptions struct {
	Limit  int
	Offset int
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type PostRepository interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id, viewerID string) (*model.PostView, error)
	ListPosts(ctx context.Context, viewerID string, opts ListOptions) ([]model.PostView, error)
	ListPostsByAuthor(ctx context.Context, authorID, viewerID string, opts ListOptions) ([]model.PostView, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id string) error
	LikePost(ctx context.Context, postID, userID string) error
	UnlikePost(ctx context.Context, postID, userID string) error
}

type TopicRepository interface {
	CreateTopic(ctx context.Context, topic *model.Topic) error
	GetTopic(ctx context.Context, id string) (*model.Topic, error)
	ListTopics(ctx context.Context) ([]model.Topic, error)
	DeleteTopic(ctx context.Context, id string) error

	CreateTopicPost(ctx context.Context, post *model.TopicPost) error
	GetTopicPost(ctx context.Context, id, viewerID string) (*model.TopicPostView, error)
	ListTopicPosts(ctx context.Context, topicID, viewerID string, opts ListOptions) ([]model.TopicPostView, error)
	UpdateTopicPost(ctx context.Context, post *model.TopicPost) error
	DeleteTopicPost(ctx context.Context, id string) error
	LikeTopicPost(ctx context.Context, topicPostID, userID string) error
	UnlikeTopicPost(ctx context.Context, topicPostID, userID string) error
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, id string) (*model.CommentView, error)
	ListPostComments(ctx context.Context, postID string) ([]model.CommentView, error)
	ListTopicPostComments(ctx context.Context, topicPostID string) ([]model.CommentView, error)
	DeleteComment(ctx context.Context, id string) error
}

type VenueRepository interface {
	CreateEntity(ctx context.Context, entity *model.Entity) error
	GetEntity(ctx context.Context, id string) (*model.Entity, error)
	ListEntities(ctx context.Context) ([]model.Entity, error)
	UpdateEntity(ctx context.Context, entity *model.Entity) error
	DeleteEntity(ctx context.Context, id string) error

	CreateEvent(ctx context.Context, event *model.Event) error
	GetEvent(ctx context.Context, id string) (*model.EventView, error)
	ListEvents(ctx context.Context) ([]model.EventView, error)
	UpdateEvent(ctx context.Context, event *model.Event) error
}

type ListItemRepository interface {
	CreateListItem(ctx context.Context, item *model.ListItem) error
	GetListItem(ctx context.Context, id string) (*model.ListItem, error)
	ListItemsByUser(ctx context.Context, userID string) ([]model.ListItem, error)
	DeleteListItem(ctx context.Context, id string) error
}

// Store is everything the service layer needs. *sqlite.DB implements it.
type Store interface {
	UserRepository
	PostRepository
	TopicRepository
	CommentRepository
	VenueRepository
	ListItemRepository
}

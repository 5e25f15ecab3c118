package model

import "time"

// Topic groups TopicPosts under a name. Names are unique (case-insensitive);
// clients search by them.
type Topic struct {
	ID          string
	Name        string
	Description string
	PostsCount  int
	CreatedAt   time.Time
}

// TopicPost is a post inside a Topic. Deleting the Topic deletes it.
type TopicPost struct {
	ID         string
	TopicID    string
	AuthorID   string
	Content    string
	LikesCount int
	CreatedAt  time.Time
}

// TopicPostView joins a TopicPost with its author, topic and viewer-relative fields.
type TopicPostView struct {
	TopicPost
	Author        User
	Topic         Topic
	LikedByViewer bool
	CommentsCount int
}

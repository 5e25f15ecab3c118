package model

import "time"

// Comment belongs to exactly one parent: a Post or a TopicPost.
// Exactly one of PostID and TopicPostID is non-empty.
type Comment struct {
	ID          string
	AuthorID    string
	PostID      string
	TopicPostID string
	Content     string
	CreatedAt   time.Time
}

// HasSingleParent reports whether the comment references exactly one parent.
func (c *Comment) HasSingleParent() bool {
	return (c.PostID == "") != (c.TopicPostID == "")
}

// CommentView is a Comment joined with its author.
type CommentView struct {
	Comment
	Author User
}

package dto

// CreateCommentRequest is the body of POST posts/{id}/comments and
// POST topicposts/{id}/comments.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// CommentResponse is a comment with its author.
type CommentResponse struct {
	ID        string      `json:"id" validate:"required"`
	Content   string      `json:"content" validate:"required"`
	CreatedAt *Timestamp  `json:"createdAt,omitempty"`
	Author    UserSummary `json:"author" validate:"required"`
}

// GetID returns the comment identifier.
func (c CommentResponse) GetID() string { return c.ID }

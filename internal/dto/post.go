package dto

// CreatePostRequest is the body of POST posts.
type CreatePostRequest struct {
	Action   string  `json:"action" validate:"required,max=32"`
	Subject  string  `json:"subject" validate:"required,max=200"`
	Content  *string `json:"content,omitempty" validate:"omitempty,max=2000"`
	ImageURL *string `json:"imageURL,omitempty" validate:"omitempty,url"`
}

// UpdatePostRequest is the body of PUT posts/{id}. Nil fields are left unchanged.
type UpdatePostRequest struct {
	Content  *string `json:"content,omitempty" validate:"omitempty,max=2000"`
	ImageURL *string `json:"imageURL,omitempty" validate:"omitempty,url"`
}

// PostResponse is a feed post.
type PostResponse struct {
	ID                   string      `json:"id" validate:"required"`
	Action               string      `json:"action" validate:"required"`
	Subject              string      `json:"subject" validate:"required"`
	Content              *string     `json:"content,omitempty"`
	ImageURL             *string     `json:"imageURL,omitempty"`
	LikesCount           int         `json:"likesCount" validate:"gte=0"`
	CreatedAt            *Timestamp  `json:"createdAt,omitempty"`
	Author               UserSummary `json:"author" validate:"required"`
	IsLikedByCurrentUser *bool       `json:"isLikedByCurrentUser,omitempty"`
	CommentsCount        *int        `json:"commentsCount,omitempty"`
}

// GetID returns the post identifier.
func (p PostResponse) GetID() string { return p.ID }

// LikedByMe reports whether the requesting session liked the post.
// An absent flag counts as not liked.
func (p PostResponse) LikedByMe() bool {
	return p.IsLikedByCurrentUser != nil && *p.IsLikedByCurrentUser
}

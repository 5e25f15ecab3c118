package dto

// CreateTopicRequest is the body of POST topics.
type CreateTopicRequest struct {
	Name             string `json:"name" validate:"required,max=64"`
	TopicDescription string `json:"topicDescription" validate:"max=500"`
}

// TopicResponse is a topic with its post count.
type TopicResponse struct {
	ID               string     `json:"id" validate:"required"`
	Name             string     `json:"name" validate:"required"`
	TopicDescription string     `json:"topicDescription"`
	CreatedAt        *Timestamp `json:"createdAt,omitempty"`
	PostsCount       *int       `json:"postsCount,omitempty"`
}

// GetID returns the topic identifier.
func (t TopicResponse) GetID() string { return t.ID }

// TopicSummary is how a topic appears nested inside a TopicPostResponse.
type TopicSummary struct {
	ID               string `json:"id" validate:"required"`
	Name             string `json:"name" validate:"required"`
	TopicDescription string `json:"topicDescription"`
}

// CreateTopicPostRequest is the body of POST topics/{id}/posts.
type CreateTopicPostRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// UpdateTopicPostRequest is the body of PUT topicposts/{id}.
type UpdateTopicPostRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// TopicPostResponse is a post inside a topic.
type TopicPostResponse struct {
	ID                   string       `json:"id" validate:"required"`
	Content              string       `json:"content" validate:"required"`
	LikesCount           int          `json:"likesCount" validate:"gte=0"`
	CreatedAt            *Timestamp   `json:"createdAt,omitempty"`
	Author               UserSummary  `json:"author" validate:"required"`
	Topic                TopicSummary `json:"topic" validate:"required"`
	IsLikedByCurrentUser *bool        `json:"isLikedByCurrentUser,omitempty"`
	CommentsCount        *int         `json:"commentsCount,omitempty"`
}

// GetID returns the topic-post identifier.
func (p TopicPostResponse) GetID() string { return p.ID }

// LikedByMe reports whether the requesting session liked the topic-post.
func (p TopicPostResponse) LikedByMe() bool {
	return p.IsLikedByCurrentUser != nil && *p.IsLikedByCurrentUser
}

package model

import "time"

// Post is an "action + subject" update ("watched" + "Dune").
//
// LikesCount is not a stored column. The store computes it from the like set
// on every read, so LikesCount == len(liked-by) holds by construction.
type Post struct {
	ID         string
	AuthorID   string
	Action     string
	Subject    string
	Content    *string
	ImageURL   *string
	LikesCount int
	CreatedAt  time.Time
}

// PostView is a Post joined with what a reader needs to render it.
// LikedByViewer and CommentsCount are relative to the requesting user.
type PostView struct {
	Post
	Author        User
	LikedByViewer bool
	CommentsCount int
}

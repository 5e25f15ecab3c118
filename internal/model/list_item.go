package model

import "time"

// ListItem is one entry in a user's personal wishlist ("watch" + "Dune").
type ListItem struct {
	ID        string
	UserID    string
	Action    string
	Subject   string
	IsPublic  bool
	CreatedAt time.Time
}

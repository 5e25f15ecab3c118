// Package model defines the entities persisted by the backing store.
//
// These are the stored shapes, not the wire shapes. The transfer
// representations in internal/dto flatten relationships into summaries and add
// fields (isLikedByCurrentUser, commentsCount) that only make sense relative to
// a requesting session.
//
// RELATIONSHIPS ARE FOREIGN KEYS, NOT POINTERS:
// A Post stores AuthorID, not *User. Cascading deletes walk these references
// explicitly in the store (see repository/sqlite/cascade.go), so the object
// graph never needs back-pointers.
package model

import "time"

// User is a registered account.
//
// Username and Email are unique among users. PasswordHash never leaves the
// store and service layers.
type User struct {
	ID              string
	Username        string
	DisplayName     string
	Email           string
	PasswordHash    string
	Bio             string
	ProfileImageURL *string
	CreatedAt       time.Time
}

package model

import "time"

// Entity is a place or venue that hosts Events.
type Entity struct {
	ID          string
	Name        string
	Address     string
	ImageURL    *string
	EventsCount int
	CreatedAt   time.Time
}

// Event always belongs to one Entity.
type Event struct {
	ID          string
	EntityID    string
	Name        string
	Date        time.Time
	Description *string
	Link        *string
	ImageURL    *string
	CreatedAt   time.Time
}

// EventView is an Event joined with its hosting Entity.
type EventView struct {
	Event
	Entity Entity
}

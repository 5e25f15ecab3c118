package dto

// CreateEntityRequest is the body of POST entities.
type CreateEntityRequest struct {
	Name     string  `json:"name" validate:"required,max=120"`
	Address  string  `json:"address" validate:"required,max=240"`
	ImageURL *string `json:"imageURL,omitempty" validate:"omitempty,url"`
}

// UpdateEntityRequest is the body of PUT entities/{id}. Nil fields are left unchanged.
type UpdateEntityRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Address  *string `json:"address,omitempty" validate:"omitempty,min=1,max=240"`
	ImageURL *string `json:"imageURL,omitempty" validate:"omitempty,url"`
}

// EntityResponse is a venue with its event count.
type EntityResponse struct {
	ID          string     `json:"id" validate:"required"`
	Name        string     `json:"name" validate:"required"`
	Address     string     `json:"address" validate:"required"`
	ImageURL    *string    `json:"imageURL,omitempty"`
	CreatedAt   *Timestamp `json:"createdAt,omitempty"`
	EventsCount *int       `json:"eventsCount,omitempty"`
}

// GetID returns the entity identifier.
func (e EntityResponse) GetID() string { return e.ID }

// EntitySummary is how a venue appears nested inside an EventResponse.
type EntitySummary struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// CreateEventRequest is the body of POST events.
type CreateEventRequest struct {
	Name             string    `json:"name" validate:"required,max=120"`
	Date             Timestamp `json:"date" validate:"required"`
	EntityID         string    `json:"entityID" validate:"required"`
	EventDescription *string   `json:"eventDescription,omitempty" validate:"omitempty,max=2000"`
	Link             *string   `json:"link,omitempty" validate:"omitempty,url"`
	ImageURL         *string   `json:"imageURL,omitempty" validate:"omitempty,url"`
}

// UpdateEventRequest is the body of PUT events/{id}. Nil fields are left unchanged.
type UpdateEventRequest struct {
	Name             *string    `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Date             *Timestamp `json:"date,omitempty"`
	EventDescription *string    `json:"eventDescription,omitempty" validate:"omitempty,max=2000"`
	Link             *string    `json:"link,omitempty" validate:"omitempty,url"`
	ImageURL         *string    `json:"imageURL,omitempty" validate:"omitempty,url"`
}

// EventResponse is an event with its hosting venue.
type EventResponse struct {
	ID               string        `json:"id" validate:"required"`
	Name             string        `json:"name" validate:"required"`
	Date             Timestamp     `json:"date" validate:"required"`
	EventDescription *string       `json:"eventDescription,omitempty"`
	Link             *string       `json:"link,omitempty"`
	ImageURL         *string       `json:"imageURL,omitempty"`
	CreatedAt        *Timestamp    `json:"createdAt,omitempty"`
	Entity           EntitySummary `json:"entity" validate:"required"`
}

// GetID returns the event identifier.
func (e EventResponse) GetID() string { return e.ID }

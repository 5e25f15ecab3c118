package dto

// CreateListItemRequest is the body of POST list.
type CreateListItemRequest struct {
	Action   string `json:"action" validate:"required,max=32"`
	Subject  string `json:"subject" validate:"required,max=200"`
	IsPublic bool   `json:"isPublic"`
}

// ListItemResponse is one wishlist entry.
type ListItemResponse struct {
	ID        string     `json:"id" validate:"required"`
	Action    string     `json:"action" validate:"required"`
	Subject   string     `json:"subject" validate:"required"`
	IsPublic  bool       `json:"isPublic"`
	CreatedAt *Timestamp `json:"createdAt,omitempty"`
}

// GetID returns the list item identifier.
func (i ListItemResponse) GetID() string { return i.ID }

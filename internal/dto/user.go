package dto

// UserResponse is the full public profile of a user.
type UserResponse struct {
	ID              string     `json:"id" validate:"required"`
	Username        string     `json:"username" validate:"required"`
	DisplayName     string     `json:"displayName" validate:"required"`
	Bio             string     `json:"bio"`
	ProfileImageURL *string    `json:"profileImageURL,omitempty"`
	CreatedAt       *Timestamp `json:"createdAt,omitempty"`
}

// UserSummary is how a user appears nested inside other representations.
type UserSummary struct {
	ID          string `json:"id" validate:"required"`
	Username    string `json:"username" validate:"required"`
	DisplayName string `json:"displayName" validate:"required"`
}

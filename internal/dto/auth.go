package dto

// RegisterRequest is the body of POST auth/register.
type RegisterRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=32"`
	DisplayName string  `json:"displayName" validate:"required,max=64"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6,max=72"`
	Bio         *string `json:"bio,omitempty" validate:"omitempty,max=280"`
}

// LoginRequest is the body of POST auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string       `json:"token" validate:"required"`
	User  UserResponse `json:"user" validate:"required"`
}

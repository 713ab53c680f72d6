package types

import (
	"github.com/google/uuid"

	"github.com/pageza/recipe-api/backend/internal/models"
)

// CreateUserRequest represents the request body for registering a user
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5"`
	Name     string `json:"name" binding:"max=255"`
}

// TokenRequest represents the credentials exchanged for an auth token
type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries a signed auth token
type TokenResponse struct {
	Token string `json:"token"`
}

// UpdateUserRequest represents a full or partial update of the current user.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Password *string `json:"password" binding:"omitempty,min=5"`
}

// UserResponse is the public representation of a user
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// NewUserResponse builds the API payload for a user
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

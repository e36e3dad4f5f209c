package dto

import (
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// UserResponse is a user as serialized for clients. The password hash is
// excluded at the entity level already; this DTO fixes the exposed field set.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     string    `json:"image,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse builds the user DTO.
func NewUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Image:     user.Image,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// NewListUserResponse builds DTOs for a user listing.
func NewListUserResponse(users []entity.User) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i := range users {
		out[i] = NewUserResponse(&users[i])
	}
	return out
}

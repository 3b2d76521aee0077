package response

import (
	"time"

	"airport-api/internal/data/entity"
)

type TokenResponse struct {
	Access    string    `json:"access"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsStaff:   user.IsStaff,
		CreatedAt: user.CreatedAt,
	}
}

package response

import (
	"time"

	"event-ticketing/internal/data/entity"
)

type UserResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	ProfilePicture *string         `json:"profile_picture,omitempty"`
	Role           entity.UserRole `json:"role"`
	CreatedAt      time.Time       `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:             user.ID.String(),
		Name:           user.Name,
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
		Role:           user.Role,
		CreatedAt:      user.CreatedAt,
	}
}

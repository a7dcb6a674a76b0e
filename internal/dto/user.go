package dto

import (
	"time"

	"github.com/SeatLogix/desk_booking_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a new user.
type CreateUserRequest struct {
	Username            string `json:"username" binding:"required,min=3,max=64"`
	Email               string `json:"email" binding:"required,email"`
	Password            string `json:"password" binding:"required,min=8"`
	FullName            string `json:"fullName" binding:"required"`
	Department          string `json:"department"`
	Role                string `json:"role" binding:"omitempty,oneof=admin manager employee"`
	DefaultWorkDays     []int  `json:"defaultWorkDays" binding:"omitempty,workdays"`
	RequiredDaysPerWeek int    `json:"requiredDaysPerWeek" binding:"omitempty,min=1,max=7"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	FullName   *string `json:"fullName"`
	Department *string `json:"department"`
	Email      *string `json:"email" binding:"omitempty,email"`
	IsActive   *bool   `json:"isActive"`
}

// UpdateWorkPreferencesRequest sets the defaults the auto-booking allocator
// reads for a user.
type UpdateWorkPreferencesRequest struct {
	DefaultWorkDays     []int `json:"defaultWorkDays" binding:"required,workdays"`
	RequiredDaysPerWeek int   `json:"requiredDaysPerWeek" binding:"required,min=1,max=7"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID              string    `json:"userID"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	FullName            string    `json:"fullName"`
	Department          string    `json:"department"`
	Role                string    `json:"role"`
	IsActive            bool      `json:"isActive"`
	DefaultWorkDays     []int     `json:"defaultWorkDays"`
	RequiredDaysPerWeek int       `json:"requiredDaysPerWeek"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:              u.UserID,
		Username:            u.Username,
		Email:               u.Email,
		FullName:            u.FullName,
		Department:          u.Department,
		Role:                string(u.Role),
		IsActive:            u.IsActive,
		DefaultWorkDays:     u.DefaultWorkDays,
		RequiredDaysPerWeek: u.RequiredDaysPerWeek,
		CreatedAt:           u.CreatedAt,
	}
}

// ToListUsersResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}

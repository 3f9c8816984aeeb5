// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/usersvc/usersvc/internal/model"
)

// CreateUserRequest is the body of POST /users.
// Fields are pointers so that an omitted field reaches the store as NULL.
type CreateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserLookupResponse is a single-user read, flagged with where it came from.
type UserLookupResponse struct {
	UserResponse
	FromCache bool `json:"fromCache"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ToUserLookupResponse converts a User model plus its source flag.
func ToUserLookupResponse(user *model.User, fromCache bool) UserLookupResponse {
	return UserLookupResponse{
		UserResponse: ToUserResponse(user),
		FromCache:    fromCache,
	}
}

// ToUserListResponse converts users to a JSON array; never nil.
func ToUserListResponse(users []*model.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}

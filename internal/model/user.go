package model

import (
	"time"

	"github.com/google/uuid"
)

// Role names used throughout the authorization layer.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account that can log in: an applicant or an administrator.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Phone    string `json:"phone" binding:"omitempty,min=7,max=20"`
}

// LoginRequest is the payload for email/password authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the payload for exchanging a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenPair is returned after successful authentication.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UpdateUserRequest is the payload for profile updates. Roles and password
// are deliberately absent — roles change via AssignRoles, passwords via a
// dedicated endpoint.
type UpdateUserRequest struct {
	FullName string `json:"full_name" binding:"omitempty,min=2,max=100"`
	Phone    string `json:"phone" binding:"omitempty,min=7,max=20"`
}

// AssignRolesRequest is the admin payload for replacing a user's role set.
type AssignRolesRequest struct {
	Roles []string `json:"roles" binding:"required,min=1,dive,oneof=admin user"`
}

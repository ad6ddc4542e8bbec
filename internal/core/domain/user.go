package domain

import "time"

// User models an authenticated actor in the system.
//
// IsStaff and IsActive are re-read from the user store on every request; they
// are never trusted from token claims, so a role change takes effect on the
// next request regardless of tokens already in the wild.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"is_staff"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"blog_backend/internal/shared/identity"
)

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// Name is the display name.
	Name string `gorm:"size:100;not null" json:"name"`

	// Username must be unique across all users.
	Username string `gorm:"uniqueIndex;size:50;not null" json:"username"`

	// Email is used to log in and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:150;not null" json:"email"`

	// Password is the bcrypt digest of the user's password. Never serialized.
	Password string `gorm:"size:255;not null" json:"-"`

	// IsActive is false once the user deactivated the account.
	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Identity returns the read-only snapshot handed to request handlers.
func (u *User) Identity() identity.Identity {
	return identity.Identity{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
}

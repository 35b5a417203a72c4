// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account in the system.
// It contains authentication credentials and metadata for account management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the public handle used for login.
	// It must be unique across all users and must never be empty.
	Username string `gorm:"uniqueIndex;size:64;not null;check:username <> ''"`

	// Email is the user's contact address. Its shape is validated at the
	// transport layer; the store only requires it to be present.
	Email string `gorm:"size:255;not null;check:email <> ''"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Plaintext passwords are never persisted and the hash is never
	// serialized into any HTTP response.
	PasswordHash string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

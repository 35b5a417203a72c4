// Package entity defines the domain entities for the conversations feature.
package entity

import (
	"time"

	authentity "conversation_backend/internal/feature/auth/domain/entity"
)

// Conversation represents a named, password-protected chat room.
// The room password is stored hashed; entering a room does not require it
// yet (see the handler).
type Conversation struct {
	// ID is the unique identifier for the conversation.
	ID uint `gorm:"primaryKey"`

	// Name is the unique room name, also used as the broker topic suffix.
	Name string `gorm:"uniqueIndex;size:64;not null;check:name <> ''"`

	// PasswordHash is the bcrypt hash of the room password.
	// It is never serialized into any HTTP response.
	PasswordHash string `gorm:"size:255;not null"`

	// CreatedBy references the owning user. Deleting the owner cascades
	// to the rooms they created; ownership never changes after creation.
	CreatedBy uint `gorm:"index;not null"`

	// Owner backs the foreign key constraint; left nil on insert so GORM
	// only writes CreatedBy.
	Owner *authentity.User `gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`

	// CreatedAt is the timestamp when the conversation was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the conversation was last updated.
	UpdatedAt time.Time
}

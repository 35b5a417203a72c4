// Package usecase implements the business logic for the conversations feature.
package usecase

import "errors"

var (
	// ErrConversationNotFound is returned when a conversation cannot be found by name or ID.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrNameTaken is returned when attempting to create a conversation whose name already exists.
	ErrNameTaken = errors.New("a conversation with this name already exists")
)

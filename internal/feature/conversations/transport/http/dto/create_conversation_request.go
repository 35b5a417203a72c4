// Package dto defines data transfer objects for the conversations feature's HTTP transport layer.
package dto

// CreateConversationReq represents the request body for creating a conversation.
// Structural validation (name length, password confirmation) runs via Gin's
// binding tags; name uniqueness is checked against the store in the usecase.
type CreateConversationReq struct {
	Name            string `json:"name" form:"name" binding:"required,min=8,max=30"`
	Password        string `json:"password" form:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" binding:"required,eqfield=Password"`
}

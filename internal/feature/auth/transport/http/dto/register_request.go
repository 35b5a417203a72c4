// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for the /register endpoint.
// It uses Gin's binding tags for structural validation (required fields,
// username length, email format, password confirmation). Store-backed
// uniqueness checks happen in the usecase, as a separate pass.
type RegisterReq struct {
	Username        string `json:"username" form:"username" binding:"required,min=4,max=20"`
	Email           string `json:"email" form:"email" binding:"required,email"`
	Password        string `json:"password" form:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" binding:"required,eqfield=Password"`
}

// Package dto defines the request and response payloads for the auth endpoints.
package dto

// SignupReq is the JSON body for POST /signup.
type SignupReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

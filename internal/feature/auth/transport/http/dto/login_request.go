// Package dto defines the request and response bodies of the auth endpoints.
package dto

// LoginReq is the request body of POST /users/login.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenRes is returned by register and login.
type TokenRes struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewTokenRes wraps an access token in a bearer TokenRes.
func NewTokenRes(token string) TokenRes {
	return TokenRes{AccessToken: token, TokenType: "bearer"}
}

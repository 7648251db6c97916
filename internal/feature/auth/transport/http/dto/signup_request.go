package dto

// SignupReq is the request body of POST /users/register.
// Gin's binding tags check presence, email format and password length.
type SignupReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// MeRes is the body of GET /users/me.
type MeRes struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

package dto

// LoginRequest carries credentials for POST /sessions. Accepts form or JSON bodies.
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ResetTokenRequest asks for a password reset token.
type ResetTokenRequest struct {
	Email string `form:"email" json:"email"`
}

// ResetTokenResponse returns the freshly issued reset token.
type ResetTokenResponse struct {
	Email      string `json:"email"`
	ResetToken string `json:"reset_token"`
}

// UpdatePasswordRequest consumes a reset token to set a new password.
type UpdatePasswordRequest struct {
	Email       string `form:"email" json:"email"`
	ResetToken  string `form:"reset_token" json:"reset_token"`
	NewPassword string `form:"new_password" json:"new_password"`
}

// MessageResponse is a generic email + message acknowledgement.
type MessageResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// StatusResponse is returned by the status endpoint and on logout.
type StatusResponse struct {
	Status string `json:"status"`
}

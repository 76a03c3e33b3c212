package handlers

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse represents a plain success message
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterRequest represents registration request data
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents login request data
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse represents token response data
type TokenResponse struct {
	Token string `json:"token"`
}

// SendOTPRequest represents the send-otp request payload
type SendOTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest represents the verify-otp request payload
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

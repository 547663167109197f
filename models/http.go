package models

// RegisterRequest is the JSON body of POST /api/user/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// LoginRequest is the JSON body of POST /api/user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// ChangePasswordRequest is the JSON body of POST /api/user/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// RevokeSessionsRequest is the JSON body of POST /api/user/sessions/revoke.
type RevokeSessionsRequest struct {
	Password string `json:"password"`
}

// ErrorResponse is the JSON envelope for expected authentication failures.
type ErrorResponse struct {
	Error *AuthError `json:"error"`
}

// FlashResponse carries the consumed flash notice for a channel, or null
// when nothing was pending.
type FlashResponse struct {
	Notice *FlashNotice `json:"notice"`
}

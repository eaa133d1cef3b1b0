package handler

import identityapp "github.com/realtyadmin/backend/internal/application/identity"

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"admin"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"changeme123"`
}

// RefreshTokenRequest represents the request body for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest optionally carries the refresh token so it is revoked too
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest represents the request body for password change
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// LoginResponse represents the response body for successful login
type LoginResponse = identityapp.LoginResult

// RefreshTokenResponse represents the response body for successful token refresh
type RefreshTokenResponse = identityapp.RefreshTokenResult

// MessageResponse carries a human readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

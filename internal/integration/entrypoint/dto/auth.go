// Package dto defines the JSON bodies of the HTTP API.
package dto

import (
	"time"

	"github.com/commitly/backend/internal/application/usecase/auth"
	"github.com/commitly/backend/internal/domain/entity"
)

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name" binding:"max=100"`
	// Timezone is an IANA name. Empty means UTC.
	Timezone string `json:"timezone"`
}

type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest is the body of both /auth/refresh and /auth/logout.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// DeleteAccountRequest confirms account deletion. Confirmation must be "DELETE".
type DeleteAccountRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation"`
}

// UpdateProfileRequest is a partial update. Nil fields are not touched.
type UpdateProfileRequest struct {
	DisplayName        *string `json:"display_name,omitempty" binding:"omitempty,max=100"`
	Timezone           *string `json:"timezone,omitempty"`
	EmailNotifications *bool   `json:"email_notifications,omitempty"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	TokenResponse
	User UserResponse `json:"user"`
}

func ToAuthResponse(s *auth.Session) AuthResponse {
	return AuthResponse{
		TokenResponse: TokenResponse{AccessToken: s.AccessToken, RefreshToken: s.RefreshToken},
		User:          ToUserResponse(s.User),
	}
}

type UserResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	DisplayName        string    `json:"display_name"`
	Timezone           string    `json:"timezone"`
	EmailNotifications bool      `json:"email_notifications"`
	CreatedAt          time.Time `json:"created_at"`
}

func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:                 u.ID.String(),
		Email:              u.Email,
		DisplayName:        u.DisplayName,
		Timezone:           u.Timezone,
		EmailNotifications: u.EmailNotifications,
		CreatedAt:          u.CreatedAt,
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every 4xx and 5xx answer. Code is the coded domain error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

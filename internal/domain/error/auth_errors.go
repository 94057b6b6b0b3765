// Package error defines the coded domain errors. Every code has the form
// AREA-CCNNNN, where CC is a category within the area. Controllers map codes to
// HTTP statuses.
package error

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password does not meet minimum requirements")
	// ErrInvalidTimezone means the name is not in the IANA database.
	ErrInvalidTimezone = errors.New("invalid timezone")
)

type AuthErrorCode string

const (
	// 01: registration and profile input
	ErrCodeEmailExists     AuthErrorCode = "AUTH-010001"
	ErrCodeInvalidEmail    AuthErrorCode = "AUTH-010002"
	ErrCodeWeakPassword    AuthErrorCode = "AUTH-010003"
	ErrCodeMissingFields   AuthErrorCode = "AUTH-010005"
	ErrCodeInvalidTimezone AuthErrorCode = "AUTH-010006"

	// 02: credentials
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"

	// 03: bearer and refresh tokens
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"

	// 05: account lifecycle
	ErrCodeInvalidConfirmation AuthErrorCode = "AUTH-050001"
)

// AuthError carries an AUTH code alongside the sentinel it wraps.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AuthError) Unwrap() error { return e.Err }

func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{Code: code, Message: message, Err: err}
}

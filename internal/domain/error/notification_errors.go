package error

import "errors"

// Notification domain errors.
var (
	// ErrNotificationNotFound is returned when a notification is not found in the system.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrNotNotificationRecipient is returned when a user touches someone else's notification.
	ErrNotNotificationRecipient = errors.New("notification belongs to another user")
)

// NotificationErrorCode defines error codes for notification errors.
// Format: NTF-XXYYYY where XX is category and YYYY is specific error.
type NotificationErrorCode string

const (
	ErrCodeNotificationNotFound     NotificationErrorCode = "NTF-010001"
	ErrCodeNotNotificationRecipient NotificationErrorCode = "NTF-020001"
)

// NotificationError represents a notification error with code and message.
type NotificationError struct {
	Code    NotificationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *NotificationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *NotificationError) Unwrap() error {
	return e.Err
}

// NewNotificationError creates a new NotificationError with the given code and message.
func NewNotificationError(code NotificationErrorCode, message string, err error) *NotificationError {
	return &NotificationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

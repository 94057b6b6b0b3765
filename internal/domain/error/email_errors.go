package error

import "errors"

// Notification email errors.
var (
	// ErrEmailJobNotFound is returned when a queued email job does not exist.
	ErrEmailJobNotFound = errors.New("email job not found")

	// ErrUnknownEmailTemplate is returned when a job names a template the renderer does not know.
	ErrUnknownEmailTemplate = errors.New("unknown email template")
)

// EmailErrorCode defines error codes for notification delivery.
// Format: MAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Queueing (01XXXX)
	ErrCodeEmailQueueFailed EmailErrorCode = "MAIL-010001"

	// Delivery (02XXXX). Permanent failures are never retried.
	ErrCodeDeliveryPermanent EmailErrorCode = "MAIL-020001"
	ErrCodeDeliveryTemporary EmailErrorCode = "MAIL-020002"

	// Rendering (03XXXX)
	ErrCodeUnknownTemplate EmailErrorCode = "MAIL-030001"
)

// EmailError wraps a failure to queue, render or deliver a notification email.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsPermanentDelivery reports whether err carries a delivery failure that retrying cannot fix.
func IsPermanentDelivery(err error) bool {
	var emailErr *EmailError
	if !errors.As(err, &emailErr) {
		return false
	}
	return emailErr.Code == ErrCodeDeliveryPermanent || emailErr.Code == ErrCodeUnknownTemplate
}

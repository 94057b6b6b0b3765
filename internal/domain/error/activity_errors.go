package error

import "errors"

// Activity domain errors.
var (
	// ErrActivityNotFound is returned when an activity is not found in the system.
	ErrActivityNotFound = errors.New("activity not found")

	// ErrActivityTitleRequired is returned when the activity title is empty.
	ErrActivityTitleRequired = errors.New("activity title is required")

	// ErrActivityGoalMismatch is returned when the activity belongs to another goal.
	ErrActivityGoalMismatch = errors.New("activity does not belong to goal")

	// ErrSingleGoalHasActivity is returned when a second activity is added to a single-task goal.
	ErrSingleGoalHasActivity = errors.New("single-task goals hold exactly one activity")
)

// ActivityErrorCode defines error codes for activity errors.
// Format: ACT-XXYYYY where XX is category and YYYY is specific error.
type ActivityErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeActivityNotFound      ActivityErrorCode = "ACT-010001"
	ErrCodeActivityTitleRequired ActivityErrorCode = "ACT-010002"
	ErrCodeActivityGoalMismatch  ActivityErrorCode = "ACT-010003"
	ErrCodeSingleGoalHasActivity ActivityErrorCode = "ACT-010004"
	ErrCodeMissingActivityFields ActivityErrorCode = "ACT-010005"
)

// ActivityError represents an activity error with code and message.
type ActivityError struct {
	Code    ActivityErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ActivityError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ActivityError) Unwrap() error {
	return e.Err
}

// NewActivityError creates a new ActivityError with the given code and message.
func NewActivityError(code ActivityErrorCode, message string, err error) *ActivityError {
	return &ActivityError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

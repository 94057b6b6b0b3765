package error

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Streak domain errors.
var (
	// ErrStreakOrdering is matched by every StreakOrderingError.
	ErrStreakOrdering = errors.New("completion date precedes last completed date")

	// ErrInvalidCompletionDate is returned when a completion date cannot be parsed.
	ErrInvalidCompletionDate = errors.New("invalid completion date")

	// ErrCompletionInFuture is returned when a completion is recorded for a day after today.
	ErrCompletionInFuture = errors.New("completion date is in the future")

	// ErrStreakBusy is returned when the per-streak lock cannot be acquired in time.
	ErrStreakBusy = errors.New("another completion for this goal is being processed")
)

// StreakOrderingError is returned when a completion is applied with a date earlier than
// the streak's last completed date. The streak is left unchanged.
type StreakOrderingError struct {
	GoalID        uuid.UUID
	UserID        uuid.UUID
	LastCompleted string
	Attempted     string
}

// Error implements the error interface.
func (e *StreakOrderingError) Error() string {
	return fmt.Sprintf("completion on %s precedes last completion on %s for goal %s",
		e.Attempted, e.LastCompleted, e.GoalID)
}

// Is makes errors.Is(err, ErrStreakOrdering) match.
func (e *StreakOrderingError) Is(target error) bool {
	return target == ErrStreakOrdering
}

// StreakErrorCode defines error codes for streak errors.
// Format: STK-XXYYYY where XX is category and YYYY is specific error.
type StreakErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCompletionDate StreakErrorCode = "STK-010001"
	ErrCodeCompletionInFuture    StreakErrorCode = "STK-010002"

	// Ordering and concurrency errors (02XXXX)
	ErrCodeStreakOrdering StreakErrorCode = "STK-020001"
	ErrCodeStreakBusy     StreakErrorCode = "STK-020002"
)

// StreakError represents a streak error with code and message.
type StreakError struct {
	Code    StreakErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StreakError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StreakError) Unwrap() error {
	return e.Err
}

// NewStreakError creates a new StreakError with the given code and message.
func NewStreakError(code StreakErrorCode, message string, err error) *StreakError {
	return &StreakError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

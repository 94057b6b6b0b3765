package error

import (
	"errors"
	"fmt"
)

var (
	ErrGoalNotFound          = errors.New("goal not found")
	ErrInvalidGoalType       = errors.New("invalid goal type")
	ErrInvalidGoalVisibility = errors.New("invalid goal visibility")
	ErrInvalidGoalStatus     = errors.New("invalid goal status")
	ErrGoalTitleRequired     = errors.New("goal title is required")
	// ErrInvalidReportedProgress applies to recurring goals only.
	ErrInvalidReportedProgress = errors.New("reported progress must be between 0 and 100")
	ErrUnauthorizedGoalAccess  = errors.New("unauthorized access to goal")
	// ErrEditWindowClosed is returned once a finished goal's edit window has passed.
	ErrEditWindowClosed = errors.New("goal can no longer be edited")
	// ErrInvalidStatusTransition matches every *InvalidStatusTransitionError.
	ErrInvalidStatusTransition = errors.New("invalid goal status transition")
	// ErrGoalStatusChanged means another request moved the goal first.
	ErrGoalStatusChanged = errors.New("goal status changed concurrently")
)

// InvalidStatusTransitionError names the rejected move between goal statuses.
type InvalidStatusTransitionError struct {
	From string
	To   string
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("cannot change goal status from %q to %q", e.From, e.To)
}

func (e *InvalidStatusTransitionError) Is(target error) bool {
	return target == ErrInvalidStatusTransition
}

type GoalErrorCode string

const (
	// 01: lookup and input
	ErrCodeGoalNotFound            GoalErrorCode = "GOL-010001"
	ErrCodeInvalidGoalType         GoalErrorCode = "GOL-010002"
	ErrCodeInvalidGoalVisibility   GoalErrorCode = "GOL-010003"
	ErrCodeInvalidGoalStatus       GoalErrorCode = "GOL-010004"
	ErrCodeGoalTitleRequired       GoalErrorCode = "GOL-010005"
	ErrCodeUnauthorizedGoalAccess  GoalErrorCode = "GOL-010006"
	ErrCodeInvalidReportedProgress GoalErrorCode = "GOL-010007"
	ErrCodeMissingGoalFields       GoalErrorCode = "GOL-010008"

	// 02: lifecycle policy
	ErrCodeEditWindowClosed        GoalErrorCode = "GOL-020001"
	ErrCodeInvalidStatusTransition GoalErrorCode = "GOL-020002"
)

type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

func (e *GoalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *GoalError) Unwrap() error { return e.Err }

func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{Code: code, Message: message, Err: err}
}

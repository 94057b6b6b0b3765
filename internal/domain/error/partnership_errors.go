package error

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Partnership domain errors.
var (
	// ErrPartnershipNotFound is returned when a partnership is not found in the system.
	ErrPartnershipNotFound = errors.New("partnership not found")

	// ErrPartnershipAlreadyExists is returned when an open partnership already exists for the pair and goal.
	ErrPartnershipAlreadyExists = errors.New("partnership already exists")

	// ErrCannotPartnerSelf is returned when a user tries to partner with themselves.
	ErrCannotPartnerSelf = errors.New("cannot become your own accountability partner")

	// ErrPartnerNotRegistered is returned when the invited email is not a registered user.
	ErrPartnerNotRegistered = errors.New("user is not registered on the platform")

	// ErrNotInvitedPartner is returned when someone other than the invited partner responds.
	ErrNotInvitedPartner = errors.New("only the invited partner can respond")

	// ErrPartnershipNotPending is returned when responding to a partnership that was already answered.
	ErrPartnershipNotPending = errors.New("partnership is no longer pending")

	// ErrNotPartnershipMember is returned when a user outside the partnership tries to change it.
	ErrNotPartnershipMember = errors.New("user is not part of this partnership")

	// ErrPartnerLookup is matched by every PartnerLookupError.
	ErrPartnerLookup = errors.New("partner lookup failed")
)

// PartnerLookupError is a non-fatal, per-partner failure during notification fan-out.
// The partner is skipped and delivery to the other partners continues.
type PartnerLookupError struct {
	PartnershipID uuid.UUID
	PartnerID     uuid.UUID
	Err           error
}

// Error implements the error interface.
func (e *PartnerLookupError) Error() string {
	return fmt.Sprintf("failed to look up partner %s of partnership %s: %v", e.PartnerID, e.PartnershipID, e.Err)
}

// Unwrap returns the underlying error.
func (e *PartnerLookupError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrPartnerLookup) match.
func (e *PartnerLookupError) Is(target error) bool {
	return target == ErrPartnerLookup
}

// PartnershipErrorCode defines error codes for partnership errors.
// Format: PTN-XXYYYY where XX is category and YYYY is specific error.
type PartnershipErrorCode string

const (
	// Resource errors (01XXXX)
	ErrCodePartnershipNotFound      PartnershipErrorCode = "PTN-010001"
	ErrCodePartnerNotRegistered     PartnershipErrorCode = "PTN-010002"
	ErrCodePartnershipAlreadyExists PartnershipErrorCode = "PTN-010003"
	ErrCodeMissingPartnershipFields PartnershipErrorCode = "PTN-010004"

	// Permission errors (02XXXX)
	ErrCodeCannotPartnerSelf       PartnershipErrorCode = "PTN-020001"
	ErrCodeNotInvitedPartner       PartnershipErrorCode = "PTN-020002"
	ErrCodeNotPartnershipMember    PartnershipErrorCode = "PTN-020003"
	ErrCodePartnershipNotPending   PartnershipErrorCode = "PTN-020004"
	ErrCodePartnershipGoalNotOwned PartnershipErrorCode = "PTN-020005"
)

// PartnershipError represents a partnership error with code and message.
type PartnershipError struct {
	Code    PartnershipErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PartnershipError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PartnershipError) Unwrap() error {
	return e.Err
}

// NewPartnershipError creates a new PartnershipError with the given code and message.
func NewPartnershipError(code PartnershipErrorCode, message string, err error) *PartnershipError {
	return &PartnershipError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

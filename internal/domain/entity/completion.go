// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/valueobject"
)

// CompletionSource tells where a completion event came from.
type CompletionSource string

const (
	CompletionSourceCheckIn  CompletionSource = "check_in"
	CompletionSourceActivity CompletionSource = "activity"
)

// CompletionEvent records that a user completed a goal (or one of its activities) on a calendar day.
// Several events on the same day are allowed.
type CompletionEvent struct {
	ID             uuid.UUID
	GoalID         uuid.UUID
	UserID         uuid.UUID
	ActivityID     *uuid.UUID
	CompletionDate valueobject.Date
	Source         CompletionSource
	CreatedAt      time.Time
}

// NewCompletionEvent creates a new CompletionEvent entity.
func NewCompletionEvent(goalID, userID uuid.UUID, date valueobject.Date, source CompletionSource) *CompletionEvent {
	return &CompletionEvent{
		ID:             uuid.New(),
		GoalID:         goalID,
		UserID:         userID,
		CompletionDate: date,
		Source:         source,
		CreatedAt:      time.Now().UTC(),
	}
}

// Key returns the streak key the event applies to.
func (e *CompletionEvent) Key() StreakKey {
	return StreakKey{GoalID: e.GoalID, UserID: e.UserID}
}

// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Activity represents one checklist item of a goal.
type Activity struct {
	ID          uuid.UUID
	GoalID      uuid.UUID
	Title       string
	IsCompleted bool
	CompletedAt *time.Time
	OrderIndex  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewActivity creates a new incomplete Activity entity.
func NewActivity(goalID uuid.UUID, title string, orderIndex int) *Activity {
	now := time.Now().UTC()

	return &Activity{
		ID:         uuid.New(),
		GoalID:     goalID,
		Title:      title,
		OrderIndex: orderIndex,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// MarkCompleted marks the activity as completed at the given time.
func (a *Activity) MarkCompleted(at time.Time) {
	a.IsCompleted = true
	at = at.UTC()
	a.CompletedAt = &at
	a.UpdatedAt = time.Now().UTC()
}

// MarkIncomplete clears the completion of the activity.
func (a *Activity) MarkIncomplete() {
	a.IsCompleted = false
	a.CompletedAt = nil
	a.UpdatedAt = time.Now().UTC()
}

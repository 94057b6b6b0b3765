// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/valueobject"
)

// StreakKey identifies the streak of one user on one goal.
type StreakKey struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// String returns a stable string form of the key, used for lock names.
func (k StreakKey) String() string {
	return k.GoalID.String() + ":" + k.UserID.String()
}

// Streak holds the consecutive-day completion counters for a (goal, user) pair.
type Streak struct {
	GoalID            uuid.UUID
	UserID            uuid.UUID
	CurrentStreak     int
	LongestStreak     int
	LastCompletedDate *valueobject.Date
	TotalCompletions  int
	UpdatedAt         time.Time
}

// NewStreak returns the empty streak for the key.
func NewStreak(key StreakKey) Streak {
	return Streak{
		GoalID: key.GoalID,
		UserID: key.UserID,
	}
}

// Key returns the (goal, user) key of the streak.
func (s Streak) Key() StreakKey {
	return StreakKey{GoalID: s.GoalID, UserID: s.UserID}
}

// HasHistory reports whether any completion has been applied.
func (s Streak) HasHistory() bool {
	return s.LastCompletedDate != nil
}

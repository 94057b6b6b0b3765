package engine

import (
	"time"

	"github.com/commitly/backend/internal/domain/entity"
)

// EditWindow is how long after creation a goal's details stay mutable.
const EditWindow = 5 * time.Hour

// CanEdit reports whether goal may still be modified at now.
// Completed goals are never editable; otherwise the goal must be at most EditWindow old.
func CanEdit(goal *entity.Goal, now time.Time) bool {
	if goal == nil || goal.IsCompleted() {
		return false
	}
	return now.Sub(goal.CreatedAt) <= EditWindow
}

// EditWindowRemaining returns how much of the edit window is left at now, floored at zero.
func EditWindowRemaining(goal *entity.Goal, now time.Time) time.Duration {
	if goal == nil || goal.IsCompleted() {
		return 0
	}
	remaining := EditWindow - now.Sub(goal.CreatedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

package engine

import (
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/domain/valueobject"
)

// ApplyCompletion folds one completion date into a streak.
//
// With gap = date - lastCompletedDate in days:
//   - no prior completion: current = longest = total = 1
//   - gap == 1: current+1, longest = max(longest, current), total+1
//   - gap == 0: current and longest unchanged, total+1
//   - gap > 1: current = 1, longest unchanged, total+1
//   - gap < 0: *StreakOrderingError, streak returned unchanged
//
// lastCompletedDate becomes date in every accepted branch. UpdatedAt is left to the caller.
func ApplyCompletion(streak entity.Streak, date valueobject.Date) (entity.Streak, error) {
	next := streak
	completed := date
	next.LastCompletedDate = &completed

	if streak.LastCompletedDate == nil {
		next.CurrentStreak = 1
		next.LongestStreak = max(1, streak.LongestStreak)
		next.TotalCompletions = streak.TotalCompletions + 1
		return next, nil
	}

	gap := date.DaysSince(*streak.LastCompletedDate)
	switch {
	case gap < 0:
		return streak, &domainerror.StreakOrderingError{
			GoalID:        streak.GoalID,
			UserID:        streak.UserID,
			LastCompleted: streak.LastCompletedDate.String(),
			Attempted:     date.String(),
		}

	case gap == 0:
		next.TotalCompletions++

	case gap == 1:
		next.CurrentStreak++
		next.LongestStreak = max(next.LongestStreak, next.CurrentStreak)
		next.TotalCompletions++

	default:
		next.CurrentStreak = 1
		next.TotalCompletions++
	}

	return next, nil
}

// IsStreakAlive reports whether the streak can still be extended on today,
// i.e. its last completion was today or yesterday.
func IsStreakAlive(streak entity.Streak, today valueobject.Date) bool {
	if streak.LastCompletedDate == nil {
		return false
	}
	gap := today.DaysSince(*streak.LastCompletedDate)
	return gap == 0 || gap == 1
}

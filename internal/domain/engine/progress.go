package engine

import (
	"github.com/shopspring/decimal"

	"github.com/commitly/backend/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ComputeProgress returns the completion percentage of a goal in [0, 100].
//
//   - single: 100 when the goal is completed or all of its (at least one) activities are done.
//   - multi-activity: completed/total rounded half-up; 0 without activities.
//   - recurring: the caller-reported period percentage, clamped; 0 when unreported.
func ComputeProgress(goal *entity.Goal, activities []*entity.Activity) int {
	if goal == nil {
		return 0
	}

	switch goal.GoalType {
	case entity.GoalTypeSingle:
		if goal.IsCompleted() {
			return 100
		}
		completed, total := CountCompleted(activities)
		if total > 0 && completed == total {
			return 100
		}
		return 0

	case entity.GoalTypeMultiActivity:
		completed, total := CountCompleted(activities)
		return PercentOf(completed, total)

	case entity.GoalTypeRecurring:
		if goal.ReportedProgress == nil {
			return 0
		}
		return clampPercent(*goal.ReportedProgress)

	default:
		return 0
	}
}

// PercentOf returns round(completed/total*100), half-up, bounded to [0, 100].
// A zero or negative total yields 0.
func PercentOf(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}

	pct := decimal.NewFromInt(int64(completed)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(0)

	return clampPercent(int(pct.IntPart()))
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

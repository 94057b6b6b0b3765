// Package goal contains goal-related use cases.
package goal

import (
	"time"

	"github.com/commitly/backend/internal/domain/engine"
	"github.com/commitly/backend/internal/domain/entity"
)

// GoalOutput is a goal together with the values derived from it at read time.
type GoalOutput struct {
	Goal                *entity.Goal
	Activities          []*entity.Activity
	Progress            int
	CanEdit             bool
	EditWindowRemaining time.Duration
	Streak              *entity.Streak
}

func newGoalOutput(goal *entity.Goal, activities []*entity.Activity, streak *entity.Streak, now time.Time) *GoalOutput {
	if activities == nil {
		activities = []*entity.Activity{}
	}
	return &GoalOutput{
		Goal:                goal,
		Activities:          activities,
		Progress:            engine.ComputeProgress(goal, activities),
		CanEdit:             engine.CanEdit(goal, now),
		EditWindowRemaining: engine.EditWindowRemaining(goal, now),
		Streak:              streak,
	}
}

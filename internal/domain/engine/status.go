package engine

import (
	"time"

	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

// allowedTransitions lists, per status, the statuses a goal may move to.
var allowedTransitions = map[entity.GoalStatus][]entity.GoalStatus{
	entity.GoalStatusActive:      {entity.GoalStatusSuspended, entity.GoalStatusCompleted, entity.GoalStatusArchived},
	entity.GoalStatusSuspended:   {entity.GoalStatusActive, entity.GoalStatusArchived},
	entity.GoalStatusCompleted:   {entity.GoalStatusUncompleted, entity.GoalStatusArchived},
	entity.GoalStatusUncompleted: {entity.GoalStatusArchived},
	entity.GoalStatusArchived:    {},
}

// CanTransition reports whether a goal may move from one status to another.
func CanTransition(from, to entity.GoalStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition returns a copy of goal moved to status to at now. The input is not modified.
// CompletedAt is set when entering completed and cleared when leaving it.
func Transition(goal *entity.Goal, to entity.GoalStatus, now time.Time) (*entity.Goal, error) {
	if !CanTransition(goal.Status, to) {
		return nil, &domainerror.InvalidStatusTransitionError{
			From: string(goal.Status),
			To:   string(to),
		}
	}

	next := goal.Clone()
	next.Status = to
	next.UpdatedAt = now.UTC()

	if to == entity.GoalStatusCompleted {
		completedAt := now.UTC()
		next.CompletedAt = &completedAt
	} else {
		next.CompletedAt = nil
	}

	return next, nil
}

// Package shared holds helpers used by several use case packages.
package shared

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

// LoadOwnedGoal loads a goal and checks that userID owns it.
func LoadOwnedGoal(ctx context.Context, goals adapter.GoalRepository, goalID, userID uuid.UUID) (*entity.Goal, error) {
	goal, err := loadGoal(ctx, goals, goalID)
	if err != nil {
		return nil, err
	}

	if goal.OwnerID != userID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoalAccess,
			"goal belongs to another user",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}

	return goal, nil
}

// LoadVisibleGoal loads a goal and checks that viewerID may read it.
func LoadVisibleGoal(ctx context.Context, goals adapter.GoalRepository, partnerships adapter.PartnershipRepository, goalID, viewerID uuid.UUID) (*entity.Goal, error) {
	goal, err := loadGoal(ctx, goals, goalID)
	if err != nil {
		return nil, err
	}

	visible, err := CanView(ctx, partnerships, goal, viewerID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoalAccess,
			"goal is not visible to this user",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}

	return goal, nil
}

// CanView applies the visibility rules: owners see everything, anyone sees public goals,
// and accepted partners covering the goal see restricted ones. Private goals stay with the owner.
func CanView(ctx context.Context, partnerships adapter.PartnershipRepository, goal *entity.Goal, viewerID uuid.UUID) (bool, error) {
	if goal.OwnerID == viewerID {
		return true, nil
	}

	switch goal.Visibility {
	case entity.GoalVisibilityPublic:
		return true, nil
	case entity.GoalVisibilityRestricted:
		accepted, err := partnerships.FindAcceptedByRequester(ctx, goal.OwnerID)
		if err != nil {
			return false, fmt.Errorf("failed to load partnerships: %w", err)
		}
		return IsPartnerFor(accepted, goal, viewerID), nil
	default:
		return false, nil
	}
}

// IsPartnerFor reports whether viewerID is an accepted partner covering goal.
func IsPartnerFor(partnerships []*entity.Partnership, goal *entity.Goal, viewerID uuid.UUID) bool {
	for _, p := range partnerships {
		if p.PartnerID == viewerID && p.IsAccepted() && p.Covers(goal) {
			return true
		}
	}
	return false
}

func loadGoal(ctx context.Context, goals adapter.GoalRepository, goalID uuid.UUID) (*entity.Goal, error) {
	goal, err := goals.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotFound,
				"goal not found",
				domainerror.ErrGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	return goal, nil
}

package activity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/application/usecase/shared"
	"github.com/commitly/backend/internal/domain/engine"
)

// DeleteActivityInput represents the input for removing an activity.
type DeleteActivityInput struct {
	GoalID     uuid.UUID
	ActivityID uuid.UUID
	UserID     uuid.UUID
}

// DeleteActivityUseCase removes an activity from a goal.
type DeleteActivityUseCase struct {
	goalRepo     adapter.GoalRepository
	activityRepo adapter.ActivityRepository
	now          shared.Clock
}

// NewDeleteActivityUseCase creates a new DeleteActivityUseCase instance.
func NewDeleteActivityUseCase(goalRepo adapter.GoalRepository, activityRepo adapter.ActivityRepository) *DeleteActivityUseCase {
	return &DeleteActivityUseCase{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
		now:          shared.SystemClock,
	}
}

// Execute removes the activity. Completion events it produced are kept.
func (uc *DeleteActivityUseCase) Execute(ctx context.Context, input DeleteActivityInput) error {
	goal, err := shared.LoadOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return err
	}

	if !engine.CanEdit(goal, uc.now()) {
		return editWindowClosed()
	}

	activity, err := loadActivity(ctx, uc.activityRepo, goal.ID, input.ActivityID)
	if err != nil {
		return err
	}

	if err := uc.activityRepo.Delete(ctx, activity.ID); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	return nil
}

package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/application/usecase/shared"
	"github.com/commitly/backend/internal/domain/entity"
)

// GetGoalInput represents the input for reading one goal.
type GetGoalInput struct {
	GoalID   uuid.UUID
	ViewerID uuid.UUID
}

// GetGoalUseCase handles reading a single goal.
type GetGoalUseCase struct {
	goalRepo        adapter.GoalRepository
	activityRepo    adapter.ActivityRepository
	streakRepo      adapter.StreakRepository
	partnershipRepo adapter.PartnershipRepository
	now             shared.Clock
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(
	goalRepo adapter.GoalRepository,
	activityRepo adapter.ActivityRepository,
	streakRepo adapter.StreakRepository,
	partnershipRepo adapter.PartnershipRepository,
) *GetGoalUseCase {
	return &GetGoalUseCase{
		goalRepo:        goalRepo,
		activityRepo:    activityRepo,
		streakRepo:      streakRepo,
		partnershipRepo: partnershipRepo,
		now:             shared.SystemClock,
	}
}

// Execute loads the goal if the viewer may see it. The streak returned is the owner's.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*GoalOutput, error) {
	goal, err := shared.LoadVisibleGoal(ctx, uc.goalRepo, uc.partnershipRepo, input.GoalID, input.ViewerID)
	if err != nil {
		return nil, err
	}

	activities, err := uc.activityRepo.FindByGoalID(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	streak, err := uc.streakRepo.FindByKey(ctx, entity.StreakKey{GoalID: goal.ID, UserID: goal.OwnerID})
	if err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}

	return newGoalOutput(goal, activities, streak, uc.now()), nil
}

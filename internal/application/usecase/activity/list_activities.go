package activity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/application/usecase/shared"
	"github.com/commitly/backend/internal/domain/engine"
	"github.com/commitly/backend/internal/domain/entity"
)

// ListActivitiesInput represents the input for listing a goal's activities.
type ListActivitiesInput struct {
	GoalID   uuid.UUID
	ViewerID uuid.UUID
}

// ListActivitiesOutput represents the activities of a goal and their completion summary.
type ListActivitiesOutput struct {
	Activities []*entity.Activity
	Completed  int
	Total      int
	Progress   int
}

// ListActivitiesUseCase lists the activities of a goal the viewer may see.
type ListActivitiesUseCase struct {
	goalRepo        adapter.GoalRepository
	activityRepo    adapter.ActivityRepository
	partnershipRepo adapter.PartnershipRepository
}

// NewListActivitiesUseCase creates a new ListActivitiesUseCase instance.
func NewListActivitiesUseCase(
	goalRepo adapter.GoalRepository,
	activityRepo adapter.ActivityRepository,
	partnershipRepo adapter.PartnershipRepository,
) *ListActivitiesUseCase {
	return &ListActivitiesUseCase{
		goalRepo:        goalRepo,
		activityRepo:    activityRepo,
		partnershipRepo: partnershipRepo,
	}
}

// Execute performs the listing.
func (uc *ListActivitiesUseCase) Execute(ctx context.Context, input ListActivitiesInput) (*ListActivitiesOutput, error) {
	goal, err := shared.LoadVisibleGoal(ctx, uc.goalRepo, uc.partnershipRepo, input.GoalID, input.ViewerID)
	if err != nil {
		return nil, err
	}

	activities, err := uc.activityRepo.FindByGoalID(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	completed, total := engine.CountCompleted(activities)

	return &ListActivitiesOutput{
		Activities: activities,
		Completed:  completed,
		Total:      total,
		Progress:   engine.ComputeProgress(goal, activities),
	}, nil
}

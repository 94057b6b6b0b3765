package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/application/usecase/shared"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

// ReportProgressInput carries the period progress of a recurring goal, computed by the caller.
type ReportProgressInput struct {
	GoalID   uuid.UUID
	UserID   uuid.UUID
	Progress int
}

// ReportProgressUseCase records the externally computed progress of a recurring goal.
// Reports are accepted after the edit window closes.
type ReportProgressUseCase struct {
	goalRepo     adapter.GoalRepository
	activityRepo adapter.ActivityRepository
	streakRepo   adapter.StreakRepository
	now          shared.Clock
}

// NewReportProgressUseCase creates a new ReportProgressUseCase instance.
func NewReportProgressUseCase(
	goalRepo adapter.GoalRepository,
	activityRepo adapter.ActivityRepository,
	streakRepo adapter.StreakRepository,
) *ReportProgressUseCase {
	return &ReportProgressUseCase{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
		streakRepo:   streakRepo,
		now:          shared.SystemClock,
	}
}

// Execute stores the reported progress.
func (uc *ReportProgressUseCase) Execute(ctx context.Context, input ReportProgressInput) (*GoalOutput, error) {
	if input.Progress < 0 || input.Progress > 100 {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidReportedProgress,
			"progress must be between 0 and 100",
			domainerror.ErrInvalidReportedProgress,
		)
	}

	goal, err := shared.LoadOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if goal.GoalType != entity.GoalTypeRecurring {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalType,
			"progress can only be reported for recurring goals",
			domainerror.ErrInvalidGoalType,
		)
	}

	if goal.Status == entity.GoalStatusArchived {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalStatus,
			"archived goals cannot report progress",
			domainerror.ErrInvalidGoalStatus,
		)
	}

	now := uc.now()
	progress := input.Progress
	goal.ReportedProgress = &progress
	goal.UpdatedAt = now

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal progress: %w", err)
	}

	activities, err := uc.activityRepo.FindByGoalID(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	streak, err := uc.streakRepo.FindByKey(ctx, entity.StreakKey{GoalID: goal.ID, UserID: goal.OwnerID})
	if err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}

	return newGoalOutput(goal, activities, streak, now), nil
}

package goal

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/application/usecase/shared"
	"github.com/commitly/backend/internal/domain/engine"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

// UpdateGoalInput represents the input for goal update. Nil fields are left unchanged.
type UpdateGoalInput struct {
	GoalID      uuid.UUID
	UserID      uuid.UUID
	Title       *string
	Description *string
	Visibility  *entity.GoalVisibility
	Tags        *[]string
}

// UpdateGoalUseCase edits goal details while the edit window is open.
type UpdateGoalUseCase struct {
	goalRepo     adapter.GoalRepository
	activityRepo adapter.ActivityRepository
	streakRepo   adapter.StreakRepository
	now          shared.Clock
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(
	goalRepo adapter.GoalRepository,
	activityRepo adapter.ActivityRepository,
	streakRepo adapter.StreakRepository,
) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
		streakRepo:   streakRepo,
		now:          shared.SystemClock,
	}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*GoalOutput, error) {
	goal, err := shared.LoadOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if !engine.CanEdit(goal, now) {
		return nil, editWindowClosed(goal)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" || len(title) > maxTitleLength {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalTitleRequired,
				fmt.Sprintf("title is required and must be at most %d characters", maxTitleLength),
				domainerror.ErrGoalTitleRequired,
			)
		}
		goal.Title = title
	}

	if input.Description != nil {
		goal.Description = strings.TrimSpace(*input.Description)
	}

	if input.Visibility != nil {
		if !entity.IsValidGoalVisibility(*input.Visibility) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidGoalVisibility,
				"visibility must be 'public', 'private', or 'restricted'",
				domainerror.ErrInvalidGoalVisibility,
			)
		}
		goal.Visibility = *input.Visibility
	}

	if input.Tags != nil {
		goal.Tags = normalizeTags(*input.Tags)
	}

	goal.UpdatedAt = now

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
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

func editWindowClosed(goal *entity.Goal) error {
	message := "goals can only be edited within 5 hours of creation"
	if goal.IsCompleted() {
		message = "completed goals cannot be edited"
	}
	return domainerror.NewGoalError(
		domainerror.ErrCodeEditWindowClosed,
		message,
		domainerror.ErrEditWindowClosed,
	)
}

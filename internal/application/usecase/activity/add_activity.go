// Package activity contains use cases for the checklist items of a goal.
package activity

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

const maxTitleLength = 200

// AddActivityInput represents the input for adding an activity to a goal.
type AddActivityInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
	Title  string
}

// AddActivityUseCase appends an activity to a goal.
type AddActivityUseCase struct {
	goalRepo     adapter.GoalRepository
	activityRepo adapter.ActivityRepository
	now          shared.Clock
}

// NewAddActivityUseCase creates a new AddActivityUseCase instance.
func NewAddActivityUseCase(goalRepo adapter.GoalRepository, activityRepo adapter.ActivityRepository) *AddActivityUseCase {
	return &AddActivityUseCase{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
		now:          shared.SystemClock,
	}
}

// Execute adds the activity at the end of the goal's list.
func (uc *AddActivityUseCase) Execute(ctx context.Context, input AddActivityInput) (*entity.Activity, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}

	goal, err := shared.LoadOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if !engine.CanEdit(goal, uc.now()) {
		return nil, editWindowClosed()
	}

	count, err := uc.activityRepo.CountByGoalID(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}

	if goal.GoalType == entity.GoalTypeSingle && count >= 1 {
		return nil, domainerror.NewActivityError(
			domainerror.ErrCodeSingleGoalHasActivity,
			"single goals hold at most one activity",
			domainerror.ErrSingleGoalHasActivity,
		)
	}

	activity := entity.NewActivity(goal.ID, title, count)
	if err := uc.activityRepo.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return activity, nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > maxTitleLength {
		return "", domainerror.NewActivityError(
			domainerror.ErrCodeActivityTitleRequired,
			fmt.Sprintf("title is required and must be at most %d characters", maxTitleLength),
			domainerror.ErrActivityTitleRequired,
		)
	}
	return title, nil
}

func editWindowClosed() error {
	return domainerror.NewGoalError(
		domainerror.ErrCodeEditWindowClosed,
		"activities can only be added or removed while the goal is editable",
		domainerror.ErrEditWindowClosed,
	)
}

// loadActivity loads an activity and checks it belongs to the goal.
func loadActivity(ctx context.Context, activities adapter.ActivityRepository, goalID, activityID uuid.UUID) (*entity.Activity, error) {
	activity, err := activities.FindByID(ctx, activityID)
	if err != nil {
		return nil, domainerror.NewActivityError(
			domainerror.ErrCodeActivityNotFound,
			"activity not found",
			domainerror.ErrActivityNotFound,
		)
	}

	if activity.GoalID != goalID {
		return nil, domainerror.NewActivityError(
			domainerror.ErrCodeActivityGoalMismatch,
			"activity does not belong to this goal",
			domainerror.ErrActivityGoalMismatch,
		)
	}

	return activity, nil
}

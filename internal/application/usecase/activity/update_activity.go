package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/application/usecase/completion"
	"github.com/commitly/backend/internal/application/usecase/shared"
	"github.com/commitly/backend/internal/domain/engine"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/domain/valueobject"
)

// CompletionRecorder records a completion event and advances the streak.
type CompletionRecorder interface {
	Execute(ctx context.Context, input completion.RecordCompletionInput) (*completion.RecordCompletionOutput, error)
}

// UpdateActivityInput represents a partial activity update. Nil fields are left unchanged.
type UpdateActivityInput struct {
	GoalID      uuid.UUID
	ActivityID  uuid.UUID
	UserID      uuid.UUID
	Title       *string
	IsCompleted *bool
}

// UpdateActivityOutput represents the updated activity and, when it was just completed,
// the resulting streak.
type UpdateActivityOutput struct {
	Activity   *entity.Activity
	Progress   int
	Completion *completion.RecordCompletionOutput
}

// UpdateActivityUseCase renames activities and toggles their completion.
type UpdateActivityUseCase struct {
	goalRepo     adapter.GoalRepository
	activityRepo adapter.ActivityRepository
	userRepo     adapter.UserRepository
	recorder     CompletionRecorder
	now          shared.Clock
}

// NewUpdateActivityUseCase creates a new UpdateActivityUseCase instance.
func NewUpdateActivityUseCase(
	goalRepo adapter.GoalRepository,
	activityRepo adapter.ActivityRepository,
	userRepo adapter.UserRepository,
	recorder CompletionRecorder,
) *UpdateActivityUseCase {
	return &UpdateActivityUseCase{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		recorder:     recorder,
		now:          shared.SystemClock,
	}
}

// Execute applies the update. Renaming obeys the edit window; toggling completion does not.
// Completing an activity records a completion for the goal owner on today's date in
// the owner's timezone.
func (uc *UpdateActivityUseCase) Execute(ctx context.Context, input UpdateActivityInput) (*UpdateActivityOutput, error) {
	goal, err := shared.LoadOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	activity, err := loadActivity(ctx, uc.activityRepo, goal.ID, input.ActivityID)
	if err != nil {
		return nil, err
	}

	now := uc.now()

	if input.Title != nil {
		if !engine.CanEdit(goal, now) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeEditWindowClosed,
				"activities can only be renamed while the goal is editable",
				domainerror.ErrEditWindowClosed,
			)
		}
		title, err := validateTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		activity.Title = title
		activity.UpdatedAt = now
	}

	previous := *activity
	justCompleted := false
	if input.IsCompleted != nil && *input.IsCompleted != activity.IsCompleted {
		if *input.IsCompleted {
			if !goal.AcceptsCompletions() {
				return nil, completion.ClosedGoalError(goal)
			}
			activity.MarkCompleted(now)
			justCompleted = true
		} else {
			activity.MarkIncomplete()
		}
	}

	if err := uc.activityRepo.Update(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	output := &UpdateActivityOutput{Activity: activity}

	if justCompleted {
		result, err := uc.recordCompletion(ctx, goal, activity)
		if err != nil {
			uc.restore(ctx, &previous)
			return nil, err
		}
		output.Completion = result
	}

	activities, err := uc.activityRepo.FindByGoalID(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	output.Progress = engine.ComputeProgress(goal, activities)

	return output, nil
}

// restore writes back the activity as it was before a request whose completion failed.
func (uc *UpdateActivityUseCase) restore(ctx context.Context, previous *entity.Activity) {
	if err := uc.activityRepo.Update(ctx, previous); err != nil {
		slog.Error("Failed to roll back activity after completion error",
			"goal_id", previous.GoalID,
			"activity_id", previous.ID,
			"error", err,
		)
	}
}

// recordCompletion dates the activity's completion in the owner's timezone and
// feeds it to the streak.
func (uc *UpdateActivityUseCase) recordCompletion(ctx context.Context, goal *entity.Goal, activity *entity.Activity) (*completion.RecordCompletionOutput, error) {
	owner, err := uc.userRepo.FindByID(ctx, goal.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal owner: %w", err)
	}

	events := engine.CompletionSequence(goal.ID, owner.ID, []*entity.Activity{activity}, valueobject.LoadLocation(owner.Timezone))
	if len(events) == 0 {
		return nil, nil
	}
	event := events[0]

	result, err := uc.recorder.Execute(ctx, completion.RecordCompletionInput{
		GoalID:         event.GoalID,
		UserID:         event.UserID,
		CompletionDate: &event.CompletionDate,
		ActivityID:     event.ActivityID,
		Source:         event.Source,
	})
	if err != nil {
		// The activity stays completed; an ordering conflict only means the streak
		// already holds a later date, e.g. after a timezone change.
		if errors.Is(err, domainerror.ErrStreakOrdering) {
			slog.Warn("Activity completion not applied to streak",
				"goal_id", goal.ID,
				"activity_id", activity.ID,
				"error", err,
			)
			return nil, nil
		}
		return nil, err
	}

	return result, nil
}

package goal

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/application/usecase/shared"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

const maxTitleLength = 200

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	GoalType    entity.GoalType
	Visibility  *entity.GoalVisibility // Optional, defaults to private
	Tags        []string
	Activities  []string // Initial activity titles, in order
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo     adapter.GoalRepository
	activityRepo adapter.ActivityRepository
	now          shared.Clock
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, activityRepo adapter.ActivityRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo:     goalRepo,
		activityRepo: activityRepo,
		now:          shared.SystemClock,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*GoalOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || len(title) > maxTitleLength {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalTitleRequired,
			fmt.Sprintf("title is required and must be at most %d characters", maxTitleLength),
			domainerror.ErrGoalTitleRequired,
		)
	}

	if !entity.IsValidGoalType(input.GoalType) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalType,
			"goal type must be 'single', 'multi-activity', or 'recurring'",
			domainerror.ErrInvalidGoalType,
		)
	}

	visibility := entity.GoalVisibilityPrivate
	if input.Visibility != nil {
		if !entity.IsValidGoalVisibility(*input.Visibility) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidGoalVisibility,
				"visibility must be 'public', 'private', or 'restricted'",
				domainerror.ErrInvalidGoalVisibility,
			)
		}
		visibility = *input.Visibility
	}

	if input.GoalType == entity.GoalTypeSingle && len(input.Activities) > 1 {
		return nil, domainerror.NewActivityError(
			domainerror.ErrCodeSingleGoalHasActivity,
			"single goals hold at most one activity",
			domainerror.ErrSingleGoalHasActivity,
		)
	}

	goal := entity.NewGoal(input.OwnerID, title, strings.TrimSpace(input.Description), input.GoalType, visibility)
	goal.Tags = normalizeTags(input.Tags)
	now := uc.now()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	activities := make([]*entity.Activity, 0, len(input.Activities))
	for i, activityTitle := range input.Activities {
		activityTitle = strings.TrimSpace(activityTitle)
		if activityTitle == "" {
			return nil, domainerror.NewActivityError(
				domainerror.ErrCodeActivityTitleRequired,
				"activity title is required",
				domainerror.ErrActivityTitleRequired,
			)
		}
		activities = append(activities, entity.NewActivity(goal.ID, activityTitle, i))
	}

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	for _, a := range activities {
		if err := uc.activityRepo.Create(ctx, a); err != nil {
			return nil, fmt.Errorf("failed to create activity: %w", err)
		}
	}

	return newGoalOutput(goal, activities, nil, now), nil
}

// normalizeTags trims, lowercases and deduplicates tags, keeping their order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

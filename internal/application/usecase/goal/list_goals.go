package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/application/usecase/shared"
	"github.com/commitly/backend/internal/domain/entity"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	ViewerID uuid.UUID
	OwnerID  *uuid.UUID // Optional, defaults to the viewer
	Filter   adapter.GoalFilter
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals []*GoalOutput
}

// ListGoalsUseCase lists the viewer's goals, or the goals of another user the viewer may see.
type ListGoalsUseCase struct {
	goalRepo        adapter.GoalRepository
	activityRepo    adapter.ActivityRepository
	streakRepo      adapter.StreakRepository
	partnershipRepo adapter.PartnershipRepository
	now             shared.Clock
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(
	goalRepo adapter.GoalRepository,
	activityRepo adapter.ActivityRepository,
	streakRepo adapter.StreakRepository,
	partnershipRepo adapter.PartnershipRepository,
) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo:        goalRepo,
		activityRepo:    activityRepo,
		streakRepo:      streakRepo,
		partnershipRepo: partnershipRepo,
		now:             shared.SystemClock,
	}
}

// Execute performs the goal listing.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	ownerID := input.ViewerID
	if input.OwnerID != nil {
		ownerID = *input.OwnerID
	}

	goals, err := uc.goalRepo.FindByOwnerID(ctx, ownerID, input.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	if ownerID != input.ViewerID {
		goals, err = uc.visibleTo(ctx, goals, ownerID, input.ViewerID)
		if err != nil {
			return nil, err
		}
	}

	ids := make([]uuid.UUID, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}

	activities, err := uc.activityRepo.FindByGoalIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	streaks, err := uc.streakRepo.FindByGoalIDs(ctx, ownerID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load streaks: %w", err)
	}

	now := uc.now()
	output := &ListGoalsOutput{
		Goals: make([]*GoalOutput, 0, len(goals)),
	}
	for _, g := range goals {
		output.Goals = append(output.Goals, newGoalOutput(g, activities[g.ID], streaks[g.ID], now))
	}

	return output, nil
}

func (uc *ListGoalsUseCase) visibleTo(ctx context.Context, goals []*entity.Goal, ownerID, viewerID uuid.UUID) ([]*entity.Goal, error) {
	accepted, err := uc.partnershipRepo.FindAcceptedByRequester(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load partnerships: %w", err)
	}

	visible := make([]*entity.Goal, 0, len(goals))
	for _, g := range goals {
		switch g.Visibility {
		case entity.GoalVisibilityPublic:
			visible = append(visible, g)
		case entity.GoalVisibilityRestricted:
			if shared.IsPartnerFor(accepted, g, viewerID) {
				visible = append(visible, g)
			}
		}
	}
	return visible, nil
}

package completion

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/application/usecase/shared"
	"github.com/commitly/backend/internal/domain/entity"
)

const (
	defaultCompletionLimit = 100
	maxCompletionLimit     = 366
)

// ListCompletionsInput represents the input for listing a goal's completions.
type ListCompletionsInput struct {
	GoalID   uuid.UUID
	ViewerID uuid.UUID
	Limit    int
}

// ListCompletionsUseCase lists the owner's completion events for a goal, newest first.
type ListCompletionsUseCase struct {
	goalRepo        adapter.GoalRepository
	completionRepo  adapter.CompletionRepository
	partnershipRepo adapter.PartnershipRepository
}

// NewListCompletionsUseCase creates a new ListCompletionsUseCase instance.
func NewListCompletionsUseCase(
	goalRepo adapter.GoalRepository,
	completionRepo adapter.CompletionRepository,
	partnershipRepo adapter.PartnershipRepository,
) *ListCompletionsUseCase {
	return &ListCompletionsUseCase{
		goalRepo:        goalRepo,
		completionRepo:  completionRepo,
		partnershipRepo: partnershipRepo,
	}
}

// Execute performs the listing.
func (uc *ListCompletionsUseCase) Execute(ctx context.Context, input ListCompletionsInput) ([]*entity.CompletionEvent, error) {
	goal, err := shared.LoadVisibleGoal(ctx, uc.goalRepo, uc.partnershipRepo, input.GoalID, input.ViewerID)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultCompletionLimit
	}
	if limit > maxCompletionLimit {
		limit = maxCompletionLimit
	}

	events, err := uc.completionRepo.FindByKey(ctx, entity.StreakKey{GoalID: goal.ID, UserID: goal.OwnerID}, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	return events, nil
}

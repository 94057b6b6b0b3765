package completion

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/application/usecase/shared"
	"github.com/commitly/backend/internal/domain/engine"
	"github.com/commitly/backend/internal/domain/entity"
	"github.com/commitly/backend/internal/domain/valueobject"
)

// GetStreakInput represents the input for reading a goal's streak.
type GetStreakInput struct {
	GoalID   uuid.UUID
	ViewerID uuid.UUID
}

// GetStreakOutput is the goal owner's streak and whether it can still be extended today.
type GetStreakOutput struct {
	Streak entity.Streak
	Alive  bool
	Today  valueobject.Date
}

// GetStreakUseCase reads the streak of a goal's owner.
type GetStreakUseCase struct {
	goalRepo        adapter.GoalRepository
	userRepo        adapter.UserRepository
	streakRepo      adapter.StreakRepository
	partnershipRepo adapter.PartnershipRepository
	now             shared.Clock
}

// NewGetStreakUseCase creates a new GetStreakUseCase instance.
func NewGetStreakUseCase(
	goalRepo adapter.GoalRepository,
	userRepo adapter.UserRepository,
	streakRepo adapter.StreakRepository,
	partnershipRepo adapter.PartnershipRepository,
) *GetStreakUseCase {
	return &GetStreakUseCase{
		goalRepo:        goalRepo,
		userRepo:        userRepo,
		streakRepo:      streakRepo,
		partnershipRepo: partnershipRepo,
		now:             shared.SystemClock,
	}
}

// Execute loads the streak. A goal without completions yields an empty streak.
func (uc *GetStreakUseCase) Execute(ctx context.Context, input GetStreakInput) (*GetStreakOutput, error) {
	goal, err := shared.LoadVisibleGoal(ctx, uc.goalRepo, uc.partnershipRepo, input.GoalID, input.ViewerID)
	if err != nil {
		return nil, err
	}

	owner, err := uc.userRepo.FindByID(ctx, goal.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal owner: %w", err)
	}

	key := entity.StreakKey{GoalID: goal.ID, UserID: goal.OwnerID}
	stored, err := uc.streakRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}

	streak := entity.NewStreak(key)
	if stored != nil {
		streak = *stored
	}

	today := owner.Today(uc.now())

	return &GetStreakOutput{
		Streak: streak,
		Alive:  engine.IsStreakAlive(streak, today),
		Today:  today,
	}, nil
}

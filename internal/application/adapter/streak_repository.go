package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
)

// StreakRepository defines the interface for streak persistence operations.
type StreakRepository interface {
	// FindByKey returns the streak for a (goal, user) pair, or nil when none exists yet.
	FindByKey(ctx context.Context, key entity.StreakKey) (*entity.Streak, error)

	// FindByGoalIDs returns a user's streaks for several goals keyed by goal ID.
	FindByGoalIDs(ctx context.Context, userID uuid.UUID, goalIDs []uuid.UUID) (map[uuid.UUID]*entity.Streak, error)
}

// CompletionRepository defines the interface for completion event persistence.
type CompletionRepository interface {
	// Record stores the event and the streak it produced in a single transaction.
	Record(ctx context.Context, event *entity.CompletionEvent, streak entity.Streak) error

	// FindByKey returns the completion events of a (goal, user) pair, newest first.
	FindByKey(ctx context.Context, key entity.StreakKey, limit int) ([]*entity.CompletionEvent, error)
}

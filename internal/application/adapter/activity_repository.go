package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
)

// ActivityRepository defines the interface for activity persistence operations.
type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error)

	// FindByGoalID returns a goal's activities ordered by order index.
	FindByGoalID(ctx context.Context, goalID uuid.UUID) ([]*entity.Activity, error)

	// FindByGoalIDs returns activities for several goals keyed by goal ID.
	FindByGoalIDs(ctx context.Context, goalIDs []uuid.UUID) (map[uuid.UUID][]*entity.Activity, error)

	// CountByGoalID returns the number of activities of a goal.
	CountByGoalID(ctx context.Context, goalID uuid.UUID) (int, error)

	Update(ctx context.Context, activity *entity.Activity) error

	Delete(ctx context.Context, id uuid.UUID) error
}

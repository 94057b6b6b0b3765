package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
)

// GoalFilter narrows an owner's goal list. Nil or empty fields match everything.
type GoalFilter struct {
	Status   *entity.GoalStatus
	GoalType *entity.GoalType
	Tag      string
}

// GoalRepository stores goals. Deleted goals are archived rather than removed and
// are invisible to every lookup.
type GoalRepository interface {
	Create(ctx context.Context, goal *entity.Goal) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)
	// FindByOwnerID lists newest first.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, filter GoalFilter) ([]*entity.Goal, error)
	// Update writes everything but the lifecycle columns, which only UpdateStatus touches.
	Update(ctx context.Context, goal *entity.Goal) error
	// UpdateStatus stores goal's status and completion time only if the stored status
	// is still from. Otherwise it returns ErrGoalStatusChanged and writes nothing.
	UpdateStatus(ctx context.Context, goal *entity.Goal, from entity.GoalStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

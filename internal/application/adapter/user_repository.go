package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
)

// UserRepository stores accounts. Lookups of unknown users return domainerror.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// FindByIDs omits unknown ids from the result.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the account and everything it owns: goals with their
	// activities, streaks and completions, partnerships on either side,
	// notifications and queued emails.
	Delete(ctx context.Context, id uuid.UUID) error
}

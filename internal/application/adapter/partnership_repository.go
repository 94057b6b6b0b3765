package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
)

// PartnershipRepository defines the interface for accountability partnership persistence.
type PartnershipRepository interface {
	Create(ctx context.Context, partnership *entity.Partnership) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Partnership, error)

	// FindByUserID returns partnerships where the user is either requester or partner,
	// with counterpart names populated.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Partnership, error)

	// FindAcceptedByRequester returns the accepted partnerships created by a goal owner.
	FindAcceptedByRequester(ctx context.Context, requesterID uuid.UUID) ([]*entity.Partnership, error)

	// FindOpen returns a pending or accepted partnership between the two users for the
	// given scope, or nil.
	FindOpen(ctx context.Context, requesterID, partnerID uuid.UUID, goalID *uuid.UUID) (*entity.Partnership, error)

	Update(ctx context.Context, partnership *entity.Partnership) error

	Delete(ctx context.Context, id uuid.UUID) error
}

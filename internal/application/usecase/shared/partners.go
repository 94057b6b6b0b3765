package shared

import (
	"context"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/engine"
	"github.com/commitly/backend/internal/domain/entity"
)

// PartnerLookup adapts a user repository to the lookup the notification rules expect.
func PartnerLookup(ctx context.Context, users adapter.UserRepository) engine.PartnerLookup {
	return func(partnerID uuid.UUID) (*entity.User, error) {
		return users.FindByID(ctx, partnerID)
	}
}

package partnership

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

// RemovePartnershipInput represents the input for ending a partnership.
type RemovePartnershipInput struct {
	PartnershipID uuid.UUID
	UserID        uuid.UUID
}

// RemovePartnershipUseCase ends a partnership. Either side may remove it.
type RemovePartnershipUseCase struct {
	partnershipRepo adapter.PartnershipRepository
}

// NewRemovePartnershipUseCase creates a new RemovePartnershipUseCase instance.
func NewRemovePartnershipUseCase(partnershipRepo adapter.PartnershipRepository) *RemovePartnershipUseCase {
	return &RemovePartnershipUseCase{partnershipRepo: partnershipRepo}
}

// Execute performs the removal.
func (uc *RemovePartnershipUseCase) Execute(ctx context.Context, input RemovePartnershipInput) error {
	p, err := findPartnership(ctx, uc.partnershipRepo, input.PartnershipID)
	if err != nil {
		return err
	}

	if !p.Involves(input.UserID) {
		return domainerror.NewPartnershipError(
			domainerror.ErrCodeNotPartnershipMember,
			"user is not part of this partnership",
			domainerror.ErrNotPartnershipMember,
		)
	}

	if err := uc.partnershipRepo.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("failed to delete partnership: %w", err)
	}

	return nil
}

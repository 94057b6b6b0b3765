package partnership

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

// RespondPartnershipInput represents the invited partner's answer.
type RespondPartnershipInput struct {
	PartnershipID uuid.UUID
	UserID        uuid.UUID
	Accept        bool
}

// RespondPartnershipUseCase accepts or declines a pending partnership.
type RespondPartnershipUseCase struct {
	partnershipRepo adapter.PartnershipRepository
}

// NewRespondPartnershipUseCase creates a new RespondPartnershipUseCase instance.
func NewRespondPartnershipUseCase(partnershipRepo adapter.PartnershipRepository) *RespondPartnershipUseCase {
	return &RespondPartnershipUseCase{partnershipRepo: partnershipRepo}
}

// Execute records the answer. Only the invited partner may respond, and only once.
func (uc *RespondPartnershipUseCase) Execute(ctx context.Context, input RespondPartnershipInput) (*entity.Partnership, error) {
	p, err := findPartnership(ctx, uc.partnershipRepo, input.PartnershipID)
	if err != nil {
		return nil, err
	}

	if p.PartnerID != input.UserID {
		return nil, domainerror.NewPartnershipError(
			domainerror.ErrCodeNotInvitedPartner,
			"only the invited partner can respond",
			domainerror.ErrNotInvitedPartner,
		)
	}

	if !p.IsPending() {
		return nil, domainerror.NewPartnershipError(
			domainerror.ErrCodePartnershipNotPending,
			fmt.Sprintf("partnership is already %s", p.Status),
			domainerror.ErrPartnershipNotPending,
		)
	}

	p.Respond(input.Accept)

	if err := uc.partnershipRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update partnership: %w", err)
	}

	return p, nil
}

func findPartnership(ctx context.Context, repo adapter.PartnershipRepository, id uuid.UUID) (*entity.Partnership, error) {
	p, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrPartnershipNotFound) {
			return nil, domainerror.NewPartnershipError(
				domainerror.ErrCodePartnershipNotFound,
				"partnership not found",
				domainerror.ErrPartnershipNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find partnership: %w", err)
	}
	return p, nil
}

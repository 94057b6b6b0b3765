package partnership

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/entity"
)

// ListPartnershipsOutput splits a user's partnerships by direction.
type ListPartnershipsOutput struct {
	// Sent are partnerships the user requested: the partner watches the user's goals.
	Sent []*entity.Partnership
	// Received are partnerships where the user is the partner.
	Received []*entity.Partnership
}

// ListPartnershipsUseCase lists both sides of a user's partnerships.
type ListPartnershipsUseCase struct {
	partnershipRepo adapter.PartnershipRepository
}

// NewListPartnershipsUseCase creates a new ListPartnershipsUseCase instance.
func NewListPartnershipsUseCase(partnershipRepo adapter.PartnershipRepository) *ListPartnershipsUseCase {
	return &ListPartnershipsUseCase{partnershipRepo: partnershipRepo}
}

// Execute performs the listing.
func (uc *ListPartnershipsUseCase) Execute(ctx context.Context, userID uuid.UUID) (*ListPartnershipsOutput, error) {
	partnerships, err := uc.partnershipRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list partnerships: %w", err)
	}

	output := &ListPartnershipsOutput{
		Sent:     []*entity.Partnership{},
		Received: []*entity.Partnership{},
	}
	for _, p := range partnerships {
		if p.RequesterID == userID {
			output.Sent = append(output.Sent, p)
		} else {
			output.Received = append(output.Received, p)
		}
	}

	return output, nil
}

// Package partnership contains accountability partnership use cases.
package partnership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/application/usecase/shared"
	"github.com/commitly/backend/internal/domain/engine"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

// NotificationDispatcher stores and delivers notifications.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notifications []*entity.Notification) error
}

// RequestPartnershipInput represents an invitation to become an accountability partner.
type RequestPartnershipInput struct {
	RequesterID  uuid.UUID
	PartnerEmail string
	GoalID       *uuid.UUID // Optional, nil covers every goal of the requester
}

// RequestPartnershipUseCase creates a pending partnership and notifies the invited user.
type RequestPartnershipUseCase struct {
	userRepo        adapter.UserRepository
	goalRepo        adapter.GoalRepository
	partnershipRepo adapter.PartnershipRepository
	dispatcher      NotificationDispatcher
}

// NewRequestPartnershipUseCase creates a new RequestPartnershipUseCase instance.
func NewRequestPartnershipUseCase(
	userRepo adapter.UserRepository,
	goalRepo adapter.GoalRepository,
	partnershipRepo adapter.PartnershipRepository,
	dispatcher NotificationDispatcher,
) *RequestPartnershipUseCase {
	return &RequestPartnershipUseCase{
		userRepo:        userRepo,
		goalRepo:        goalRepo,
		partnershipRepo: partnershipRepo,
		dispatcher:      dispatcher,
	}
}

// Execute performs the request.
func (uc *RequestPartnershipUseCase) Execute(ctx context.Context, input RequestPartnershipInput) (*entity.Partnership, error) {
	email := strings.ToLower(strings.TrimSpace(input.PartnerEmail))
	if email == "" {
		return nil, domainerror.NewPartnershipError(
			domainerror.ErrCodeMissingPartnershipFields,
			"partner email is required",
			domainerror.ErrPartnerNotRegistered,
		)
	}

	requester, err := uc.userRepo.FindByID(ctx, input.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requester: %w", err)
	}

	partner, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewPartnershipError(
				domainerror.ErrCodePartnerNotRegistered,
				"no user is registered with this email",
				domainerror.ErrPartnerNotRegistered,
			)
		}
		return nil, fmt.Errorf("failed to find partner: %w", err)
	}

	if partner.ID == requester.ID {
		return nil, domainerror.NewPartnershipError(
			domainerror.ErrCodeCannotPartnerSelf,
			"cannot become your own accountability partner",
			domainerror.ErrCannotPartnerSelf,
		)
	}

	var goal *entity.Goal
	if input.GoalID != nil {
		goal, err = shared.LoadOwnedGoal(ctx, uc.goalRepo, *input.GoalID, requester.ID)
		if err != nil {
			var goalErr *domainerror.GoalError
			if errors.As(err, &goalErr) && goalErr.Code == domainerror.ErrCodeUnauthorizedGoalAccess {
				return nil, domainerror.NewPartnershipError(
					domainerror.ErrCodePartnershipGoalNotOwned,
					"partnerships can only cover your own goals",
					domainerror.ErrUnauthorizedGoalAccess,
				)
			}
			return nil, err
		}
	}

	existing, err := uc.partnershipRepo.FindOpen(ctx, requester.ID, partner.ID, input.GoalID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing partnership: %w", err)
	}
	if existing != nil {
		return nil, domainerror.NewPartnershipError(
			domainerror.ErrCodePartnershipAlreadyExists,
			"a pending or accepted partnership already exists",
			domainerror.ErrPartnershipAlreadyExists,
		)
	}

	p := entity.NewPartnership(requester.ID, partner.ID, input.GoalID)
	p.RequesterName = requester.Name()
	p.PartnerName = partner.Name()

	if err := uc.partnershipRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create partnership: %w", err)
	}

	n := engine.OnPartnershipRequested(p, requester, goal)
	if err := uc.dispatcher.Dispatch(ctx, []*entity.Notification{n}); err != nil {
		slog.Error("Failed to notify invited partner",
			"partnership_id", p.ID,
			"error", err,
		)
	}

	return p, nil
}

package goal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

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

// ChangeStatusInput represents the input for a goal status change.
type ChangeStatusInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
	Status entity.GoalStatus
}

// ChangeStatusOutput represents the output of a goal status change.
type ChangeStatusOutput struct {
	Goal              *entity.Goal
	PartnersNotified  int
	NotificationError error
}

// ChangeStatusUseCase moves a goal through its lifecycle and notifies partners on completion.
type ChangeStatusUseCase struct {
	goalRepo        adapter.GoalRepository
	userRepo        adapter.UserRepository
	partnershipRepo adapter.PartnershipRepository
	dispatcher      NotificationDispatcher
	now             shared.Clock
}

// NewChangeStatusUseCase creates a new ChangeStatusUseCase instance.
func NewChangeStatusUseCase(
	goalRepo adapter.GoalRepository,
	userRepo adapter.UserRepository,
	partnershipRepo adapter.PartnershipRepository,
	dispatcher NotificationDispatcher,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		goalRepo:        goalRepo,
		userRepo:        userRepo,
		partnershipRepo: partnershipRepo,
		dispatcher:      dispatcher,
		now:             shared.SystemClock,
	}
}

// Execute applies the transition. A failure to notify partners is logged and reported
// in the output; it never rolls back the status change.
func (uc *ChangeStatusUseCase) Execute(ctx context.Context, input ChangeStatusInput) (*ChangeStatusOutput, error) {
	if !entity.IsValidGoalStatus(input.Status) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalStatus,
			"status must be 'active', 'completed', 'suspended', 'archived', or 'uncompleted'",
			domainerror.ErrInvalidGoalStatus,
		)
	}

	before, err := shared.LoadOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	after, err := engine.Transition(before, input.Status, uc.now())
	if err != nil {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidStatusTransition,
			err.Error(),
			err,
		)
	}

	// Only the request whose write lands on the loaded status fans out.
	if err := uc.goalRepo.UpdateStatus(ctx, after, before.Status); err != nil {
		if errors.Is(err, domainerror.ErrGoalStatusChanged) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidStatusTransition,
				"goal status changed while the request was in flight",
				&domainerror.InvalidStatusTransitionError{From: string(before.Status), To: string(input.Status)},
			)
		}
		return nil, fmt.Errorf("failed to update goal status: %w", err)
	}

	output := &ChangeStatusOutput{Goal: after}

	if after.CompletedAt == nil {
		return output, nil
	}

	notified, err := uc.notifyPartners(ctx, before, after)
	output.PartnersNotified = notified
	if err != nil {
		slog.Error("Failed to notify partners of goal completion",
			"goal_id", after.ID,
			"error", err,
		)
		output.NotificationError = err
	}

	return output, nil
}

func (uc *ChangeStatusUseCase) notifyPartners(ctx context.Context, before, after *entity.Goal) (int, error) {
	owner, err := uc.userRepo.FindByID(ctx, after.OwnerID)
	if err != nil {
		return 0, fmt.Errorf("failed to load goal owner: %w", err)
	}

	partnerships, err := uc.partnershipRepo.FindAcceptedByRequester(ctx, after.OwnerID)
	if err != nil {
		return 0, fmt.Errorf("failed to load partnerships: %w", err)
	}

	notifications, _ := engine.OnGoalCompleted(before, after, owner, partnerships, shared.PartnerLookup(ctx, uc.userRepo))

	if err := uc.dispatcher.Dispatch(ctx, notifications); err != nil {
		return 0, err
	}

	return len(notifications), nil
}

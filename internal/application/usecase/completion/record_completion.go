// Package completion contains check-in and streak use cases.
package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/application/usecase/shared"
	"github.com/commitly/backend/internal/domain/engine"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/domain/valueobject"
)

// NotificationDispatcher stores and delivers notifications.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notifications []*entity.Notification) error
}

// RecordCompletionInput represents one completion of a goal by its owner.
type RecordCompletionInput struct {
	GoalID         uuid.UUID
	UserID         uuid.UUID
	CompletionDate *valueobject.Date // Optional, defaults to today in the user's timezone
	ActivityID     *uuid.UUID
	Source         entity.CompletionSource
}

// RecordCompletionOutput represents the result of a recorded completion.
type RecordCompletionOutput struct {
	Event     *entity.CompletionEvent
	Streak    entity.Streak
	Milestone int // 0 when no milestone was reached
}

// RecordCompletionUseCase folds a completion into the (goal, user) streak.
type RecordCompletionUseCase struct {
	goalRepo        adapter.GoalRepository
	userRepo        adapter.UserRepository
	streakRepo      adapter.StreakRepository
	completionRepo  adapter.CompletionRepository
	partnershipRepo adapter.PartnershipRepository
	locker          adapter.KeyLocker
	dispatcher      NotificationDispatcher
	encouragement   adapter.EncouragementService
	now             shared.Clock
}

// NewRecordCompletionUseCase creates a new RecordCompletionUseCase instance.
// encouragement may be nil.
func NewRecordCompletionUseCase(
	goalRepo adapter.GoalRepository,
	userRepo adapter.UserRepository,
	streakRepo adapter.StreakRepository,
	completionRepo adapter.CompletionRepository,
	partnershipRepo adapter.PartnershipRepository,
	locker adapter.KeyLocker,
	dispatcher NotificationDispatcher,
	encouragement adapter.EncouragementService,
) *RecordCompletionUseCase {
	return &RecordCompletionUseCase{
		goalRepo:        goalRepo,
		userRepo:        userRepo,
		streakRepo:      streakRepo,
		completionRepo:  completionRepo,
		partnershipRepo: partnershipRepo,
		locker:          locker,
		dispatcher:      dispatcher,
		encouragement:   encouragement,
		now:             shared.SystemClock,
	}
}

// Execute records the completion.
//
// The streak of a (goal, user) pair is read, advanced and written while holding that
// pair's lock, so two concurrent completions never apply to the same stale streak.
func (uc *RecordCompletionUseCase) Execute(ctx context.Context, input RecordCompletionInput) (*RecordCompletionOutput, error) {
	goal, err := shared.LoadOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	if !goal.AcceptsCompletions() {
		return nil, ClosedGoalError(goal)
	}

	owner, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	now := uc.now()
	today := owner.Today(now)

	date := today
	if input.CompletionDate != nil {
		if input.CompletionDate.IsZero() {
			return nil, domainerror.NewStreakError(
				domainerror.ErrCodeInvalidCompletionDate,
				"completion date is invalid",
				domainerror.ErrInvalidCompletionDate,
			)
		}
		if today.Before(*input.CompletionDate) {
			return nil, domainerror.NewStreakError(
				domainerror.ErrCodeCompletionInFuture,
				fmt.Sprintf("completion date %s is after today (%s)", input.CompletionDate, today),
				domainerror.ErrCompletionInFuture,
			)
		}
		date = *input.CompletionDate
	}

	source := input.Source
	if source == "" {
		source = entity.CompletionSourceCheckIn
	}

	key := entity.StreakKey{GoalID: goal.ID, UserID: input.UserID}

	before, after, event, err := uc.apply(ctx, key, date, source, input.ActivityID, now)
	if err != nil {
		return nil, err
	}

	output := &RecordCompletionOutput{
		Event:  event,
		Streak: after,
	}

	if milestone, ok := engine.MilestoneReached(before, after); ok {
		output.Milestone = milestone
		uc.notifyMilestone(ctx, before, after, goal, owner, milestone)
	}

	return output, nil
}

func (uc *RecordCompletionUseCase) apply(
	ctx context.Context,
	key entity.StreakKey,
	date valueobject.Date,
	source entity.CompletionSource,
	activityID *uuid.UUID,
	now time.Time,
) (entity.Streak, entity.Streak, *entity.CompletionEvent, error) {
	unlock, err := uc.locker.Lock(ctx, "streak:"+key.String())
	if err != nil {
		return entity.Streak{}, entity.Streak{}, nil, domainerror.NewStreakError(
			domainerror.ErrCodeStreakBusy,
			"another completion for this goal is being processed, retry shortly",
			fmt.Errorf("%w: %v", domainerror.ErrStreakBusy, err),
		)
	}
	defer unlock()

	stored, err := uc.streakRepo.FindByKey(ctx, key)
	if err != nil {
		return entity.Streak{}, entity.Streak{}, nil, fmt.Errorf("failed to load streak: %w", err)
	}

	before := entity.NewStreak(key)
	if stored != nil {
		before = *stored
	}

	after, err := engine.ApplyCompletion(before, date)
	if err != nil {
		var orderingErr *domainerror.StreakOrderingError
		if errors.As(err, &orderingErr) {
			return entity.Streak{}, entity.Streak{}, nil, domainerror.NewStreakError(
				domainerror.ErrCodeStreakOrdering,
				fmt.Sprintf("completion date %s precedes the last completion on %s", orderingErr.Attempted, orderingErr.LastCompleted),
				err,
			)
		}
		return entity.Streak{}, entity.Streak{}, nil, err
	}
	after.UpdatedAt = now

	event := entity.NewCompletionEvent(key.GoalID, key.UserID, date, source)
	event.ActivityID = activityID
	event.CreatedAt = now

	if err := uc.completionRepo.Record(ctx, event, after); err != nil {
		return entity.Streak{}, entity.Streak{}, nil, fmt.Errorf("failed to record completion: %w", err)
	}

	return before, after, event, nil
}

// notifyMilestone is best effort; the completion is already stored.
func (uc *RecordCompletionUseCase) notifyMilestone(ctx context.Context, before, after entity.Streak, goal *entity.Goal, owner *entity.User, milestone int) {
	logger := slog.With("goal_id", goal.ID, "user_id", owner.ID, "milestone", milestone)

	partnerships, err := uc.partnershipRepo.FindAcceptedByRequester(ctx, owner.ID)
	if err != nil {
		logger.Warn("Failed to load partnerships for milestone", "error", err)
		partnerships = nil
	}

	notifications, _ := engine.OnStreakUpdated(before, after, goal, owner, partnerships, shared.PartnerLookup(ctx, uc.userRepo))
	if len(notifications) == 0 {
		return
	}

	if message := uc.encourage(ctx, owner, goal, milestone); message != "" {
		for _, n := range notifications {
			n.Metadata[entity.MetaEncouragement] = message
			if n.RecipientUserID == owner.ID {
				n.Message = n.Message + " " + message
			}
		}
	}

	if err := uc.dispatcher.Dispatch(ctx, notifications); err != nil {
		logger.Error("Failed to dispatch milestone notifications", "error", err)
	}
}

func (uc *RecordCompletionUseCase) encourage(ctx context.Context, owner *entity.User, goal *entity.Goal, milestone int) string {
	if uc.encouragement == nil || !uc.encouragement.IsAvailable() {
		return ""
	}

	message, err := uc.encouragement.Compose(ctx, adapter.EncouragementInput{
		OwnerName: owner.Name(),
		GoalTitle: goal.Title,
		Streak:    milestone,
	})
	if err != nil {
		slog.Warn("Failed to compose encouragement", "goal_id", goal.ID, "error", err)
		return ""
	}
	return message
}

// ClosedGoalError is returned for completions on a goal that does not accept them.
func ClosedGoalError(goal *entity.Goal) error {
	return domainerror.NewGoalError(
		domainerror.ErrCodeInvalidGoalStatus,
		fmt.Sprintf("cannot record completions on a %s goal", goal.Status),
		domainerror.ErrInvalidGoalStatus,
	)
}

package goal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/application/usecase/notification"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/infra/db/dbtest"
	"github.com/commitly/backend/internal/integration/persistence"
)

var t0 = time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)

type fixture struct {
	goals         adapter.GoalRepository
	activities    adapter.ActivityRepository
	streaks       adapter.StreakRepository
	users         adapter.UserRepository
	partnerships  adapter.PartnershipRepository
	notifications adapter.NotificationRepository

	owner   *entity.User
	partner *entity.User
	clock   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.NewDB(t)

	f := &fixture{
		goals:         persistence.NewGoalRepository(db),
		activities:    persistence.NewActivityRepository(db),
		streaks:       persistence.NewStreakRepository(db),
		users:         persistence.NewUserRepository(db),
		partnerships:  persistence.NewPartnershipRepository(db),
		notifications: persistence.NewNotificationRepository(db),
		clock:         t0,
	}

	f.owner = entity.NewUser("olivia@example.com", "Olivia", "hash")
	f.partner = entity.NewUser("ana@example.com", "Ana", "hash")
	for _, u := range []*entity.User{f.owner, f.partner} {
		if err := f.users.Create(context.Background(), u); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
	}

	p := entity.NewPartnership(f.owner.ID, f.partner.ID, nil)
	p.Respond(true)
	if err := f.partnerships.Create(context.Background(), p); err != nil {
		t.Fatalf("failed to create partnership: %v", err)
	}

	return f
}

func (f *fixture) now() time.Time { return f.clock }

func (f *fixture) createUseCase() *CreateGoalUseCase {
	uc := NewCreateGoalUseCase(f.goals, f.activities)
	uc.now = f.now
	return uc
}

func (f *fixture) create(t *testing.T, title string, goalType entity.GoalType, visibility entity.GoalVisibility, activities ...string) *entity.Goal {
	t.Helper()
	out, err := f.createUseCase().Execute(context.Background(), CreateGoalInput{
		OwnerID:    f.owner.ID,
		Title:      title,
		GoalType:   goalType,
		Visibility: &visibility,
		Activities: activities,
	})
	if err != nil {
		t.Fatalf("failed to create goal %q: %v", title, err)
	}
	return out.Goal
}

func goalCode(err error) domainerror.GoalErrorCode {
	var goalErr *domainerror.GoalError
	if errors.As(err, &goalErr) {
		return goalErr.Code
	}
	return ""
}

func TestCreateGoal(t *testing.T) {
	f := newFixture(t)
	restricted := entity.GoalVisibilityRestricted
	bogus := entity.GoalVisibility("friends")

	tests := []struct {
		name        string
		input       CreateGoalInput
		expectError error
	}{
		{
			name:        "missing title",
			input:       CreateGoalInput{Title: "  ", GoalType: entity.GoalTypeSingle},
			expectError: domainerror.ErrGoalTitleRequired,
		},
		{
			name:        "unknown type",
			input:       CreateGoalInput{Title: "Run", GoalType: entity.GoalType("weekly")},
			expectError: domainerror.ErrInvalidGoalType,
		},
		{
			name:        "unknown visibility",
			input:       CreateGoalInput{Title: "Run", GoalType: entity.GoalTypeSingle, Visibility: &bogus},
			expectError: domainerror.ErrInvalidGoalVisibility,
		},
		{
			name:        "single goal with two activities",
			input:       CreateGoalInput{Title: "Run", GoalType: entity.GoalTypeSingle, Activities: []string{"a", "b"}},
			expectError: domainerror.ErrSingleGoalHasActivity,
		},
		{
			name:        "blank activity title",
			input:       CreateGoalInput{Title: "Run", GoalType: entity.GoalTypeMultiActivity, Activities: []string{"a", " "}},
			expectError: domainerror.ErrActivityTitleRequired,
		},
		{
			name: "multi-activity goal",
			input: CreateGoalInput{
				Title:      "  Learn Go ",
				GoalType:   entity.GoalTypeMultiActivity,
				Visibility: &restricted,
				Tags:       []string{"Study", "study", " ", "go"},
				Activities: []string{"Tour", "Effective Go", "Build a CLI"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.OwnerID = f.owner.ID
			out, err := f.createUseCase().Execute(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if out.Goal.Title != "Learn Go" {
				t.Errorf("title = %q, want trimmed", out.Goal.Title)
			}
			if out.Goal.Status != entity.GoalStatusActive || out.Goal.Visibility != restricted {
				t.Errorf("unexpected goal: %+v", out.Goal)
			}
			if len(out.Goal.Tags) != 2 || out.Goal.Tags[0] != "study" || out.Goal.Tags[1] != "go" {
				t.Errorf("tags = %v, want [study go]", out.Goal.Tags)
			}
			if len(out.Activities) != 3 || out.Progress != 0 || !out.CanEdit {
				t.Errorf("unexpected output: %d activities, progress %d, canEdit %v", len(out.Activities), out.Progress, out.CanEdit)
			}
			if out.EditWindowRemaining != 5*time.Hour {
				t.Errorf("edit window remaining = %v, want 5h", out.EditWindowRemaining)
			}

			stored, err := f.activities.FindByGoalID(context.Background(), out.Goal.ID)
			if err != nil || len(stored) != 3 {
				t.Fatalf("stored activities = %d, %v", len(stored), err)
			}
		})
	}
}

func TestCreateGoal_DefaultsToPrivate(t *testing.T) {
	f := newFixture(t)
	out, err := f.createUseCase().Execute(context.Background(), CreateGoalInput{
		OwnerID:  f.owner.ID,
		Title:    "Journal",
		GoalType: entity.GoalTypeRecurring,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Goal.Visibility != entity.GoalVisibilityPrivate {
		t.Errorf("visibility = %s, want private", out.Goal.Visibility)
	}
}

func TestUpdateGoal_EditWindow(t *testing.T) {
	f := newFixture(t)
	goal := f.create(t, "Run 5k", entity.GoalTypeSingle, entity.GoalVisibilityPrivate)
	uc := NewUpdateGoalUseCase(f.goals, f.activities, f.streaks)
	uc.now = f.now

	title := "Run 10k"
	public := entity.GoalVisibilityPublic

	f.clock = t0.Add(4 * time.Hour)
	out, err := uc.Execute(context.Background(), UpdateGoalInput{GoalID: goal.ID, UserID: f.owner.ID, Title: &title, Visibility: &public})
	if err != nil {
		t.Fatalf("update inside window failed: %v", err)
	}
	if out.Goal.Title != "Run 10k" || out.Goal.Visibility != public {
		t.Errorf("unexpected goal after update: %+v", out.Goal)
	}
	if out.EditWindowRemaining != time.Hour {
		t.Errorf("remaining = %v, want 1h", out.EditWindowRemaining)
	}

	f.clock = t0.Add(5*time.Hour + time.Second)
	_, err = uc.Execute(context.Background(), UpdateGoalInput{GoalID: goal.ID, UserID: f.owner.ID, Title: &title})
	if got := goalCode(err); got != domainerror.ErrCodeEditWindowClosed {
		t.Errorf("code = %s, want %s", got, domainerror.ErrCodeEditWindowClosed)
	}

	_, err = uc.Execute(context.Background(), UpdateGoalInput{GoalID: goal.ID, UserID: f.partner.ID, Title: &title})
	if got := goalCode(err); got != domainerror.ErrCodeUnauthorizedGoalAccess {
		t.Errorf("non-owner code = %s, want %s", got, domainerror.ErrCodeUnauthorizedGoalAccess)
	}
}

func TestDeleteGoal(t *testing.T) {
	f := newFixture(t)
	uc := NewDeleteGoalUseCase(f.goals)
	uc.now = f.now

	fresh := f.create(t, "Fresh", entity.GoalTypeSingle, entity.GoalVisibilityPrivate)
	if err := uc.Execute(context.Background(), DeleteGoalInput{GoalID: fresh.ID, UserID: f.owner.ID}); err != nil {
		t.Fatalf("delete inside window failed: %v", err)
	}
	if _, err := f.goals.FindByID(context.Background(), fresh.ID); !errors.Is(err, domainerror.ErrGoalNotFound) {
		t.Errorf("expected deleted goal to be gone, got %v", err)
	}

	old := f.create(t, "Old", entity.GoalTypeSingle, entity.GoalVisibilityPrivate)
	f.clock = t0.Add(6 * time.Hour)
	err := uc.Execute(context.Background(), DeleteGoalInput{GoalID: old.ID, UserID: f.owner.ID})
	if !errors.Is(err, domainerror.ErrEditWindowClosed) {
		t.Errorf("expected ErrEditWindowClosed, got %v", err)
	}
}

func TestChangeStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	goal := f.create(t, "Ship the app", entity.GoalTypeSingle, entity.GoalVisibilityRestricted)

	uc := NewChangeStatusUseCase(f.goals, f.users, f.partnerships, notification.NewDispatcher(f.notifications, f.users, nil))
	uc.now = func() time.Time { return t0.Add(48 * time.Hour) }

	out, err := uc.Execute(ctx, ChangeStatusInput{GoalID: goal.ID, UserID: f.owner.ID, Status: entity.GoalStatusCompleted})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Goal.Status != entity.GoalStatusCompleted || out.Goal.CompletedAt == nil {
		t.Errorf("unexpected goal: %+v", out.Goal)
	}
	if out.PartnersNotified != 1 || out.NotificationError != nil {
		t.Errorf("notified = %d, err = %v", out.PartnersNotified, out.NotificationError)
	}

	inbox, err := f.notifications.FindByRecipient(ctx, f.partner.ID, true, 10)
	if err != nil || len(inbox) != 1 || inbox[0].Kind != entity.NotificationPartnerUpdate {
		t.Fatalf("partner inbox = %+v, %v", inbox, err)
	}

	stored, _ := f.goals.FindByID(ctx, goal.ID)
	if stored.Status != entity.GoalStatusCompleted {
		t.Errorf("stored status = %s", stored.Status)
	}

	tests := []struct {
		name   string
		status entity.GoalStatus
		code   domainerror.GoalErrorCode
	}{
		{name: "completed back to active", status: entity.GoalStatusActive, code: domainerror.ErrCodeInvalidStatusTransition},
		{name: "unknown status", status: entity.GoalStatus("paused"), code: domainerror.ErrCodeInvalidGoalStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, ChangeStatusInput{GoalID: goal.ID, UserID: f.owner.ID, Status: tt.status})
			if got := goalCode(err); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}

	out, err = uc.Execute(ctx, ChangeStatusInput{GoalID: goal.ID, UserID: f.owner.ID, Status: entity.GoalStatusUncompleted})
	if err != nil {
		t.Fatalf("uncomplete failed: %v", err)
	}
	if out.Goal.CompletedAt != nil || out.PartnersNotified != 0 {
		t.Errorf("uncompleted goal kept completion data: %+v notified=%d", out.Goal, out.PartnersNotified)
	}
}

// lockstepGoals holds every FindByID caller until all expected callers have loaded the goal.
type lockstepGoals struct {
	adapter.GoalRepository
	loaded sync.WaitGroup
}

func (g *lockstepGoals) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	goal, err := g.GoalRepository.FindByID(ctx, id)
	g.loaded.Done()
	g.loaded.Wait()
	return goal, err
}

func TestChangeStatus_ConcurrentCompletionNotifiesOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	goal := f.create(t, "Ship the app", entity.GoalTypeSingle, entity.GoalVisibilityRestricted)

	const requests = 2
	goals := &lockstepGoals{GoalRepository: f.goals}
	goals.loaded.Add(requests)

	uc := NewChangeStatusUseCase(goals, f.users, f.partnerships, notification.NewDispatcher(f.notifications, f.users, nil))
	uc.now = func() time.Time { return t0.Add(time.Hour) }

	var wg sync.WaitGroup
	errs := make([]error, requests)
	for i := 0; i < requests; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = uc.Execute(ctx, ChangeStatusInput{GoalID: goal.ID, UserID: f.owner.ID, Status: entity.GoalStatusCompleted})
		}()
	}
	wg.Wait()

	var succeeded, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case goalCode(err) == domainerror.ErrCodeInvalidStatusTransition && errors.Is(err, domainerror.ErrInvalidStatusTransition):
			lost++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || lost != 1 {
		t.Errorf("succeeded = %d, lost = %d, want 1 and 1", succeeded, lost)
	}

	inbox, err := f.notifications.FindByRecipient(ctx, f.partner.ID, true, 10)
	if err != nil {
		t.Fatalf("FindByRecipient() error = %v", err)
	}
	if len(inbox) != 1 {
		t.Errorf("partner_update notifications = %d, want 1", len(inbox))
	}
}

func TestUpdateGoal_KeepsConcurrentStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	goal := f.create(t, "Read more", entity.GoalTypeSingle, entity.GoalVisibilityPrivate)

	stale, err := f.goals.FindByID(ctx, goal.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}

	uc := NewChangeStatusUseCase(f.goals, f.users, f.partnerships, notification.NewDispatcher(f.notifications, f.users, nil))
	uc.now = f.now
	if _, err := uc.Execute(ctx, ChangeStatusInput{GoalID: goal.ID, UserID: f.owner.ID, Status: entity.GoalStatusSuspended}); err != nil {
		t.Fatalf("suspend failed: %v", err)
	}

	stale.Title = "Read more books"
	if err := f.goals.Update(ctx, stale); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	stored, _ := f.goals.FindByID(ctx, goal.ID)
	if stored.Title != "Read more books" || stored.Status != entity.GoalStatusSuspended {
		t.Errorf("stored = %q/%s, want new title and suspended", stored.Title, stored.Status)
	}
}

func TestListGoals_Visibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.create(t, "Public", entity.GoalTypeSingle, entity.GoalVisibilityPublic)
	f.create(t, "Restricted", entity.GoalTypeSingle, entity.GoalVisibilityRestricted)
	f.create(t, "Private", entity.GoalTypeSingle, entity.GoalVisibilityPrivate)

	uc := NewListGoalsUseCase(f.goals, f.activities, f.streaks, f.partnerships)
	uc.now = f.now
	ownerID := f.owner.ID

	tests := []struct {
		name     string
		viewer   uuid.UUID
		expected map[string]bool
	}{
		{name: "owner", viewer: f.owner.ID, expected: map[string]bool{"Public": true, "Restricted": true, "Private": true}},
		{name: "partner", viewer: f.partner.ID, expected: map[string]bool{"Public": true, "Restricted": true}},
		{name: "stranger", viewer: uuid.New(), expected: map[string]bool{"Public": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.Execute(ctx, ListGoalsInput{ViewerID: tt.viewer, OwnerID: &ownerID})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(out.Goals) != len(tt.expected) {
				t.Fatalf("expected %d goals, got %d", len(tt.expected), len(out.Goals))
			}
			for _, g := range out.Goals {
				if !tt.expected[g.Goal.Title] {
					t.Errorf("goal %q should not be visible", g.Goal.Title)
				}
			}
		})
	}
}

func TestGetGoal_MultiActivityProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	goal := f.create(t, "Read trilogy", entity.GoalTypeMultiActivity, entity.GoalVisibilityPublic, "Book 1", "Book 2", "Book 3")

	activities, err := f.activities.FindByGoalID(ctx, goal.ID)
	if err != nil || len(activities) != 3 {
		t.Fatalf("activities = %d, %v", len(activities), err)
	}
	activities[0].MarkCompleted(t0)
	if err := f.activities.Update(ctx, activities[0]); err != nil {
		t.Fatalf("failed to update activity: %v", err)
	}

	uc := NewGetGoalUseCase(f.goals, f.activities, f.streaks, f.partnerships)
	uc.now = f.now
	out, err := uc.Execute(ctx, GetGoalInput{GoalID: goal.ID, ViewerID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Progress != 33 {
		t.Errorf("progress = %d, want 33", out.Progress)
	}
	if out.Streak != nil {
		t.Errorf("expected no streak, got %+v", out.Streak)
	}
}

func TestReportProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	recurring := f.create(t, "Gym 3x a week", entity.GoalTypeRecurring, entity.GoalVisibilityPrivate)
	single := f.create(t, "Sign up", entity.GoalTypeSingle, entity.GoalVisibilityPrivate)

	uc := NewReportProgressUseCase(f.goals, f.activities, f.streaks)
	// Reports are still accepted after the edit window.
	uc.now = func() time.Time { return t0.Add(72 * time.Hour) }

	tests := []struct {
		name     string
		goalID   uuid.UUID
		progress int
		code     domainerror.GoalErrorCode
	}{
		{name: "recurring goal", goalID: recurring.ID, progress: 67},
		{name: "above 100", goalID: recurring.ID, progress: 101, code: domainerror.ErrCodeInvalidReportedProgress},
		{name: "negative", goalID: recurring.ID, progress: -1, code: domainerror.ErrCodeInvalidReportedProgress},
		{name: "single goal", goalID: single.ID, progress: 50, code: domainerror.ErrCodeInvalidGoalType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.Execute(ctx, ReportProgressInput{GoalID: tt.goalID, UserID: f.owner.ID, Progress: tt.progress})
			if tt.code != "" {
				if got := goalCode(err); got != tt.code {
					t.Errorf("code = %s, want %s", got, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Progress != tt.progress {
				t.Errorf("progress = %d, want %d", out.Progress, tt.progress)
			}
		})
	}
}

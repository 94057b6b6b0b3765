package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/application/usecase/completion"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/infra/db/dbtest"
	"github.com/commitly/backend/internal/integration/persistence"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeRecorder struct {
	inputs []completion.RecordCompletionInput
	err    error
}

func (r *fakeRecorder) Execute(_ context.Context, input completion.RecordCompletionInput) (*completion.RecordCompletionOutput, error) {
	r.inputs = append(r.inputs, input)
	if r.err != nil {
		return nil, r.err
	}
	return &completion.RecordCompletionOutput{
		Streak: entity.Streak{GoalID: input.GoalID, UserID: input.UserID, CurrentStreak: 1, LongestStreak: 1, TotalCompletions: 1},
	}, nil
}

type fixture struct {
	goals        adapter.GoalRepository
	activities   adapter.ActivityRepository
	users        adapter.UserRepository
	partnerships adapter.PartnershipRepository
	recorder     *fakeRecorder

	owner *entity.User
	goal  *entity.Goal
	items []*entity.Activity
}

func newFixture(t *testing.T, goalType entity.GoalType, titles ...string) *fixture {
	t.Helper()
	ctx := context.Background()
	db := dbtest.NewDB(t)

	f := &fixture{
		goals:        persistence.NewGoalRepository(db),
		activities:   persistence.NewActivityRepository(db),
		users:        persistence.NewUserRepository(db),
		partnerships: persistence.NewPartnershipRepository(db),
		recorder:     &fakeRecorder{},
	}

	f.owner = entity.NewUser("olivia@example.com", "Olivia", "hash")
	f.owner.Timezone = "Asia/Tokyo"
	if err := f.users.Create(ctx, f.owner); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	f.goal = entity.NewGoal(f.owner.ID, "Spring cleaning", "", goalType, entity.GoalVisibilityPrivate)
	f.goal.CreatedAt = t0
	if err := f.goals.Create(ctx, f.goal); err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	for i, title := range titles {
		a := entity.NewActivity(f.goal.ID, title, i)
		if err := f.activities.Create(ctx, a); err != nil {
			t.Fatalf("failed to create activity: %v", err)
		}
		f.items = append(f.items, a)
	}

	return f
}

func (f *fixture) update(now time.Time) *UpdateActivityUseCase {
	uc := NewUpdateActivityUseCase(f.goals, f.activities, f.users, f.recorder)
	uc.now = func() time.Time { return now }
	return uc
}

func boolPtr(b bool) *bool { return &b }

func TestAddActivity(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		goalType    entity.GoalType
		existing    []string
		title       string
		now         time.Time
		expectError error
	}{
		{name: "appends to multi-activity goal", goalType: entity.GoalTypeMultiActivity, existing: []string{"a", "b"}, title: "c", now: t0},
		{name: "first activity of single goal", goalType: entity.GoalTypeSingle, title: "only", now: t0},
		{name: "second activity of single goal", goalType: entity.GoalTypeSingle, existing: []string{"only"}, title: "extra", now: t0, expectError: domainerror.ErrSingleGoalHasActivity},
		{name: "blank title", goalType: entity.GoalTypeMultiActivity, title: "  ", now: t0, expectError: domainerror.ErrActivityTitleRequired},
		{name: "edit window closed", goalType: entity.GoalTypeMultiActivity, title: "late", now: t0.Add(6 * time.Hour), expectError: domainerror.ErrEditWindowClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.goalType, tt.existing...)
			uc := NewAddActivityUseCase(f.goals, f.activities)
			uc.now = func() time.Time { return tt.now }

			activity, err := uc.Execute(ctx, AddActivityInput{GoalID: f.goal.ID, UserID: f.owner.ID, Title: tt.title})
			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if activity.OrderIndex != len(tt.existing) {
				t.Errorf("order index = %d, want %d", activity.OrderIndex, len(tt.existing))
			}
		})
	}
}

func TestUpdateActivity_CompletingRecordsCompletion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, entity.GoalTypeMultiActivity, "Kitchen", "Garage")

	// 20:00 UTC is already the next day in Tokyo, well past the edit window.
	now := time.Date(2024, 6, 3, 20, 0, 0, 0, time.UTC)
	out, err := f.update(now).Execute(ctx, UpdateActivityInput{
		GoalID:      f.goal.ID,
		ActivityID:  f.items[0].ID,
		UserID:      f.owner.ID,
		IsCompleted: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Activity.IsCompleted || out.Activity.CompletedAt == nil {
		t.Errorf("activity not completed: %+v", out.Activity)
	}
	if out.Progress != 50 {
		t.Errorf("progress = %d, want 50", out.Progress)
	}
	if out.Completion == nil {
		t.Fatal("expected completion output")
	}

	if len(f.recorder.inputs) != 1 {
		t.Fatalf("expected 1 recorded completion, got %d", len(f.recorder.inputs))
	}
	in := f.recorder.inputs[0]
	if in.CompletionDate.String() != "2024-06-04" {
		t.Errorf("completion date = %s, want 2024-06-04", in.CompletionDate)
	}
	if in.Source != entity.CompletionSourceActivity || in.ActivityID == nil || *in.ActivityID != f.items[0].ID {
		t.Errorf("unexpected completion input: %+v", in)
	}

	// Completing an already completed activity is a no-op for the streak.
	if _, err := f.update(now).Execute(ctx, UpdateActivityInput{
		GoalID: f.goal.ID, ActivityID: f.items[0].ID, UserID: f.owner.ID, IsCompleted: boolPtr(true),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.recorder.inputs) != 1 {
		t.Errorf("expected no new completion, got %d total", len(f.recorder.inputs))
	}

	out, err = f.update(now).Execute(ctx, UpdateActivityInput{
		GoalID: f.goal.ID, ActivityID: f.items[0].ID, UserID: f.owner.ID, IsCompleted: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Activity.IsCompleted || out.Activity.CompletedAt != nil || out.Progress != 0 {
		t.Errorf("activity not reset: %+v progress=%d", out.Activity, out.Progress)
	}
}

func TestUpdateActivity_OrderingConflictKeepsActivityCompleted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, entity.GoalTypeMultiActivity, "Kitchen")
	f.recorder.err = domainerror.NewStreakError(domainerror.ErrCodeStreakOrdering, "out of order", domainerror.ErrStreakOrdering)

	out, err := f.update(t0).Execute(ctx, UpdateActivityInput{
		GoalID: f.goal.ID, ActivityID: f.items[0].ID, UserID: f.owner.ID, IsCompleted: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Completion != nil {
		t.Errorf("expected no completion output, got %+v", out.Completion)
	}

	stored, err := f.activities.FindByID(ctx, f.items[0].ID)
	if err != nil || !stored.IsCompleted {
		t.Errorf("stored activity = %+v, %v", stored, err)
	}
}

func TestUpdateActivity_FailedCompletionLeavesActivityOpen(t *testing.T) {
	busy := domainerror.NewStreakError(domainerror.ErrCodeStreakBusy, "streak is busy", domainerror.ErrStreakBusy)

	tests := []struct {
		name         string
		status       entity.GoalStatus
		recorderErr  error
		wantErr      error
		wantRecorded int
	}{
		{name: "streak busy", status: entity.GoalStatusActive, recorderErr: busy, wantErr: domainerror.ErrStreakBusy, wantRecorded: 1},
		{name: "repository failure", status: entity.GoalStatusActive, recorderErr: errors.New("connection reset"), wantRecorded: 1},
		{name: "suspended goal", status: entity.GoalStatusSuspended, wantErr: domainerror.ErrInvalidGoalStatus},
		{name: "archived goal", status: entity.GoalStatusArchived, wantErr: domainerror.ErrInvalidGoalStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, entity.GoalTypeMultiActivity, "Kitchen", "Garage")
			f.recorder.err = tt.recorderErr
			if tt.status != f.goal.Status {
				f.goal.Status = tt.status
				if err := f.goals.UpdateStatus(ctx, f.goal, entity.GoalStatusActive); err != nil {
					t.Fatalf("failed to set goal status: %v", err)
				}
			}

			_, err := f.update(t0).Execute(ctx, UpdateActivityInput{
				GoalID: f.goal.ID, ActivityID: f.items[0].ID, UserID: f.owner.ID, IsCompleted: boolPtr(true),
			})
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if len(f.recorder.inputs) != tt.wantRecorded {
				t.Errorf("recorded completions = %d, want %d", len(f.recorder.inputs), tt.wantRecorded)
			}

			stored, err := f.activities.FindByID(ctx, f.items[0].ID)
			if err != nil {
				t.Fatalf("FindByID() error = %v", err)
			}
			if stored.IsCompleted || stored.CompletedAt != nil {
				t.Errorf("activity persisted as completed: %+v", stored)
			}
		})
	}
}

func TestUpdateActivity_Rename(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, entity.GoalTypeMultiActivity, "Kitchen")
	title := "Kitchen and pantry"

	out, err := f.update(t0.Add(time.Hour)).Execute(ctx, UpdateActivityInput{
		GoalID: f.goal.ID, ActivityID: f.items[0].ID, UserID: f.owner.ID, Title: &title,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Activity.Title != title {
		t.Errorf("title = %q, want %q", out.Activity.Title, title)
	}

	_, err = f.update(t0.Add(6*time.Hour)).Execute(ctx, UpdateActivityInput{
		GoalID: f.goal.ID, ActivityID: f.items[0].ID, UserID: f.owner.ID, Title: &title,
	})
	if !errors.Is(err, domainerror.ErrEditWindowClosed) {
		t.Errorf("expected ErrEditWindowClosed, got %v", err)
	}
}

func TestUpdateActivity_WrongGoal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, entity.GoalTypeMultiActivity, "Kitchen")

	other := entity.NewGoal(f.owner.ID, "Other", "", entity.GoalTypeMultiActivity, entity.GoalVisibilityPrivate)
	if err := f.goals.Create(ctx, other); err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	_, err := f.update(t0).Execute(ctx, UpdateActivityInput{
		GoalID: other.ID, ActivityID: f.items[0].ID, UserID: f.owner.ID, IsCompleted: boolPtr(true),
	})
	if !errors.Is(err, domainerror.ErrActivityGoalMismatch) {
		t.Errorf("expected ErrActivityGoalMismatch, got %v", err)
	}

	_, err = f.update(t0).Execute(ctx, UpdateActivityInput{
		GoalID: f.goal.ID, ActivityID: uuid.New(), UserID: f.owner.ID, IsCompleted: boolPtr(true),
	})
	if !errors.Is(err, domainerror.ErrActivityNotFound) {
		t.Errorf("expected ErrActivityNotFound, got %v", err)
	}
}

func TestDeleteAndListActivities(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, entity.GoalTypeMultiActivity, "Kitchen", "Garage", "Attic")

	del := NewDeleteActivityUseCase(f.goals, f.activities)
	del.now = func() time.Time { return t0 }
	if err := del.Execute(ctx, DeleteActivityInput{GoalID: f.goal.ID, ActivityID: f.items[1].ID, UserID: f.owner.ID}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	list := NewListActivitiesUseCase(f.goals, f.activities, f.partnerships)
	out, err := list.Execute(ctx, ListActivitiesInput{GoalID: f.goal.ID, ViewerID: f.owner.ID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if out.Total != 2 || out.Completed != 0 || out.Progress != 0 {
		t.Errorf("unexpected summary: %+v", out)
	}
	if out.Activities[0].Title != "Kitchen" || out.Activities[1].Title != "Attic" {
		t.Errorf("unexpected order: %s, %s", out.Activities[0].Title, out.Activities[1].Title)
	}

	_, err = list.Execute(ctx, ListActivitiesInput{GoalID: f.goal.ID, ViewerID: uuid.New()})
	if !errors.Is(err, domainerror.ErrUnauthorizedGoalAccess) {
		t.Errorf("expected private goal to be hidden, got %v", err)
	}

	del.now = func() time.Time { return t0.Add(6 * time.Hour) }
	err = del.Execute(ctx, DeleteActivityInput{GoalID: f.goal.ID, ActivityID: f.items[0].ID, UserID: f.owner.ID})
	if !errors.Is(err, domainerror.ErrEditWindowClosed) {
		t.Errorf("expected ErrEditWindowClosed, got %v", err)
	}
}

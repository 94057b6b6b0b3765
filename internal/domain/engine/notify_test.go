package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/domain/valueobject"
)

type notifyFixture struct {
	owner    *entity.User
	goal     *entity.Goal
	users    map[uuid.UUID]*entity.User
	failures map[uuid.UUID]error
}

func newNotifyFixture() *notifyFixture {
	owner := entity.NewUser("owner@example.com", "Olivia", "hash")
	goal := entity.NewGoal(owner.ID, "Write every day", "", entity.GoalTypeRecurring, entity.GoalVisibilityRestricted)
	return &notifyFixture{
		owner:    owner,
		goal:     goal,
		users:    map[uuid.UUID]*entity.User{owner.ID: owner},
		failures: make(map[uuid.UUID]error),
	}
}

func (f *notifyFixture) partner(name string, status entity.PartnershipStatus, goalID *uuid.UUID) *entity.Partnership {
	u := entity.NewUser(name+"@example.com", name, "hash")
	f.users[u.ID] = u
	p := entity.NewPartnership(f.owner.ID, u.ID, goalID)
	p.Status = status
	return p
}

func (f *notifyFixture) lookup(id uuid.UUID) (*entity.User, error) {
	if err, ok := f.failures[id]; ok {
		return nil, err
	}
	return f.users[id], nil
}

func (f *notifyFixture) completedGoal() *entity.Goal {
	next, err := Transition(f.goal, entity.GoalStatusCompleted, time.Now())
	if err != nil {
		panic(err)
	}
	return next
}

func recipients(notifications []*entity.Notification) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int)
	for _, n := range notifications {
		out[n.RecipientUserID]++
	}
	return out
}

func TestOnGoalCompleted_FansOutToMatchingPartners(t *testing.T) {
	f := newNotifyFixture()
	otherGoal := uuid.New()
	goalID := f.goal.ID

	allGoals := f.partner("Ana", entity.PartnershipStatusAccepted, nil)
	thisGoal := f.partner("Ben", entity.PartnershipStatusAccepted, &goalID)
	wrongGoal := f.partner("Caio", entity.PartnershipStatusAccepted, &otherGoal)
	pending := f.partner("Dora", entity.PartnershipStatusPending, nil)
	declined := f.partner("Eli", entity.PartnershipStatusDeclined, nil)

	// The partner invited Olivia, so it does not grant visibility over Olivia's goals.
	reversed := entity.NewPartnership(uuid.New(), f.owner.ID, nil)
	reversed.Status = entity.PartnershipStatusAccepted

	partnerships := []*entity.Partnership{allGoals, thisGoal, wrongGoal, pending, declined, reversed}

	after := f.completedGoal()
	notifications, errs := OnGoalCompleted(f.goal, after, f.owner, partnerships, f.lookup)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifications))
	}

	got := recipients(notifications)
	if got[allGoals.PartnerID] != 1 || got[thisGoal.PartnerID] != 1 {
		t.Errorf("unexpected recipients: %v", got)
	}

	for _, n := range notifications {
		if n.Kind != entity.NotificationPartnerUpdate {
			t.Errorf("kind = %s, want partner_update", n.Kind)
		}
		if n.Metadata[entity.MetaOwnerName] != "Olivia" {
			t.Errorf("owner_name = %v", n.Metadata[entity.MetaOwnerName])
		}
		if n.Metadata[entity.MetaGoalTitle] != f.goal.Title {
			t.Errorf("goal_title = %v", n.Metadata[entity.MetaGoalTitle])
		}
		if n.RelatedGoalID == nil || *n.RelatedGoalID != f.goal.ID {
			t.Errorf("related goal = %v, want %s", n.RelatedGoalID, f.goal.ID)
		}
	}
}

func TestOnGoalCompleted_IsEdgeTriggered(t *testing.T) {
	f := newNotifyFixture()
	partnerships := []*entity.Partnership{f.partner("Ana", entity.PartnershipStatusAccepted, nil)}

	after := f.completedGoal()
	first, _ := OnGoalCompleted(f.goal, after, f.owner, partnerships, f.lookup)
	if len(first) != 1 {
		t.Fatalf("expected 1 notification on completion, got %d", len(first))
	}

	second, _ := OnGoalCompleted(after, after.Clone(), f.owner, partnerships, f.lookup)
	if len(second) != 0 {
		t.Errorf("expected no notifications for already completed goal, got %d", len(second))
	}

	none, _ := OnGoalCompleted(f.goal, f.goal.Clone(), f.owner, partnerships, f.lookup)
	if len(none) != 0 {
		t.Errorf("expected no notifications without completion, got %d", len(none))
	}
}

func TestOnGoalCompleted_DeduplicatesPartner(t *testing.T) {
	f := newNotifyFixture()
	goalID := f.goal.ID
	p1 := f.partner("Ana", entity.PartnershipStatusAccepted, nil)
	p2 := entity.NewPartnership(f.owner.ID, p1.PartnerID, &goalID)
	p2.Status = entity.PartnershipStatusAccepted

	notifications, _ := OnGoalCompleted(f.goal, f.completedGoal(), f.owner, []*entity.Partnership{p1, p2}, f.lookup)
	if len(notifications) != 1 {
		t.Errorf("expected 1 notification for duplicated partner, got %d", len(notifications))
	}
}

func TestOnGoalCompleted_IsolatesLookupFailures(t *testing.T) {
	f := newNotifyFixture()
	ok1 := f.partner("Ana", entity.PartnershipStatusAccepted, nil)
	broken := f.partner("Ben", entity.PartnershipStatusAccepted, nil)
	ok2 := f.partner("Caio", entity.PartnershipStatusAccepted, nil)
	missing := entity.NewPartnership(f.owner.ID, uuid.New(), nil)
	missing.Status = entity.PartnershipStatusAccepted

	lookupErr := errors.New("connection reset")
	f.failures[broken.PartnerID] = lookupErr

	notifications, errs := OnGoalCompleted(f.goal, f.completedGoal(), f.owner,
		[]*entity.Partnership{ok1, broken, ok2, missing}, f.lookup)

	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifications))
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}

	var partnerErr *domainerror.PartnerLookupError
	if !errors.As(errs[0], &partnerErr) {
		t.Fatalf("expected *PartnerLookupError, got %T", errs[0])
	}
	if partnerErr.PartnerID != broken.PartnerID || !errors.Is(errs[0], lookupErr) {
		t.Errorf("unexpected lookup error: %v", errs[0])
	}
	if !errors.Is(errs[1], domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for missing partner, got %v", errs[1])
	}
}

func TestMilestoneReached(t *testing.T) {
	tests := []struct {
		name     string
		before   int
		after    int
		expected int
		reached  bool
	}{
		{name: "reaches three", before: 2, after: 3, expected: 3, reached: true},
		{name: "reaches a year", before: 364, after: 365, expected: 365, reached: true},
		{name: "between milestones", before: 3, after: 4, reached: false},
		{name: "same day check-in on milestone", before: 7, after: 7, reached: false},
		{name: "reset", before: 13, after: 1, reached: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MilestoneReached(entity.Streak{CurrentStreak: tt.before}, entity.Streak{CurrentStreak: tt.after})
			if ok != tt.reached || got != tt.expected {
				t.Errorf("MilestoneReached() = (%d, %v), want (%d, %v)", got, ok, tt.expected, tt.reached)
			}
		})
	}
}

func TestOnStreakUpdated(t *testing.T) {
	f := newNotifyFixture()
	partner := f.partner("Ana", entity.PartnershipStatusAccepted, nil)

	before := entity.NewStreak(entity.StreakKey{GoalID: f.goal.ID, UserID: f.owner.ID})
	before, _ = replay(before.Key(), []valueobject.Date{
		valueobject.MustParseDate("2024-01-01"),
		valueobject.MustParseDate("2024-01-02"),
	})
	after, err := ApplyCompletion(before, valueobject.MustParseDate("2024-01-03"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	notifications, errs := OnStreakUpdated(before, after, f.goal, f.owner, []*entity.Partnership{partner}, f.lookup)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(notifications) != 2 {
		t.Fatalf("expected owner and partner notifications, got %d", len(notifications))
	}

	got := recipients(notifications)
	if got[f.owner.ID] != 1 || got[partner.PartnerID] != 1 {
		t.Errorf("unexpected recipients: %v", got)
	}
	for _, n := range notifications {
		if n.Kind != entity.NotificationStreakMilestone {
			t.Errorf("kind = %s, want streak_milestone", n.Kind)
		}
		if n.Metadata[entity.MetaStreak] != 3 {
			t.Errorf("streak metadata = %v, want 3", n.Metadata[entity.MetaStreak])
		}
	}

	same, _ := ApplyCompletion(after, valueobject.MustParseDate("2024-01-03"))
	repeat, _ := OnStreakUpdated(after, same, f.goal, f.owner, []*entity.Partnership{partner}, f.lookup)
	if len(repeat) != 0 {
		t.Errorf("expected no notifications for same-day check-in, got %d", len(repeat))
	}
}

func TestOnPartnershipRequested(t *testing.T) {
	f := newNotifyFixture()
	goalID := f.goal.ID
	p := f.partner("Ana", entity.PartnershipStatusPending, &goalID)

	n := OnPartnershipRequested(p, f.owner, f.goal)
	if n.RecipientUserID != p.PartnerID {
		t.Errorf("recipient = %s, want %s", n.RecipientUserID, p.PartnerID)
	}
	if n.Kind != entity.NotificationAccountabilityRequest {
		t.Errorf("kind = %s, want accountability_request", n.Kind)
	}
	if n.Metadata[entity.MetaRequesterName] != "Olivia" {
		t.Errorf("requester_name = %v", n.Metadata[entity.MetaRequesterName])
	}
	if n.RelatedUserID == nil || *n.RelatedUserID != f.owner.ID {
		t.Errorf("related user = %v, want %s", n.RelatedUserID, f.owner.ID)
	}

	general := OnPartnershipRequested(f.partner("Ben", entity.PartnershipStatusPending, nil), f.owner, nil)
	if general.RelatedGoalID != nil {
		t.Errorf("expected no related goal, got %v", general.RelatedGoalID)
	}
}

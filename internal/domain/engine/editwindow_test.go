package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
)

func TestCanEdit(t *testing.T) {
	t0 := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		completed bool
		now       time.Time
		expected  bool
	}{
		{name: "just created", now: t0, expected: true},
		{name: "inside window", now: t0.Add(4*time.Hour + 59*time.Minute), expected: true},
		{name: "exactly at window end", now: t0.Add(5 * time.Hour), expected: true},
		{name: "after window", now: t0.Add(5*time.Hour + time.Minute), expected: false},
		{name: "days later", now: t0.Add(72 * time.Hour), expected: false},
		{name: "completed inside window", completed: true, now: t0.Add(time.Minute), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := entity.NewGoal(uuid.New(), "Run 5k", "", entity.GoalTypeSingle, entity.GoalVisibilityPrivate)
			goal.CreatedAt = t0
			if tt.completed {
				completedAt := t0
				goal.Status = entity.GoalStatusCompleted
				goal.CompletedAt = &completedAt
			}

			first := CanEdit(goal, tt.now)
			second := CanEdit(goal, tt.now)
			if first != second {
				t.Fatalf("CanEdit not idempotent: %v then %v", first, second)
			}
			if first != tt.expected {
				t.Errorf("CanEdit() = %v, want %v", first, tt.expected)
			}
		})
	}
}

func TestCanEdit_NilGoal(t *testing.T) {
	if CanEdit(nil, time.Now()) {
		t.Error("expected nil goal to be uneditable")
	}
}

func TestEditWindowRemaining(t *testing.T) {
	t0 := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	goal := entity.NewGoal(uuid.New(), "Run 5k", "", entity.GoalTypeSingle, entity.GoalVisibilityPrivate)
	goal.CreatedAt = t0

	if got := EditWindowRemaining(goal, t0.Add(2*time.Hour)); got != 3*time.Hour {
		t.Errorf("remaining = %v, want 3h", got)
	}
	if got := EditWindowRemaining(goal, t0.Add(6*time.Hour)); got != 0 {
		t.Errorf("remaining after window = %v, want 0", got)
	}

	completedAt := t0
	goal.Status = entity.GoalStatusCompleted
	goal.CompletedAt = &completedAt
	if got := EditWindowRemaining(goal, t0); got != 0 {
		t.Errorf("remaining for completed goal = %v, want 0", got)
	}
}

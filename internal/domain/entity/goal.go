// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// GoalType represents how progress on a goal is measured.
type GoalType string

const (
	GoalTypeSingle        GoalType = "single"
	GoalTypeMultiActivity GoalType = "multi-activity"
	GoalTypeRecurring     GoalType = "recurring"
)

// GoalVisibility controls who besides the owner may see a goal.
type GoalVisibility string

const (
	GoalVisibilityPublic     GoalVisibility = "public"
	GoalVisibilityPrivate    GoalVisibility = "private"
	GoalVisibilityRestricted GoalVisibility = "restricted" // accountability partners only
)

// GoalStatus represents the lifecycle status of a goal.
type GoalStatus string

const (
	GoalStatusActive      GoalStatus = "active"
	GoalStatusCompleted   GoalStatus = "completed"
	GoalStatusSuspended   GoalStatus = "suspended"
	GoalStatusArchived    GoalStatus = "archived"
	GoalStatusUncompleted GoalStatus = "uncompleted"
)

// Goal represents a user goal in the Commitly system.
type Goal struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	GoalType    GoalType
	Visibility  GoalVisibility
	Status      GoalStatus
	Tags        []string
	// ReportedProgress is the caller-supplied period percentage for recurring goals.
	ReportedProgress *int
	CreatedAt        time.Time
	UpdatedAt        time.Time
	CompletedAt      *time.Time // set iff Status == completed
	DeletedAt        *time.Time // Soft-delete support
}

// NewGoal creates a new active Goal entity.
func NewGoal(ownerID uuid.UUID, title, description string, goalType GoalType, visibility GoalVisibility) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		GoalType:    goalType,
		Visibility:  visibility,
		Status:      GoalStatusActive,
		Tags:        []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsCompleted reports whether the goal is in the completed status.
func (g *Goal) IsCompleted() bool {
	return g.Status == GoalStatusCompleted
}

// AcceptsCompletions is false while the goal is suspended or archived.
func (g *Goal) AcceptsCompletions() bool {
	return g.Status != GoalStatusSuspended && g.Status != GoalStatusArchived
}

// Clone returns a copy of the goal that shares no pointers with the original.
func (g *Goal) Clone() *Goal {
	c := *g
	if g.Tags != nil {
		c.Tags = append([]string(nil), g.Tags...)
	}
	if g.ReportedProgress != nil {
		p := *g.ReportedProgress
		c.ReportedProgress = &p
	}
	if g.CompletedAt != nil {
		t := *g.CompletedAt
		c.CompletedAt = &t
	}
	if g.DeletedAt != nil {
		t := *g.DeletedAt
		c.DeletedAt = &t
	}
	return &c
}

// IsValidGoalType validates the goal type.
func IsValidGoalType(t GoalType) bool {
	return t == GoalTypeSingle || t == GoalTypeMultiActivity || t == GoalTypeRecurring
}

// IsValidGoalVisibility validates the goal visibility.
func IsValidGoalVisibility(v GoalVisibility) bool {
	return v == GoalVisibilityPublic || v == GoalVisibilityPrivate || v == GoalVisibilityRestricted
}

// IsValidGoalStatus validates the goal status.
func IsValidGoalStatus(s GoalStatus) bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusSuspended, GoalStatusArchived, GoalStatusUncompleted:
		return true
	default:
		return false
	}
}

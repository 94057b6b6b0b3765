package dto

import (
	"time"

	"github.com/commitly/backend/internal/domain/entity"
)

// CreateActivityRequest represents the request body for adding an activity.
type CreateActivityRequest struct {
	Title string `json:"title" binding:"required"`
}

// UpdateActivityRequest represents the request body for updating an activity.
type UpdateActivityRequest struct {
	Title       *string `json:"title,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

// ActivityResponse represents a single activity in API responses.
type ActivityResponse struct {
	ID          string     `json:"id"`
	GoalID      string     `json:"goal_id"`
	Title       string     `json:"title"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	OrderIndex  int        `json:"order_index"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ActivityListResponse represents the activities of a goal with their completion summary.
type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Completed  int                `json:"completed"`
	Total      int                `json:"total"`
	Progress   int                `json:"progress"`
}

// UpdateActivityResponse is returned after an activity update.
type UpdateActivityResponse struct {
	Activity  ActivityResponse `json:"activity"`
	Progress  int              `json:"progress"`
	Streak    *StreakResponse  `json:"streak,omitempty"`
	Milestone int              `json:"milestone,omitempty"`
}

// ToActivityResponse converts a domain Activity entity to an ActivityResponse DTO.
func ToActivityResponse(a *entity.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID.String(),
		GoalID:      a.GoalID.String(),
		Title:       a.Title,
		IsCompleted: a.IsCompleted,
		CompletedAt: a.CompletedAt,
		OrderIndex:  a.OrderIndex,
		CreatedAt:   a.CreatedAt,
	}
}

// ToActivityResponses converts a slice of activities.
func ToActivityResponses(activities []*entity.Activity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(activities))
	for _, a := range activities {
		if a == nil {
			continue
		}
		out = append(out, ToActivityResponse(a))
	}
	return out
}

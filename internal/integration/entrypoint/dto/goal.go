package dto

import (
	"time"

	"github.com/commitly/backend/internal/application/usecase/goal"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"max=2000"`
	GoalType    string   `json:"goal_type" binding:"required"`
	Visibility  *string  `json:"visibility,omitempty"`
	Tags        []string `json:"tags,omitempty" binding:"max=20,dive,max=50"`
	Activities  []string `json:"activities,omitempty" binding:"max=100"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty" binding:"omitempty,max=2000"`
	Visibility  *string   `json:"visibility,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// ChangeStatusRequest represents the request body for a goal status change.
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ReportProgressRequest represents the request body for reporting recurring goal progress.
type ReportProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID                         string             `json:"id"`
	OwnerID                    string             `json:"owner_id"`
	Title                      string             `json:"title"`
	Description                string             `json:"description"`
	GoalType                   string             `json:"goal_type"`
	Visibility                 string             `json:"visibility"`
	Status                     string             `json:"status"`
	Tags                       []string           `json:"tags"`
	Progress                   int                `json:"progress"`
	ReportedProgress           *int               `json:"reported_progress,omitempty"`
	CanEdit                    bool               `json:"can_edit"`
	EditWindowRemainingSeconds int64              `json:"edit_window_remaining_seconds"`
	Activities                 []ActivityResponse `json:"activities"`
	Streak                     *StreakResponse    `json:"streak,omitempty"`
	CompletedAt                *time.Time         `json:"completed_at,omitempty"`
	CreatedAt                  time.Time          `json:"created_at"`
	UpdatedAt                  time.Time          `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ChangeStatusResponse represents the response for a goal status change.
type ChangeStatusResponse struct {
	Goal             GoalResponse `json:"goal"`
	PartnersNotified int          `json:"partners_notified"`
}

// ToGoalResponse converts a GoalOutput to a GoalResponse DTO.
func ToGoalResponse(output *goal.GoalOutput) GoalResponse {
	g := output.Goal
	tags := g.Tags
	if tags == nil {
		tags = []string{}
	}

	response := GoalResponse{
		ID:                         g.ID.String(),
		OwnerID:                    g.OwnerID.String(),
		Title:                      g.Title,
		Description:                g.Description,
		GoalType:                   string(g.GoalType),
		Visibility:                 string(g.Visibility),
		Status:                     string(g.Status),
		Tags:                       tags,
		Progress:                   output.Progress,
		ReportedProgress:           g.ReportedProgress,
		CanEdit:                    output.CanEdit,
		EditWindowRemainingSeconds: int64(output.EditWindowRemaining / time.Second),
		Activities:                 ToActivityResponses(output.Activities),
		CompletedAt:                g.CompletedAt,
		CreatedAt:                  g.CreatedAt,
		UpdatedAt:                  g.UpdatedAt,
	}

	if output.Streak != nil {
		streak := ToStreakResponse(*output.Streak)
		response.Streak = &streak
	}

	return response
}

// ToGoalListResponse converts a list of GoalOutput to GoalListResponse.
func ToGoalListResponse(outputs []*goal.GoalOutput) GoalListResponse {
	goals := make([]GoalResponse, len(outputs))
	for i, output := range outputs {
		goals[i] = ToGoalResponse(output)
	}
	return GoalListResponse{
		Goals: goals,
	}
}

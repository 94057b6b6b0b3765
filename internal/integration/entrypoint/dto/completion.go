package dto

import (
	"time"

	"github.com/commitly/backend/internal/domain/entity"
)

// RecordCompletionRequest represents the request body for a check-in.
// An empty body records a completion for today.
type RecordCompletionRequest struct {
	CompletionDate *string `json:"completion_date,omitempty"`
}

// StreakResponse represents a streak in API responses.
type StreakResponse struct {
	GoalID            string  `json:"goal_id"`
	UserID            string  `json:"user_id"`
	CurrentStreak     int     `json:"current_streak"`
	LongestStreak     int     `json:"longest_streak"`
	TotalCompletions  int     `json:"total_completions"`
	LastCompletedDate *string `json:"last_completed_date"`
	Alive             *bool   `json:"alive,omitempty"`
	Today             string  `json:"today,omitempty"`
}

// CompletionResponse represents a completion event in API responses.
type CompletionResponse struct {
	ID             string    `json:"id"`
	GoalID         string    `json:"goal_id"`
	UserID         string    `json:"user_id"`
	ActivityID     *string   `json:"activity_id,omitempty"`
	CompletionDate string    `json:"completion_date"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
}

// RecordCompletionResponse is returned after a completion is recorded.
type RecordCompletionResponse struct {
	Completion CompletionResponse `json:"completion"`
	Streak     StreakResponse     `json:"streak"`
	Milestone  int                `json:"milestone,omitempty"`
}

// CompletionListResponse represents the response for listing completions.
type CompletionListResponse struct {
	Completions []CompletionResponse `json:"completions"`
}

// ToStreakResponse converts a domain Streak to a StreakResponse DTO.
func ToStreakResponse(s entity.Streak) StreakResponse {
	response := StreakResponse{
		GoalID:           s.GoalID.String(),
		UserID:           s.UserID.String(),
		CurrentStreak:    s.CurrentStreak,
		LongestStreak:    s.LongestStreak,
		TotalCompletions: s.TotalCompletions,
	}
	if s.LastCompletedDate != nil {
		date := s.LastCompletedDate.String()
		response.LastCompletedDate = &date
	}
	return response
}

// ToCompletionResponse converts a domain CompletionEvent to a CompletionResponse DTO.
func ToCompletionResponse(e *entity.CompletionEvent) CompletionResponse {
	response := CompletionResponse{
		ID:             e.ID.String(),
		GoalID:         e.GoalID.String(),
		UserID:         e.UserID.String(),
		CompletionDate: e.CompletionDate.String(),
		Source:         string(e.Source),
		CreatedAt:      e.CreatedAt,
	}
	if e.ActivityID != nil {
		id := e.ActivityID.String()
		response.ActivityID = &id
	}
	return response
}

// ToCompletionListResponse converts completion events to a CompletionListResponse.
func ToCompletionListResponse(events []*entity.CompletionEvent) CompletionListResponse {
	completions := make([]CompletionResponse, len(events))
	for i, e := range events {
		completions[i] = ToCompletionResponse(e)
	}
	return CompletionListResponse{Completions: completions}
}

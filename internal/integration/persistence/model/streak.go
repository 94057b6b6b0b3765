package model

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
	"github.com/commitly/backend/internal/domain/valueobject"
)

// StreakModel represents the streaks table. There is one row per (goal, user) pair.
// Calendar dates are stored as YYYY-MM-DD text so they never shift with the session time zone.
type StreakModel struct {
	GoalID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CurrentStreak     int       `gorm:"not null;default:0"`
	LongestStreak     int       `gorm:"not null;default:0"`
	LastCompletedDate *string   `gorm:"type:varchar(10)"`
	TotalCompletions  int       `gorm:"not null;default:0"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for the StreakModel.
func (StreakModel) TableName() string {
	return "streaks"
}

// ToEntity converts a StreakModel to a domain Streak entity.
func (m *StreakModel) ToEntity() *entity.Streak {
	streak := &entity.Streak{
		GoalID:           m.GoalID,
		UserID:           m.UserID,
		CurrentStreak:    m.CurrentStreak,
		LongestStreak:    m.LongestStreak,
		TotalCompletions: m.TotalCompletions,
		UpdatedAt:        m.UpdatedAt,
	}

	if m.LastCompletedDate != nil {
		date, err := valueobject.ParseDate(*m.LastCompletedDate)
		if err != nil {
			slog.Warn("Failed to parse last completed date", "error", err, "goal_id", m.GoalID, "user_id", m.UserID)
		} else {
			streak.LastCompletedDate = &date
		}
	}

	return streak
}

// StreakFromEntity creates a StreakModel from a domain Streak entity.
func StreakFromEntity(streak entity.Streak) *StreakModel {
	var last *string
	if streak.LastCompletedDate != nil {
		s := streak.LastCompletedDate.String()
		last = &s
	}

	return &StreakModel{
		GoalID:            streak.GoalID,
		UserID:            streak.UserID,
		CurrentStreak:     streak.CurrentStreak,
		LongestStreak:     streak.LongestStreak,
		LastCompletedDate: last,
		TotalCompletions:  streak.TotalCompletions,
		UpdatedAt:         streak.UpdatedAt,
	}
}

// CompletionModel represents the completion_events table, an append-only ledger.
type CompletionModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	GoalID         uuid.UUID  `gorm:"type:uuid;not null;index:idx_completion_key"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index:idx_completion_key"`
	ActivityID     *uuid.UUID `gorm:"type:uuid"`
	CompletionDate string     `gorm:"type:varchar(10);not null;index"`
	Source         string     `gorm:"type:varchar(20);not null"`
	CreatedAt      time.Time  `gorm:"not null"`
}

// TableName returns the table name for the CompletionModel.
func (CompletionModel) TableName() string {
	return "completion_events"
}

// ToEntity converts a CompletionModel to a domain CompletionEvent entity.
func (m *CompletionModel) ToEntity() (*entity.CompletionEvent, error) {
	date, err := valueobject.ParseDate(m.CompletionDate)
	if err != nil {
		return nil, err
	}

	return &entity.CompletionEvent{
		ID:             m.ID,
		GoalID:         m.GoalID,
		UserID:         m.UserID,
		ActivityID:     m.ActivityID,
		CompletionDate: date,
		Source:         entity.CompletionSource(m.Source),
		CreatedAt:      m.CreatedAt,
	}, nil
}

// CompletionFromEntity creates a CompletionModel from a domain CompletionEvent entity.
func CompletionFromEntity(event *entity.CompletionEvent) *CompletionModel {
	return &CompletionModel{
		ID:             event.ID,
		GoalID:         event.GoalID,
		UserID:         event.UserID,
		ActivityID:     event.ActivityID,
		CompletionDate: event.CompletionDate.String(),
		Source:         string(event.Source),
		CreatedAt:      event.CreatedAt,
	}
}

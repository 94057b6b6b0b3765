package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
)

// ActivityModel represents the activities table in the database.
type ActivityModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	GoalID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"type:varchar(200);not null"`
	IsCompleted bool       `gorm:"not null;default:false"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	OrderIndex  int        `gorm:"not null;default:0"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for the ActivityModel.
func (ActivityModel) TableName() string {
	return "activities"
}

// ToEntity converts an ActivityModel to a domain Activity entity.
func (m *ActivityModel) ToEntity() *entity.Activity {
	return &entity.Activity{
		ID:          m.ID,
		GoalID:      m.GoalID,
		Title:       m.Title,
		IsCompleted: m.IsCompleted,
		CompletedAt: m.CompletedAt,
		OrderIndex:  m.OrderIndex,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ActivityFromEntity creates an ActivityModel from a domain Activity entity.
func ActivityFromEntity(activity *entity.Activity) *ActivityModel {
	return &ActivityModel{
		ID:          activity.ID,
		GoalID:      activity.GoalID,
		Title:       activity.Title,
		IsCompleted: activity.IsCompleted,
		CompletedAt: activity.CompletedAt,
		OrderIndex:  activity.OrderIndex,
		CreatedAt:   activity.CreatedAt,
		UpdatedAt:   activity.UpdatedAt,
	}
}

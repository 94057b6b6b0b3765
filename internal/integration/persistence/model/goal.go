package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/commitly/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OwnerID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title            string         `gorm:"type:varchar(200);not null"`
	Description      string         `gorm:"type:text"`
	GoalType         string         `gorm:"type:varchar(20);not null"`
	Visibility       string         `gorm:"type:varchar(20);not null;default:'private'"`
	Status           string         `gorm:"type:varchar(20);not null;default:'active';index"`
	Tags             pq.StringArray `gorm:"type:text[]"`
	ReportedProgress *int           `gorm:"type:integer"`
	CompletedAt      *time.Time     `gorm:"column:completed_at"`
	CreatedAt        time.Time      `gorm:"not null"`
	UpdatedAt        time.Time      `gorm:"not null"`
	DeletedAt        gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	tags := make([]string, len(m.Tags))
	copy(tags, m.Tags)

	return &entity.Goal{
		ID:               m.ID,
		OwnerID:          m.OwnerID,
		Title:            m.Title,
		Description:      m.Description,
		GoalType:         entity.GoalType(m.GoalType),
		Visibility:       entity.GoalVisibility(m.Visibility),
		Status:           entity.GoalStatus(m.Status),
		Tags:             tags,
		ReportedProgress: m.ReportedProgress,
		CompletedAt:      m.CompletedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		DeletedAt:        deletedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	var deletedAt gorm.DeletedAt
	if goal.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *goal.DeletedAt, Valid: true}
	}

	tags := make(pq.StringArray, len(goal.Tags))
	copy(tags, goal.Tags)

	return &GoalModel{
		ID:               goal.ID,
		OwnerID:          goal.OwnerID,
		Title:            goal.Title,
		Description:      goal.Description,
		GoalType:         string(goal.GoalType),
		Visibility:       string(goal.Visibility),
		Status:           string(goal.Status),
		Tags:             tags,
		ReportedProgress: goal.ReportedProgress,
		CompletedAt:      goal.CompletedAt,
		CreatedAt:        goal.CreatedAt,
		UpdatedAt:        goal.UpdatedAt,
		DeletedAt:        deletedAt,
	}
}

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
)

// PartnershipModel represents the partnerships table in the database.
type PartnershipModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID  `gorm:"type:uuid;not null;index"`
	PartnerID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	GoalID      *uuid.UUID `gorm:"type:uuid;index"`
	Status      string     `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt   time.Time  `gorm:"not null"`
	RespondedAt *time.Time `gorm:"column:responded_at"`
}

// TableName returns the table name for the PartnershipModel.
func (PartnershipModel) TableName() string {
	return "partnerships"
}

// ToEntity converts a PartnershipModel to a domain Partnership entity.
func (m *PartnershipModel) ToEntity() *entity.Partnership {
	return &entity.Partnership{
		ID:          m.ID,
		RequesterID: m.RequesterID,
		PartnerID:   m.PartnerID,
		GoalID:      m.GoalID,
		Status:      entity.PartnershipStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		RespondedAt: m.RespondedAt,
	}
}

// PartnershipFromEntity creates a PartnershipModel from a domain Partnership entity.
func PartnershipFromEntity(p *entity.Partnership) *PartnershipModel {
	return &PartnershipModel{
		ID:          p.ID,
		RequesterID: p.RequesterID,
		PartnerID:   p.PartnerID,
		GoalID:      p.GoalID,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		RespondedAt: p.RespondedAt,
	}
}

// PartnershipWithNames is the result row of a partnerships query joined with both users.
type PartnershipWithNames struct {
	PartnershipModel
	RequesterName  string
	RequesterEmail string
	PartnerName    string
	PartnerEmail   string
}

// ToEntity converts the joined row to a Partnership with counterpart names populated.
func (m *PartnershipWithNames) ToEntity() *entity.Partnership {
	p := m.PartnershipModel.ToEntity()
	p.RequesterName = nameOrEmail(m.RequesterName, m.RequesterEmail)
	p.PartnerName = nameOrEmail(m.PartnerName, m.PartnerEmail)
	return p
}

func nameOrEmail(name, email string) string {
	if name != "" {
		return name
	}
	return email
}

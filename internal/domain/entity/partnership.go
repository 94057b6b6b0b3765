// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// PartnershipStatus represents the status of an accountability partnership.
type PartnershipStatus string

const (
	PartnershipStatusPending  PartnershipStatus = "pending"
	PartnershipStatusAccepted PartnershipStatus = "accepted"
	PartnershipStatusDeclined PartnershipStatus = "declined"
)

// Partnership grants PartnerID visibility and notification rights over RequesterID's goals.
// A nil GoalID applies to every goal of the requester.
type Partnership struct {
	ID          uuid.UUID
	RequesterID uuid.UUID
	PartnerID   uuid.UUID
	GoalID      *uuid.UUID
	Status      PartnershipStatus
	CreatedAt   time.Time
	RespondedAt *time.Time
	// Counterpart information (populated when needed)
	RequesterName string
	PartnerName   string
}

// NewPartnership creates a pending Partnership entity.
func NewPartnership(requesterID, partnerID uuid.UUID, goalID *uuid.UUID) *Partnership {
	return &Partnership{
		ID:          uuid.New(),
		RequesterID: requesterID,
		PartnerID:   partnerID,
		GoalID:      goalID,
		Status:      PartnershipStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}

// IsAccepted reports whether the partnership is active.
func (p *Partnership) IsAccepted() bool {
	return p.Status == PartnershipStatusAccepted
}

// IsPending reports whether the partner has not yet responded.
func (p *Partnership) IsPending() bool {
	return p.Status == PartnershipStatusPending
}

// Covers reports whether the partnership applies to the given goal of the requester.
func (p *Partnership) Covers(goal *Goal) bool {
	if goal == nil || p.RequesterID != goal.OwnerID {
		return false
	}
	return p.GoalID == nil || *p.GoalID == goal.ID
}

// Involves reports whether the user is either side of the partnership.
func (p *Partnership) Involves(userID uuid.UUID) bool {
	return p.RequesterID == userID || p.PartnerID == userID
}

// Respond records the partner's answer.
func (p *Partnership) Respond(accept bool) {
	if accept {
		p.Status = PartnershipStatusAccepted
	} else {
		p.Status = PartnershipStatusDeclined
	}
	now := time.Now().UTC()
	p.RespondedAt = &now
}

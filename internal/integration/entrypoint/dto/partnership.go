package dto

import (
	"time"

	"github.com/commitly/backend/internal/domain/entity"
)

// CreatePartnershipRequest represents the request body for inviting an accountability partner.
type CreatePartnershipRequest struct {
	PartnerEmail string  `json:"partner_email" binding:"required,email"`
	GoalID       *string `json:"goal_id,omitempty" binding:"omitempty,uuid"`
}

// RespondPartnershipRequest represents the request body for answering an invitation.
type RespondPartnershipRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// PartnershipResponse represents a partnership in API responses.
type PartnershipResponse struct {
	ID            string     `json:"id"`
	RequesterID   string     `json:"requester_id"`
	RequesterName string     `json:"requester_name,omitempty"`
	PartnerID     string     `json:"partner_id"`
	PartnerName   string     `json:"partner_name,omitempty"`
	GoalID        *string    `json:"goal_id,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
}

// PartnershipListResponse splits partnerships by the caller's side.
type PartnershipListResponse struct {
	Sent     []PartnershipResponse `json:"sent"`
	Received []PartnershipResponse `json:"received"`
}

// ToPartnershipResponse converts a domain Partnership to a PartnershipResponse DTO.
func ToPartnershipResponse(p *entity.Partnership) PartnershipResponse {
	response := PartnershipResponse{
		ID:            p.ID.String(),
		RequesterID:   p.RequesterID.String(),
		RequesterName: p.RequesterName,
		PartnerID:     p.PartnerID.String(),
		PartnerName:   p.PartnerName,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		RespondedAt:   p.RespondedAt,
	}
	if p.GoalID != nil {
		id := p.GoalID.String()
		response.GoalID = &id
	}
	return response
}

// ToPartnershipResponses converts a slice of partnerships.
func ToPartnershipResponses(partnerships []*entity.Partnership) []PartnershipResponse {
	out := make([]PartnershipResponse, len(partnerships))
	for i, p := range partnerships {
		out[i] = ToPartnershipResponse(p)
	}
	return out
}

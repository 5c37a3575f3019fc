package dto

import (
	"time"

	"github.com/saralbooks/bank_recon_app/internal/core/domain"
)

// CreatePartyRequest adds one name to the directory.
type CreatePartyRequest struct {
	Name string `json:"name" binding:"required,min=2,max=200"`
}

// PartyResponse is the presentation shape of a directory entry.
type PartyResponse struct {
	PartyID      string    `json:"partyID"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToPartyResponse maps a domain party to its response shape.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:      p.PartyID,
		Name:         p.Name,
		DisplayOrder: p.DisplayOrder,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}

// ToPartyResponses maps a slice of domain parties.
func ToPartyResponses(parties []domain.Party) []PartyResponse {
	out := make([]PartyResponse, 0, len(parties))
	for i := range parties {
		out = append(out, ToPartyResponse(&parties[i]))
	}
	return out
}

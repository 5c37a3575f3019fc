package dto

import (
	"time"

	"github.com/saralbooks/bank_recon_app/internal/core/domain"
)

// MappingResponse is the presentation shape of a learned name mapping.
type MappingResponse struct {
	MappingID       string    `json:"mappingID"`
	OriginalPattern string    `json:"originalPattern"`
	CorrectedName   string    `json:"correctedName"`
	Confidence      int       `json:"confidence"`
	LastUsedAt      time.Time `json:"lastUsedAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToMappingResponse maps a domain mapping to its response shape.
func ToMappingResponse(m *domain.NameMapping) MappingResponse {
	return MappingResponse{
		MappingID:       m.MappingID,
		OriginalPattern: m.OriginalPattern,
		CorrectedName:   m.CorrectedName,
		Confidence:      m.Confidence,
		LastUsedAt:      m.LastUsedAt,
		CreatedAt:       m.CreatedAt,
	}
}

// ToMappingResponses maps a slice of domain mappings.
func ToMappingResponses(mappings []domain.NameMapping) []MappingResponse {
	out := make([]MappingResponse, 0, len(mappings))
	for i := range mappings {
		out = append(out, ToMappingResponse(&mappings[i]))
	}
	return out
}

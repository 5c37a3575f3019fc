package domain

import "time"

// Confidence bounds for learned mappings. Confidence only ever moves up,
// and is clamped at MaxConfidence.
const (
	MinConfidence = 1
	MaxConfidence = 10
)

// NameMapping is a learned correspondence from a normalized narration
// pattern to the canonical party name a user confirmed for it.
type NameMapping struct {
	MappingID       string    `json:"mappingID"`
	OriginalPattern string    `json:"originalPattern"` // Normalized; unique per store
	CorrectedName   string    `json:"correctedName"`   // Canonical display form
	Confidence      int       `json:"confidence"`      // 1..10, monotonically non-decreasing
	LastUsedAt      time.Time `json:"lastUsedAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

// BumpConfidence raises the confidence by one, clamped at MaxConfidence.
func (m *NameMapping) BumpConfidence() {
	if m.Confidence < MinConfidence {
		m.Confidence = MinConfidence
		return
	}
	if m.Confidence < MaxConfidence {
		m.Confidence++
	}
}

package models

import "time"

// NameMapping is the database representation of a learned
// narration-pattern to party-name correspondence. original_pattern carries
// a unique constraint; upserts key on it.
type NameMapping struct {
	MappingID       string    `db:"mapping_id"`
	OriginalPattern string    `db:"original_pattern"`
	CorrectedName   string    `db:"corrected_name"`
	Confidence      int       `db:"confidence"`
	LastUsedAt      time.Time `db:"last_used_at"`
	CreatedAt       time.Time `db:"created_at"`
}

package models

import "time"

// Party is the database representation of a directory entry.
type Party struct {
	PartyID      string    `db:"party_id"`
	Name         string    `db:"name"`
	DisplayOrder int       `db:"display_order"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
}

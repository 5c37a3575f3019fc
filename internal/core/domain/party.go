package domain

import "time"

// Party is one entry in the authoritative directory of known
// party/supplier names, independent of learned mappings.
type Party struct {
	PartyID      string    `json:"partyID"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"displayOrder"` // Directory order; used to break matching ties
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

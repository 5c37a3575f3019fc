package repositories

import (
	"context"

	"github.com/saralbooks/bank_recon_app/internal/core/domain"
)

// DirectoryRepository backs the Directory Provider: the authoritative,
// ordered list of known party/supplier names.
type DirectoryRepository interface {
	// ListPartyNames returns the active party names in directory order.
	ListPartyNames(ctx context.Context) ([]string, error)

	// ListParties returns all directory entries in directory order.
	ListParties(ctx context.Context) ([]domain.Party, error)

	// SaveParty inserts a new directory entry.
	SaveParty(ctx context.Context, party domain.Party) error
}

package repositories

import (
	"context"

	"github.com/saralbooks/bank_recon_app/internal/core/domain"
)

// MappingRepository is the Record Store surface for learned name mappings.
// Patterns are stored normalized and are unique per store.
type MappingRepository interface {
	// UpsertMapping inserts the mapping or, when the normalized pattern
	// already exists, replaces its mutable fields (corrected name,
	// confidence, last-used timestamp).
	UpsertMapping(ctx context.Context, mapping domain.NameMapping) error

	// FindMappingByPattern returns the mapping for an exact normalized
	// pattern, or apperrors.ErrNotFound.
	FindMappingByPattern(ctx context.Context, pattern string) (*domain.NameMapping, error)

	// ListMappings returns all mappings in creation order.
	ListMappings(ctx context.Context) ([]domain.NameMapping, error)
}

package services

import (
	"context"

	"github.com/saralbooks/bank_recon_app/internal/core/domain"
)

// SuggestionSvcFacade produces ranked counterparty-name suggestions for a
// transaction by combining the directory matcher, the learned mapping
// store and raw narration extraction.
type SuggestionSvcFacade interface {
	// SuggestForTransaction returns zero or more ranked suggestions.
	// A second lookup for the same transaction while one is outstanding
	// fails fast with apperrors.ErrLookupInProgress. Lookup failures are
	// isolated: they degrade to fewer (or zero) suggestions.
	SuggestForTransaction(ctx context.Context, txn domain.Transaction) ([]domain.Suggestion, error)
}

// MappingSvcFacade is the read side of the learned mapping store.
type MappingSvcFacade interface {
	// Resolve looks a narration candidate up against the learned
	// mappings: exact normalized match first, then the fuzzy gate.
	// Resolution is read-only; it never touches LastUsedAt.
	Resolve(ctx context.Context, candidate string) (correctedName string, found bool, err error)

	// ListMappings returns all learned mappings in creation order.
	ListMappings(ctx context.Context) ([]domain.NameMapping, error)
}

// DirectorySvcFacade ranks the authoritative party directory against a
// narration, independent of learned mappings.
type DirectorySvcFacade interface {
	// MatchDirectory returns up to maxResults directory names scored by
	// token overlap with the narration, ties broken by directory order.
	// maxResults <= 0 selects the default (3).
	MatchDirectory(ctx context.Context, narrationText string, maxResults int) ([]string, error)

	// ListParties returns the directory entries.
	ListParties(ctx context.Context) ([]domain.Party, error)

	// AddParty appends a name to the directory.
	AddParty(ctx context.Context, name string) (*domain.Party, error)
}

// LearningSvcFacade derives and upserts mappings when a user confirms a
// counterparty name. Failures are logged and skipped; the returned error
// is informational and must not abort the caller's primary save.
type LearningSvcFacade interface {
	Learn(ctx context.Context, txn domain.Transaction, confirmedName, previousName string) error
}

package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/saralbooks/bank_recon_app/internal/apperrors"
	"github.com/saralbooks/bank_recon_app/internal/core/domain"
	portssvc "github.com/saralbooks/bank_recon_app/internal/core/ports/services"
	"github.com/saralbooks/bank_recon_app/internal/utils/narration"
)

// Suggestion scores by source. Directory hits are authoritative names, so
// they outrank learned-mapping hits, which outrank raw pattern candidates.
const (
	directoryBaseScore = 1.0
	mappingScore       = 0.6
	patternScore       = 0.25
)

// suggestionService implements SuggestionSvcFacade. Extraction and mapping
// resolution are interleaved: each extracted candidate is checked against
// the store immediately, and the chain short-circuits on the first hit.
type suggestionService struct {
	BaseService
	mapping    portssvc.MappingSvcFacade
	directory  portssvc.DirectorySvcFacade
	maxResults int

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewSuggestionService wires the suggestion pipeline; maxResults <= 0
// selects the directory default.
func NewSuggestionService(mapping portssvc.MappingSvcFacade, directory portssvc.DirectorySvcFacade, maxResults int) portssvc.SuggestionSvcFacade {
	if maxResults <= 0 {
		maxResults = DefaultMaxDirectoryMatches
	}
	return &suggestionService{
		mapping:    mapping,
		directory:  directory,
		maxResults: maxResults,
		inFlight:   make(map[string]struct{}),
	}
}

var _ portssvc.SuggestionSvcFacade = (*suggestionService)(nil)

func (s *suggestionService) SuggestForTransaction(ctx context.Context, txn domain.Transaction) ([]domain.Suggestion, error) {
	// At most one suggestion computation per transaction at a time: a
	// re-rendered view must not duplicate in-flight work.
	s.mu.Lock()
	if _, busy := s.inFlight[txn.TransactionID]; busy {
		s.mu.Unlock()
		return nil, apperrors.ErrLookupInProgress
	}
	s.inFlight[txn.TransactionID] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.inFlight, txn.TransactionID)
		s.mu.Unlock()
	}()

	var suggestions []domain.Suggestion
	seen := make(map[string]struct{})
	add := func(name string, source domain.SuggestionSource, score float64) {
		key := narration.Normalize(name)
		if key == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		suggestions = append(suggestions, domain.Suggestion{Name: name, Source: source, Score: score})
	}

	// Directory names are more authoritative than heuristic guesses, so
	// they come first. A directory failure degrades to fewer suggestions.
	dirNames, err := s.directory.MatchDirectory(ctx, txn.Narration, s.maxResults)
	if err != nil {
		s.LogError(ctx, err, "Directory match failed, continuing without directory suggestions",
			slog.String("transaction_id", txn.TransactionID))
	}
	for i, name := range dirNames {
		add(name, domain.SourceDirectory, directoryBaseScore-float64(i)*0.1)
	}

	// Walk the extraction chain, resolving each candidate immediately;
	// the first store hit ends extraction.
	var firstCandidate string
	resolved := false
extraction:
	for _, step := range narration.ExtractSteps {
		for _, cand := range step(txn.Narration) {
			if firstCandidate == "" {
				firstCandidate = cand
			}
			name, found, err := s.mapping.Resolve(ctx, cand)
			if err != nil {
				// Isolated to this transaction: log and degrade.
				s.LogError(ctx, err, "Mapping resolution failed",
					slog.String("transaction_id", txn.TransactionID),
					slog.String("candidate", cand))
				break extraction
			}
			if found {
				add(name, domain.SourceMapping, mappingScore)
				resolved = true
				break extraction
			}
		}
	}

	// Nothing learned yet: surface the strongest raw candidate so the
	// user has something to confirm (which then trains the store).
	if !resolved && firstCandidate != "" {
		add(strings.TrimSpace(firstCandidate), domain.SourcePattern, patternScore)
	}

	return suggestions, nil
}

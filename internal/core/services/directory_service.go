package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saralbooks/bank_recon_app/internal/apperrors"
	"github.com/saralbooks/bank_recon_app/internal/core/domain"
	portsrepo "github.com/saralbooks/bank_recon_app/internal/core/ports/repositories"
	portssvc "github.com/saralbooks/bank_recon_app/internal/core/ports/services"
	"github.com/saralbooks/bank_recon_app/internal/utils/narration"
)

// DefaultMaxDirectoryMatches is how many directory names MatchDirectory
// returns when the caller does not say otherwise.
const DefaultMaxDirectoryMatches = 3

// DefaultDirectoryCacheTTL bounds how long the party list is served
// without re-reading the directory provider.
const DefaultDirectoryCacheTTL = 5 * time.Minute

// directoryCache is an explicit cache value: the fetched party list, when
// it was fetched and how long it stays valid. Kept as a value on the
// service rather than a module-level mutable.
type directoryCache struct {
	names     []string
	fetchedAt time.Time
	ttl       time.Duration
}

func (c directoryCache) stale(now time.Time) bool {
	return c.fetchedAt.IsZero() || now.Sub(c.fetchedAt) > c.ttl
}

// directoryService implements DirectorySvcFacade: token-overlap ranking of
// a narration against the authoritative party directory.
type directoryService struct {
	BaseService
	directoryRepo portsrepo.DirectoryRepository

	mu    sync.Mutex
	cache directoryCache
}

// NewDirectoryService creates the directory matcher; ttl <= 0 selects the
// default cache TTL.
func NewDirectoryService(repo portsrepo.DirectoryRepository, ttl time.Duration) portssvc.DirectorySvcFacade {
	if ttl <= 0 {
		ttl = DefaultDirectoryCacheTTL
	}
	return &directoryService{
		directoryRepo: repo,
		cache:         directoryCache{ttl: ttl},
	}
}

var _ portssvc.DirectorySvcFacade = (*directoryService)(nil)

// partyNames returns the cached directory, refreshing it when stale. A
// failed refresh serves the previous list rather than failing the lookup.
func (s *directoryService) partyNames(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if !s.cache.stale(now) {
		return s.cache.names, nil
	}

	names, err := s.directoryRepo.ListPartyNames(ctx)
	if err != nil {
		if len(s.cache.names) > 0 {
			s.LogWarn(ctx, "Directory refresh failed, serving stale list",
				slog.String("error", err.Error()),
				slog.Time("fetched_at", s.cache.fetchedAt))
			return s.cache.names, nil
		}
		return nil, fmt.Errorf("failed to fetch party directory: %w", err)
	}
	s.cache = directoryCache{names: names, fetchedAt: now, ttl: s.cache.ttl}
	return names, nil
}

func (s *directoryService) MatchDirectory(ctx context.Context, narrationText string, maxResults int) ([]string, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxDirectoryMatches
	}
	names, err := s.partyNames(ctx)
	if err != nil {
		return nil, err
	}

	narrTokens := make(map[string]struct{})
	for _, t := range narration.Tokenize(narrationText) {
		narrTokens[t] = struct{}{}
	}

	type scoredName struct {
		name       string
		matched    int
		proportion float64
	}
	var scored []scoredName
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		sig := narration.SignificantTokens(name)
		if len(sig) == 0 {
			continue
		}
		matched := 0
		for _, t := range sig {
			if _, ok := narrTokens[t]; ok {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		scored = append(scored, scoredName{
			name:       name,
			matched:    matched,
			proportion: float64(matched) / float64(len(sig)),
		})
	}

	// Stable sort keeps directory order as the tie-break.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].proportion != scored[j].proportion {
			return scored[i].proportion > scored[j].proportion
		}
		return scored[i].matched > scored[j].matched
	})

	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	out := make([]string, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.name)
	}
	return out, nil
}

func (s *directoryService) ListParties(ctx context.Context) ([]domain.Party, error) {
	parties, err := s.directoryRepo.ListParties(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list parties")
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	if parties == nil {
		return []domain.Party{}, nil
	}
	return parties, nil
}

func (s *directoryService) AddParty(ctx context.Context, name string) (*domain.Party, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: party name cannot be blank", apperrors.ErrValidation)
	}

	existing, err := s.directoryRepo.ListParties(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	for i := range existing {
		if strings.EqualFold(existing[i].Name, name) {
			return nil, fmt.Errorf("%w: party %q already in directory", apperrors.ErrDuplicate, name)
		}
	}

	party := domain.Party{
		PartyID:      uuid.NewString(),
		Name:         name,
		DisplayOrder: len(existing),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.directoryRepo.SaveParty(ctx, party); err != nil {
		s.LogError(ctx, err, "Failed to save party", slog.String("name", name))
		return nil, err
	}

	// New names must be matchable right away; drop the cached list.
	s.mu.Lock()
	s.cache = directoryCache{ttl: s.cache.ttl}
	s.mu.Unlock()

	s.LogInfo(ctx, "Party added to directory",
		slog.String("party_id", party.PartyID),
		slog.String("name", name))
	return &party, nil
}

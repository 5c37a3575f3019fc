package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/saralbooks/bank_recon_app/internal/core/domain"
	portsrepo "github.com/saralbooks/bank_recon_app/internal/core/ports/repositories"
	portssvc "github.com/saralbooks/bank_recon_app/internal/core/ports/services"
	"github.com/saralbooks/bank_recon_app/internal/utils/narration"
)

// mappingService implements the MappingSvcFacade interface: read-only
// resolution of narration candidates against the learned mapping store.
type mappingService struct {
	BaseService
	mappingRepo portsrepo.MappingRepository
}

// NewMappingService creates the mapping resolver over a mapping repository.
func NewMappingService(repo portsrepo.MappingRepository) portssvc.MappingSvcFacade {
	return &mappingService{mappingRepo: repo}
}

var _ portssvc.MappingSvcFacade = (*mappingService)(nil)

// Resolve checks a candidate against the store: exact normalized match
// first, then the fuzzy gate over every mapping in creation order. The
// first accepted match wins. Resolution never mutates the store; only the
// learning engine refreshes LastUsedAt.
func (s *mappingService) Resolve(ctx context.Context, candidate string) (string, bool, error) {
	cand := narration.Normalize(candidate)
	if cand == "" {
		return "", false, nil
	}

	mappings, err := s.mappingRepo.ListMappings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list mappings for resolution",
			slog.String("candidate", cand))
		return "", false, fmt.Errorf("failed to list mappings: %w", err)
	}

	for i := range mappings {
		if mappings[i].OriginalPattern == cand {
			return mappings[i].CorrectedName, true, nil
		}
	}
	for i := range mappings {
		if narration.MatchesPattern(cand, mappings[i].OriginalPattern) {
			s.LogDebug(ctx, "Fuzzy-resolved candidate against learned pattern",
				slog.String("candidate", cand),
				slog.String("pattern", mappings[i].OriginalPattern))
			return mappings[i].CorrectedName, true, nil
		}
	}
	return "", false, nil
}

func (s *mappingService) ListMappings(ctx context.Context) ([]domain.NameMapping, error) {
	mappings, err := s.mappingRepo.ListMappings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list mappings")
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}
	if mappings == nil {
		return []domain.NameMapping{}, nil
	}
	return mappings, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saralbooks/bank_recon_app/internal/apperrors"
	"github.com/saralbooks/bank_recon_app/internal/core/domain"
	portsrepo "github.com/saralbooks/bank_recon_app/internal/core/ports/repositories"
	portssvc "github.com/saralbooks/bank_recon_app/internal/core/ports/services"
	"github.com/saralbooks/bank_recon_app/internal/utils/narration"
)

// learningService implements LearningSvcFacade: it turns a user-confirmed
// party name into mapping-store upserts.
type learningService struct {
	BaseService
	mappingRepo portsrepo.MappingRepository
}

// NewLearningService creates the training engine over a mapping repository.
func NewLearningService(repo portsrepo.MappingRepository) portssvc.LearningSvcFacade {
	return &learningService{mappingRepo: repo}
}

var _ portssvc.LearningSvcFacade = (*learningService)(nil)

// Learn derives candidate patterns from the transaction's narration and
// upserts one mapping per surviving pattern. Individual upsert failures are
// logged and skipped: the remaining upserts still run, and the returned
// error is informational only; callers never roll back their primary save
// because of it.
func (s *learningService) Learn(ctx context.Context, txn domain.Transaction, confirmedName, previousName string) error {
	name := strings.TrimSpace(confirmedName)
	if name == "" {
		return nil
	}
	// A no-op edit (same name after normalization) teaches nothing new.
	if narration.Normalize(previousName) == narration.Normalize(name) {
		return nil
	}

	patterns := narration.LearningPatterns(txn.Narration, name)

	// A user correction also maps the old label to the new one, so stale
	// labels keep resolving after the rename.
	if prev := narration.Normalize(previousName); prev != "" && narration.Plausible(prev) {
		patterns = append(patterns, prev)
	}

	if len(patterns) == 0 {
		s.LogDebug(ctx, "No learnable patterns derived",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("confirmed_name", name))
		return nil
	}

	now := time.Now().UTC()
	failures := 0
	for _, pattern := range patterns {
		if err := s.upsertPattern(ctx, pattern, name, now); err != nil {
			failures++
			s.LogError(ctx, err, "Failed to upsert learned mapping",
				slog.String("pattern", pattern),
				slog.String("transaction_id", txn.TransactionID))
		}
	}

	s.LogInfo(ctx, "Learning pass finished",
		slog.String("transaction_id", txn.TransactionID),
		slog.Int("patterns", len(patterns)),
		slog.Int("failures", failures))
	if failures > 0 {
		return fmt.Errorf("%d of %d mapping upserts failed", failures, len(patterns))
	}
	return nil
}

// upsertPattern inserts a new mapping at minimum confidence or bumps the
// existing one, replacing its corrected name only when it changed.
func (s *learningService) upsertPattern(ctx context.Context, pattern, correctedName string, now time.Time) error {
	existing, err := s.mappingRepo.FindMappingByPattern(ctx, pattern)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	if existing != nil {
		existing.BumpConfidence()
		existing.LastUsedAt = now
		if existing.CorrectedName != correctedName {
			existing.CorrectedName = correctedName
		}
		return s.mappingRepo.UpsertMapping(ctx, *existing)
	}

	return s.mappingRepo.UpsertMapping(ctx, domain.NameMapping{
		MappingID:       uuid.NewString(),
		OriginalPattern: pattern,
		CorrectedName:   correctedName,
		Confidence:      domain.MinConfidence,
		LastUsedAt:      now,
		CreatedAt:       now,
	})
}

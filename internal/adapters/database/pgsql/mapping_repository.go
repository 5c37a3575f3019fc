package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saralbooks/bank_recon_app/internal/apperrors"
	"github.com/saralbooks/bank_recon_app/internal/core/domain"
	portsrepo "github.com/saralbooks/bank_recon_app/internal/core/ports/repositories"
	"github.com/saralbooks/bank_recon_app/internal/models"
)

type PgxMappingRepository struct {
	pool *pgxpool.Pool
}

// NewPgxMappingRepository creates a new repository for learned name mappings.
func NewPgxMappingRepository(pool *pgxpool.Pool) portsrepo.MappingRepository {
	return &PgxMappingRepository{pool: pool}
}

// UpsertMapping inserts the mapping, or replaces the mutable fields when
// the normalized pattern already exists. original_pattern carries the
// unique constraint, so two learners racing on the same pattern converge.
func (r *PgxMappingRepository) UpsertMapping(ctx context.Context, mapping domain.NameMapping) error {
	query := `
		INSERT INTO name_mappings (mapping_id, original_pattern, corrected_name, confidence, last_used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (original_pattern) DO UPDATE SET
			corrected_name = EXCLUDED.corrected_name,
			confidence = GREATEST(name_mappings.confidence, EXCLUDED.confidence),
			last_used_at = EXCLUDED.last_used_at;
	`
	_, err := r.pool.Exec(ctx, query,
		mapping.MappingID,
		mapping.OriginalPattern,
		mapping.CorrectedName,
		mapping.Confidence,
		mapping.LastUsedAt,
		mapping.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert mapping %q: %w", mapping.OriginalPattern, err)
	}
	return nil
}

// FindMappingByPattern retrieves the mapping for an exact normalized pattern.
func (r *PgxMappingRepository) FindMappingByPattern(ctx context.Context, pattern string) (*domain.NameMapping, error) {
	query := `
		SELECT mapping_id, original_pattern, corrected_name, confidence, last_used_at, created_at
		FROM name_mappings
		WHERE original_pattern = $1;
	`
	rows, err := r.pool.Query(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to query mapping %q: %w", pattern, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.NameMapping])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find mapping %q: %w", pattern, err)
	}

	mapping := toMappingDomain(m)
	return &mapping, nil
}

// ListMappings returns all mappings in creation order.
func (r *PgxMappingRepository) ListMappings(ctx context.Context) ([]domain.NameMapping, error) {
	query := `
		SELECT mapping_id, original_pattern, corrected_name, confidence, last_used_at, created_at
		FROM name_mappings
		ORDER BY created_at, mapping_id;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query mappings: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.NameMapping])
	if err != nil {
		return nil, fmt.Errorf("failed to scan mappings: %w", err)
	}

	mappings := make([]domain.NameMapping, len(ms))
	for i := range ms {
		mappings[i] = toMappingDomain(ms[i])
	}
	return mappings, nil
}

func toMappingDomain(m models.NameMapping) domain.NameMapping {
	return domain.NameMapping{
		MappingID:       m.MappingID,
		OriginalPattern: m.OriginalPattern,
		CorrectedName:   m.CorrectedName,
		Confidence:      m.Confidence,
		LastUsedAt:      m.LastUsedAt,
		CreatedAt:       m.CreatedAt,
	}
}

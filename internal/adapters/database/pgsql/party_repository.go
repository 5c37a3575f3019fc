package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saralbooks/bank_recon_app/internal/apperrors"
	"github.com/saralbooks/bank_recon_app/internal/core/domain"
	portsrepo "github.com/saralbooks/bank_recon_app/internal/core/ports/repositories"
	"github.com/saralbooks/bank_recon_app/internal/models"
)

type PgxPartyRepository struct {
	pool *pgxpool.Pool
}

// NewPgxPartyRepository creates a new repository for the party directory.
func NewPgxPartyRepository(pool *pgxpool.Pool) portsrepo.DirectoryRepository {
	return &PgxPartyRepository{pool: pool}
}

// ListPartyNames returns the active party names in directory order.
func (r *PgxPartyRepository) ListPartyNames(ctx context.Context) ([]string, error) {
	query := `
		SELECT name FROM parties
		WHERE is_active
		ORDER BY display_order, name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query party names: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan party names: %w", err)
	}
	return names, nil
}

// ListParties returns all directory entries in directory order.
func (r *PgxPartyRepository) ListParties(ctx context.Context) ([]domain.Party, error) {
	query := `
		SELECT party_id, name, display_order, is_active, created_at
		FROM parties
		ORDER BY display_order, name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Party])
	if err != nil {
		return nil, fmt.Errorf("failed to scan parties: %w", err)
	}

	parties := make([]domain.Party, len(ms))
	for i := range ms {
		parties[i] = domain.Party{
			PartyID:      ms[i].PartyID,
			Name:         ms[i].Name,
			DisplayOrder: ms[i].DisplayOrder,
			IsActive:     ms[i].IsActive,
			CreatedAt:    ms[i].CreatedAt,
		}
	}
	return parties, nil
}

// SaveParty inserts a new directory entry. A name collision maps to
// ErrDuplicate.
func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	query := `
		INSERT INTO parties (party_id, name, display_order, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.pool.Exec(ctx, query,
		party.PartyID,
		party.Name,
		party.DisplayOrder,
		party.IsActive,
		party.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("party %q: %w", party.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save party %q: %w", party.Name, err)
	}
	return nil
}

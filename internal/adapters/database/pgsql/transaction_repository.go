package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saralbooks/bank_recon_app/internal/apperrors"
	"github.com/saralbooks/bank_recon_app/internal/core/domain"
	portsrepo "github.com/saralbooks/bank_recon_app/internal/core/ports/repositories"
	"github.com/saralbooks/bank_recon_app/internal/models"
)

const uniqueViolationCode = "23505"

const transactionColumns = `transaction_id, txn_date, amount, kind, narration, bank_reference,
	party_name, external_reference, added_to_external_system, hold, self_transfer,
	created_at, updated_at`

type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTransactionRepository creates a new repository for transaction data.
func NewPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{pool: pool}
}

// SaveTransactions inserts a batch of newly ingested transactions in one
// round trip. Individual rows that collide on transaction_id fail the
// whole batch with ErrDuplicate; the service layer deduplicates first so
// this signals a race, not normal flow.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for i := range txns {
		m := toTransactionModel(txns[i])
		batch.Queue(query,
			m.TransactionID, m.Date, m.Amount, m.Kind, m.Narration, m.BankReference,
			m.PartyName, m.ExternalReference, m.AddedToExternalSystem, m.Hold, m.SelfTransfer,
			m.CreatedAt, m.UpdatedAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range txns {
		if _, err := results.Exec(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
				return fmt.Errorf("transaction batch insert: %w", apperrors.ErrDuplicate)
			}
			return fmt.Errorf("failed to save transaction batch: %w", err)
		}
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its identifier.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, txnID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	rows, err := r.pool.Query(ctx, query, txnID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %s: %w", txnID, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", txnID, err)
	}

	txn := toTransactionDomain(m)
	return &txn, nil
}

// ListTransactions returns every stored transaction, oldest first with the
// identifier as a stable tie-break.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY txn_date, transaction_id;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}

	txns := make([]domain.Transaction, len(ms))
	for i := range ms {
		txns[i] = toTransactionDomain(ms[i])
	}
	return txns, nil
}

// UpdateTransaction persists the mutable reconciliation fields. txn_date,
// narration, bank_reference and created_at are deliberately absent from
// the statement.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		UPDATE transactions SET
			party_name = $2,
			external_reference = $3,
			added_to_external_system = $4,
			hold = $5,
			self_transfer = $6,
			updated_at = $7
		WHERE transaction_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.PartyName,
		strings.TrimSpace(txn.ExternalReference),
		txn.AddedToExternalSystem,
		txn.Hold,
		txn.SelfTransfer,
		txn.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("external reference already in use: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindByExternalReference returns the transaction holding the given
// trimmed reference among completed rows, excluding excludeTxnID.
func (r *PgxTransactionRepository) FindByExternalReference(ctx context.Context, reference string, excludeTxnID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE trim(external_reference) = trim($1)
		  AND added_to_external_system
		  AND transaction_id <> $2
		LIMIT 1;
	`
	rows, err := r.pool.Query(ctx, query, reference, excludeTxnID)
	if err != nil {
		return nil, fmt.Errorf("failed to query by external reference: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find by external reference: %w", err)
	}

	txn := toTransactionDomain(m)
	return &txn, nil
}

func toTransactionModel(t domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:         t.TransactionID,
		Date:                  t.Date,
		Amount:                t.Amount,
		Kind:                  models.TransactionKind(t.Kind),
		Narration:             t.Narration,
		BankReference:         t.BankReference,
		PartyName:             t.PartyName,
		ExternalReference:     t.ExternalReference,
		AddedToExternalSystem: t.AddedToExternalSystem,
		Hold:                  t.Hold,
		SelfTransfer:          t.SelfTransfer,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}

func toTransactionDomain(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:         m.TransactionID,
		Date:                  m.Date,
		Amount:                m.Amount,
		Kind:                  domain.TransactionKind(m.Kind),
		Narration:             m.Narration,
		BankReference:         m.BankReference,
		PartyName:             m.PartyName,
		ExternalReference:     m.ExternalReference,
		AddedToExternalSystem: m.AddedToExternalSystem,
		Hold:                  m.Hold,
		SelfTransfer:          m.SelfTransfer,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

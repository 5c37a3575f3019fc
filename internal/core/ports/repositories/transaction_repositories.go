package repositories

import (
	"context"

	"github.com/saralbooks/bank_recon_app/internal/core/domain"
)

// TransactionRepository is the Record Store surface for transactions.
// Reads return the authoritative persisted state; writes are
// last-write-wins per record, with no cross-record transactions assumed.
type TransactionRepository interface {
	// SaveTransactions inserts a batch of newly ingested transactions.
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error

	// FindTransactionByID returns one transaction or apperrors.ErrNotFound.
	FindTransactionByID(ctx context.Context, txnID string) (*domain.Transaction, error)

	// ListTransactions returns every stored transaction, oldest first.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// UpdateTransaction persists the mutable fields of a transaction.
	// Implementations must never write txn_date, narration, bank_reference
	// or created_at.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// FindByExternalReference returns the transaction holding the given
	// (trimmed) external reference, excluding excludeTxnID, or
	// apperrors.ErrNotFound when the reference is free.
	FindByExternalReference(ctx context.Context, reference string, excludeTxnID string) (*domain.Transaction, error)
}

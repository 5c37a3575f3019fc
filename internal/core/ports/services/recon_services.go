package services

import (
	"context"

	"github.com/saralbooks/bank_recon_app/internal/core/domain"
	"github.com/saralbooks/bank_recon_app/internal/dto"
)

// ReconSvcFacade is the reconciliation state machine: ingestion with dedup,
// the pending/completed/hold/self-transfer transitions, the
// duplicate-reference guard, and the interactive-edit concurrency contract.
type ReconSvcFacade interface {
	// IngestBatch deduplicates and stores a batch of raw transaction
	// candidates, returning the transactions actually created.
	IngestBatch(ctx context.Context, records []dto.IngestRecord) ([]domain.Transaction, error)

	// ListTransactions returns all transactions, deduplicated on load.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// GetTransaction returns one transaction or apperrors.ErrNotFound.
	GetTransaction(ctx context.Context, txnID string) (*domain.Transaction, error)

	// Refresh re-reads the transaction set from the record store into the
	// local snapshot. While any edit session is open the reload is queued,
	// not dropped.
	Refresh(ctx context.Context)

	// Confirm marks the transaction as entered in the external system
	// under the given reference. Fails with ErrValidation when the party
	// name or reference is blank, and with *DuplicateReferenceError when
	// the reference is already in use elsewhere.
	Confirm(ctx context.Context, txnID, externalReference string) (*domain.Transaction, error)

	// Cancel reverts a confirmed transaction to pending, clearing the
	// external-system flag and reference but leaving everything else.
	Cancel(ctx context.Context, txnID string) (*domain.Transaction, error)

	// SetHold toggles the hold flag.
	SetHold(ctx context.Context, txnID string, hold bool) (*domain.Transaction, error)

	// SetSelfTransfer toggles the self-transfer flag.
	SetSelfTransfer(ctx context.Context, txnID string, selfTransfer bool) (*domain.Transaction, error)

	// UpdatePartyName edits the party label and feeds the confirmation to
	// the learning engine (fire-and-forget).
	UpdatePartyName(ctx context.Context, txnID, partyName string) (*domain.Transaction, error)

	// UpdateExternalReference edits the external reference immediately.
	UpdateExternalReference(ctx context.Context, txnID, reference string) (*domain.Transaction, error)

	// QueueExternalReference buffers a reference edit and flushes it after
	// a quiet period, bounding write volume during free-text typing.
	QueueExternalReference(txnID, reference string)

	// BeginEdit and EndEdit bracket an interactive edit session. Open
	// sessions suppress (queue) background refreshes.
	BeginEdit(txnID string)
	EndEdit(txnID string)
}

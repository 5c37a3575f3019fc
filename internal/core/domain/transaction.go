package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind indicates whether a bank-statement line is a credit or a debit.
type TransactionKind string

const (
	Credit TransactionKind = "CREDIT"
	Debit  TransactionKind = "DEBIT"
)

// ReconStatus is the derived reconciliation state of a transaction. It is
// computed from the stored fields on every read and never persisted.
type ReconStatus string

const (
	StatusPending      ReconStatus = "PENDING"
	StatusCompleted    ReconStatus = "COMPLETED"
	StatusHold         ReconStatus = "HOLD"
	StatusSelfTransfer ReconStatus = "SELF_TRANSFER"
)

// Transaction represents one bank-ledger line as it moves through
// reconciliation.
type Transaction struct {
	TransactionID         string          `json:"transactionID"`     // Primary Key (UUID or bank-supplied)
	Date                  time.Time       `json:"date"`              // Immutable after ingestion
	Amount                decimal.Decimal `json:"amount"`            // Positive magnitude; Kind carries the sign
	Kind                  TransactionKind `json:"kind"`              // CREDIT or DEBIT
	Narration             string          `json:"narration"`         // Immutable free text from the bank feed
	BankReference         string          `json:"bankReference"`     // Immutable, informational only
	PartyName             string          `json:"partyName"`         // Empty string = unset
	ExternalReference     string          `json:"externalReference"` // Reference into the bookkeeping system
	AddedToExternalSystem bool            `json:"addedToExternalSystem"`
	Hold                  bool            `json:"hold"`
	SelfTransfer          bool            `json:"selfTransfer"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// IsCompleted reports the derived Completed state: entered in the external
// system with a reference and a party name, and not flagged hold or
// self-transfer. The formula is an iff; there is no stored completed bit.
func (t Transaction) IsCompleted() bool {
	return t.AddedToExternalSystem &&
		strings.TrimSpace(t.ExternalReference) != "" &&
		strings.TrimSpace(t.PartyName) != "" &&
		!t.Hold &&
		!t.SelfTransfer
}

// IsHold reports the derived Hold state.
func (t Transaction) IsHold() bool { return t.Hold }

// IsSelfTransfer reports the derived SelfTransfer state.
func (t Transaction) IsSelfTransfer() bool { return t.SelfTransfer }

// IsPending is the catch-all: not completed, not held, not a self-transfer.
func (t Transaction) IsPending() bool {
	return !t.IsCompleted() && !t.Hold && !t.SelfTransfer
}

// Status collapses the derived flags into a single display label. Hold and
// SelfTransfer are independent booleans with no enforced exclusivity; when
// both are set, hold wins for display.
func (t Transaction) Status() ReconStatus {
	switch {
	case t.Hold:
		return StatusHold
	case t.SelfTransfer:
		return StatusSelfTransfer
	case t.IsCompleted():
		return StatusCompleted
	default:
		return StatusPending
	}
}

// ReferenceConflict summarizes the transaction already holding an external
// reference, so the caller can show the user what it collided with.
type ReferenceConflict struct {
	TransactionID string          `json:"transactionID"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	PartyName     string          `json:"partyName"`
}

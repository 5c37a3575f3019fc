package dto

import (
	"time"

	"github.com/saralbooks/bank_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IngestDateLayout is the calendar-date format accepted from the
// ingestion source.
const IngestDateLayout = "2006-01-02"

// IngestRecord is one raw transaction candidate from the ingestion source.
// TransactionID and BankReference are optional; the core assigns an id and
// the internal bookkeeping fields on first sight.
type IngestRecord struct {
	TransactionID string          `json:"transactionID"`
	Date          string          `json:"date" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Kind          string          `json:"kind" binding:"required,txnkind"`
	Narration     string          `json:"narration" binding:"required"`
	BankReference string          `json:"bankReference"`
}

// IngestBatchRequest is the payload of POST /transactions/import.
type IngestBatchRequest struct {
	Records []IngestRecord `json:"records" binding:"required,min=1,dive"`
}

// ConfirmTransactionRequest confirms a transaction into the external system.
type ConfirmTransactionRequest struct {
	ExternalReference string `json:"externalReference" binding:"required"`
}

// HoldRequest toggles the hold flag.
type HoldRequest struct {
	Hold *bool `json:"hold" binding:"required"`
}

// SelfTransferRequest toggles the self-transfer flag.
type SelfTransferRequest struct {
	SelfTransfer *bool `json:"selfTransfer" binding:"required"`
}

// UpdateTransactionRequest edits the user-mutable fields. Nil means
// "leave unchanged". DebounceReference buffers the reference write behind
// a quiet period instead of persisting immediately.
type UpdateTransactionRequest struct {
	PartyName         *string `json:"partyName"`
	ExternalReference *string `json:"externalReference"`
	DebounceReference bool    `json:"debounceReference"`
}

// EditSessionRequest opens or closes an interactive edit session for a
// transaction. While any session is open, background refreshes are queued.
type EditSessionRequest struct {
	Open *bool `json:"open" binding:"required"`
}

// TransactionResponse is the presentation shape of a transaction: stored
// fields plus the four derived-state flags and the collapsed status label.
type TransactionResponse struct {
	TransactionID         string          `json:"transactionID"`
	Date                  string          `json:"date"`
	Amount                decimal.Decimal `json:"amount"`
	Kind                  string          `json:"kind"`
	Narration             string          `json:"narration"`
	BankReference         string          `json:"bankReference,omitempty"`
	PartyName             string          `json:"partyName"`
	ExternalReference     string          `json:"externalReference"`
	AddedToExternalSystem bool            `json:"addedToExternalSystem"`
	Hold                  bool            `json:"hold"`
	SelfTransfer          bool            `json:"selfTransfer"`
	Status                string          `json:"status"`
	Completed             bool            `json:"completed"`
	Pending               bool            `json:"pending"`
	OnHold                bool            `json:"onHold"`
	IsSelfTransfer        bool            `json:"isSelfTransfer"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

// ToTransactionResponse maps a domain transaction to its response shape.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:         t.TransactionID,
		Date:                  t.Date.Format(IngestDateLayout),
		Amount:                t.Amount,
		Kind:                  string(t.Kind),
		Narration:             t.Narration,
		BankReference:         t.BankReference,
		PartyName:             t.PartyName,
		ExternalReference:     t.ExternalReference,
		AddedToExternalSystem: t.AddedToExternalSystem,
		Hold:                  t.Hold,
		SelfTransfer:          t.SelfTransfer,
		Status:                string(t.Status()),
		Completed:             t.IsCompleted(),
		Pending:               t.IsPending(),
		OnHold:                t.IsHold(),
		IsSelfTransfer:        t.IsSelfTransfer(),
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}
}

// ToTransactionResponses maps a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, ToTransactionResponse(&txns[i]))
	}
	return out
}

// ReferenceConflictResponse is the 409 payload of the duplicate-reference
// guard.
type ReferenceConflictResponse struct {
	Error    string                   `json:"error"`
	Conflict domain.ReferenceConflict `json:"conflict"`
}

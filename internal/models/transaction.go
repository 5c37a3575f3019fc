package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind mirrors domain.TransactionKind for DB storage.
type TransactionKind string

// Transaction is the database representation of a bank-ledger line.
// txn_date, narration and bank_reference are written once at ingestion and
// never appear in any UPDATE statement.
type Transaction struct {
	TransactionID         string          `db:"transaction_id"`
	Date                  time.Time       `db:"txn_date"`
	Amount                decimal.Decimal `db:"amount"`
	Kind                  TransactionKind `db:"kind"`
	Narration             string          `db:"narration"`
	BankReference         string          `db:"bank_reference"`
	PartyName             string          `db:"party_name"`
	ExternalReference     string          `db:"external_reference"`
	AddedToExternalSystem bool            `db:"added_to_external_system"`
	Hold                  bool            `db:"hold"`
	SelfTransfer          bool            `db:"self_transfer"`
	CreatedAt             time.Time       `db:"created_at"`
	UpdatedAt             time.Time       `db:"updated_at"`
}

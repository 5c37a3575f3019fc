package dto

import "github.com/saralbooks/bank_recon_app/internal/core/domain"

// SuggestionsResponse carries the ranked name suggestions for one
// transaction. Suggestions may be empty when every lookup path came up
// short; that is a normal outcome, not an error.
type SuggestionsResponse struct {
	TransactionID string              `json:"transactionID"`
	Suggestions   []domain.Suggestion `json:"suggestions"`
}

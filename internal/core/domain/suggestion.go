package domain

// SuggestionSource identifies which part of the pipeline produced a
// suggestion. Directory matches outrank learned mappings, which outrank
// raw pattern candidates.
type SuggestionSource string

const (
	SourceDirectory SuggestionSource = "directory"
	SourceMapping   SuggestionSource = "mapping"
	SourcePattern   SuggestionSource = "pattern"
)

// Suggestion is one ranked counterparty-name candidate for a transaction.
type Suggestion struct {
	Name   string           `json:"name"`
	Source SuggestionSource `json:"source"`
	Score  float64          `json:"score"`
}

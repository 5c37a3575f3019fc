package narration

import "strings"

// Word-window bounds for pattern derivation during learning. Learning casts
// a wider net than suggestion-time extraction: single tokens up to six-word
// phrases, plus leading and trailing slices of the narration.
const (
	learnMinWindow = 1
	learnMaxWindow = 6
	edgeMinWindow  = 2
	edgeMaxWindow  = 4
)

// LearningPatterns derives the candidate patterns to store against a
// confirmed party name. A derived pattern is only kept when it shares at
// least one significant token with the confirmed name; anything else is
// narration noise that would poison the mapping store.
func LearningPatterns(narrationText, confirmedName string) []string {
	nameTokens := tokenSet(SignificantTokens(confirmedName))
	if len(nameTokens) == 0 {
		return nil
	}

	var out []string
	seen := map[string]struct{}{}
	add := func(cands ...string) {
		for _, cand := range cands {
			cand = Normalize(cand)
			if !Plausible(cand) {
				continue
			}
			if !sharesSignificantToken(cand, nameTokens) {
				continue
			}
			if _, dup := seen[cand]; dup {
				continue
			}
			seen[cand] = struct{}{}
			out = append(out, cand)
		}
	}

	add(ExtractTransferTemplate(narrationText)...)
	add(ExtractColonSegment(narrationText)...)
	add(tokenWindows(narrationText, learnMinWindow, learnMaxWindow)...)
	add(ExtractCleanedDescription(narrationText)...)
	add(edgeWindows(narrationText)...)

	return out
}

func sharesSignificantToken(cand string, nameTokens map[string]struct{}) bool {
	for _, t := range SignificantTokens(cand) {
		if _, ok := nameTokens[t]; ok {
			return true
		}
	}
	return false
}

// edgeWindows returns the first-k and last-k word slices of the cleaned
// narration for k in [edgeMinWindow, edgeMaxWindow]. Counterparty names
// tend to sit at one end of the narration.
func edgeWindows(narrationText string) []string {
	var tokens []string
	for _, t := range Tokenize(narrationText) {
		if usableToken(t) {
			tokens = append(tokens, t)
		}
	}
	var out []string
	for k := edgeMinWindow; k <= edgeMaxWindow; k++ {
		if k > len(tokens) {
			break
		}
		out = append(out,
			strings.Join(tokens[:k], " "),
			strings.Join(tokens[len(tokens)-k:], " "),
		)
	}
	return out
}

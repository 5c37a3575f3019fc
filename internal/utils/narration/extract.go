package narration

import (
	"regexp"
	"strings"
)

// Candidate plausibility bounds, measured on the normalized form.
const (
	minCandidateLen = 4
	maxCandidateLen = 100
)

// delimiterDenylist holds bank and location tokens that show up between
// colon delimiters in statement narrations but never name a counterparty.
var delimiterDenylist = map[string]struct{}{
	"sbi": {}, "sbin": {}, "hdfc": {}, "icici": {}, "axis": {},
	"kotak": {}, "yes bank": {}, "idbi": {}, "pnb": {}, "canara": {},
	"bob": {}, "boi": {}, "union bank": {}, "indusind": {}, "federal": {},
	"mumbai": {}, "delhi": {}, "new delhi": {}, "hyderabad": {},
	"bangalore": {}, "bengaluru": {}, "chennai": {}, "kolkata": {},
	"pune": {}, "ahmedabad": {}, "visa": {}, "rupay": {}, "atm": {},
	"pos": {}, "branch": {}, "internet banking": {}, "mobile banking": {},
}

// letterRE guards against candidates that are all punctuation or digits.
var letterRE = regexp.MustCompile(`[a-z]`)

// Plausible reports whether a string could be a counterparty name: the
// normalized form is 4-100 characters and contains at least one letter.
func Plausible(s string) bool {
	n := Normalize(s)
	if len(n) < minCandidateLen || len(n) > maxCandidateLen {
		return false
	}
	return letterRE.MatchString(n)
}

// ExtractSteps is the ordered candidate-extraction chain. Each step is a
// pure function from a raw narration to zero or more normalized
// candidates, ordered most-specific first. Callers try the steps in order
// and short-circuit as soon as a candidate serves their purpose.
var ExtractSteps = []func(string) []string{
	ExtractColonSegment,
	ExtractTransferTemplate,
	ExtractTokenWindows,
	ExtractCleanedDescription,
}

// ExtractColonSegment returns the text enclosed between the first two
// colons of the narration, unless it is a known bank or location marker.
func ExtractColonSegment(narrationText string) []string {
	parts := strings.Split(narrationText, ":")
	if len(parts) < 3 {
		return nil
	}
	cand := Normalize(parts[1])
	if !Plausible(cand) {
		return nil
	}
	if _, denied := delimiterDenylist[cand]; denied {
		return nil
	}
	// Segments made up entirely of denylisted tokens or reference noise
	// (IFSC codes, digit runs) are routing markers, not names.
	hasNameToken := false
	for _, t := range Tokenize(cand) {
		if _, denied := delimiterDenylist[t]; denied {
			continue
		}
		if usableToken(t) {
			hasNameToken = true
			break
		}
	}
	if !hasNameToken {
		return nil
	}
	return []string{cand}
}

// nameSegment is the middle portion of a transfer narration: letters with
// embedded spaces, dots, ampersands and apostrophes.
const nameSegment = `([A-Za-z][A-Za-z .&']+?)`

// transferTemplates match the common Indian transfer narration shapes:
// a mode keyword, a code, a name segment, then another code or number.
// Tried in order; the first capture wins.
var transferTemplates = []*regexp.Regexp{
	// NEFT CR-SBIN0002776-MERCURE MEDI SURGE-SBINN52025110406690875
	regexp.MustCompile(`(?i)^(?:NEFT|RTGS|IMPS)[ /-]*(?:CR|DR)?[ /-]+[A-Z]{4}0[A-Z0-9]{6}[ /-]+` + nameSegment + `[ /-]+[A-Z]*\d[A-Z0-9]{4,}`),
	// NEFT 000123456789 SOME TRADER LLP REF55
	regexp.MustCompile(`(?i)^(?:NEFT|RTGS|IMPS)[ /-]*(?:CR|DR)?[ /-]+\d{6,}[ /-]+` + nameSegment + `(?:[ /-]+[A-Z]*\d[A-Z0-9]*)?$`),
	// UPI/CR/513398765432/RAVI KIRANA STORES/okhdfcbank
	regexp.MustCompile(`(?i)^UPI[ /-]+(?:CR|DR)[ /-]*\d+[ /-]+` + nameSegment + `[ /-]+[A-Za-z0-9@.]+$`),
	// UPI-513398765432-RAVI KIRANA STORES-okhdfcbank
	regexp.MustCompile(`(?i)^UPI[ /-]+\d+[ /-]+` + nameSegment + `[ /-]+[A-Za-z0-9@.]+$`),
	// FT-IB4412345678-ACME DISTRIBUTORS
	regexp.MustCompile(`(?i)^FT[ /-]+[A-Z0-9]{6,}[ /-]+` + nameSegment + `(?:[ /-]+[A-Z]*\d[A-Z0-9]*)?$`),
	// CHQ NO 004412 GUPTA HARDWARE
	regexp.MustCompile(`(?i)^CHQ(?:[ /-]*NO)?[.: /-]*\d+[ /-]+` + nameSegment + `$`),
}

// ExtractTransferTemplate matches the narration against the fixed set of
// transfer-code templates and returns the captured name segment.
func ExtractTransferTemplate(narrationText string) []string {
	text := strings.TrimSpace(narrationText)
	for _, re := range transferTemplates {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		cand := Normalize(m[1])
		if Plausible(cand) {
			return []string{cand}
		}
	}
	return nil
}

// ExtractTokenWindows drops reference-noise tokens and returns every
// contiguous window of 2-4 surviving tokens, longest windows first.
func ExtractTokenWindows(narrationText string) []string {
	return tokenWindows(narrationText, 2, 4)
}

func tokenWindows(narrationText string, minWin, maxWin int) []string {
	var tokens []string
	for _, t := range Tokenize(narrationText) {
		if usableToken(t) {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) < minWin {
		return nil
	}
	var out []string
	seen := map[string]struct{}{}
	for size := maxWin; size >= minWin; size-- {
		if size > len(tokens) {
			continue
		}
		for start := 0; start+size <= len(tokens); start++ {
			cand := strings.Join(tokens[start:start+size], " ")
			if !Plausible(cand) {
				continue
			}
			if _, dup := seen[cand]; dup {
				continue
			}
			seen[cand] = struct{}{}
			out = append(out, cand)
		}
	}
	return out
}

// boilerplateREs strip the markers banks append around the actual
// counterparty text.
var boilerplateREs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:ref\s*no|txn\s*id|utr|chq\s*no)\b[.: ]*[a-z0-9]*`),
	regexp.MustCompile(`\S*@\S+`),      // UPI handles
	regexp.MustCompile(`[xX*]{3,}\d*`), // masked account filler
	regexp.MustCompile(`\d{6,}`),       // long digit runs
}

// ExtractCleanedDescription strips known boilerplate and returns whatever
// remains, if anything meaningful does.
func ExtractCleanedDescription(narrationText string) []string {
	cleaned := narrationText
	for _, re := range boilerplateREs {
		cleaned = re.ReplaceAllString(cleaned, " ")
	}
	cleaned = Normalize(separatorRE.ReplaceAllString(cleaned, " "))
	if len(cleaned) <= 5 || !Plausible(cleaned) {
		return nil
	}
	return []string{cleaned}
}

// FirstCandidate runs the extraction chain and returns the first plausible
// candidate, or "" when the narration yields nothing usable.
func FirstCandidate(narrationText string) string {
	for _, step := range ExtractSteps {
		if cands := step(narrationText); len(cands) > 0 {
			return cands[0]
		}
	}
	return ""
}

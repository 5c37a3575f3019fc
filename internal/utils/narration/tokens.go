package narration

import (
	"regexp"
	"strings"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// Normalize trims, lower-cases and collapses internal whitespace.
// Stored mapping patterns and every comparison in this package operate on
// normalized text.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespaceRE.ReplaceAllString(s, " ")
}

// separatorRE matches the characters bank narrations use between segments:
// whitespace, hyphens, colons and slashes.
var separatorRE = regexp.MustCompile(`[\s:\-/]+`)

// Tokenize splits a narration into lower-cased tokens on whitespace,
// hyphens, colons and slashes.
func Tokenize(s string) []string {
	parts := separatorRE.Split(strings.ToLower(strings.TrimSpace(s)), -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// significantTokenLen is the minimum length for a token to count as a
// significant word. Shorter tokens ("sri", "pvt", "ltd", "of") are too
// generic to carry matching weight.
const significantTokenLen = 4

// SignificantTokens returns the tokens of s that are long enough to carry
// matching weight.
func SignificantTokens(s string) []string {
	var out []string
	for _, t := range Tokenize(s) {
		if len(t) >= significantTokenLen {
			out = append(out, t)
		}
	}
	return out
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

var pureNumberRE = regexp.MustCompile(`^\d+$`)

// shortCodeRE matches bank shorthand like "cr", "dr", "a12" or "tx3345":
// up to two letters optionally followed by digits.
var shortCodeRE = regexp.MustCompile(`^[a-z]{1,2}\d*$`)

var longDigitRunRE = regexp.MustCompile(`\d{6,}`)

// usableToken reports whether a token can be part of a name phrase.
// Pure numbers, short codes and tokens carrying long digit runs are
// reference noise, not names.
func usableToken(t string) bool {
	if pureNumberRE.MatchString(t) {
		return false
	}
	if shortCodeRE.MatchString(t) {
		return false
	}
	if longDigitRunRE.MatchString(t) {
		return false
	}
	return true
}

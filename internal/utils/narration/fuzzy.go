package narration

import "strings"

// Fuzzy acceptance thresholds. The double gate suppresses false positives
// from short generic words: a lone shared token is only good enough when
// the two strings are of comparable size.
const (
	minOverlapRatio    = 0.5
	minSharedWords     = 2
	minShorterCoverage = 0.75
	minLengthRatio     = 0.5
)

// MatchesPattern reports whether a narration candidate and a stored
// mapping pattern plausibly name the same party. Both sides are
// normalized before comparison. Exact equality is left to the caller;
// this is the fuzzy gate.
func MatchesPattern(candidate, pattern string) bool {
	c := Normalize(candidate)
	p := Normalize(pattern)
	if c == "" || p == "" {
		return false
	}
	if c == p {
		return true
	}

	contained := strings.Contains(c, p) || strings.Contains(p, c)

	cSig := SignificantTokens(c)
	pSig := SignificantTokens(p)
	pSet := tokenSet(pSig)
	shared := 0
	for _, t := range cSig {
		if _, ok := pSet[t]; ok {
			shared++
		}
	}
	if shared == 0 && !contained {
		return false
	}

	// Gate one: at least half the shorter side's significant words are
	// shared, and there are at least two of them.
	minSig := len(cSig)
	if len(pSig) < minSig {
		minSig = len(pSig)
	}
	if minSig > 0 {
		ratio := float64(shared) / float64(minSig)
		if ratio >= minOverlapRatio && shared >= minSharedWords {
			return true
		}
	}

	// Gate two: the shared words cover at least 75% of the shorter side's
	// word count AND both strings are of comparable character length.
	cWords := len(strings.Fields(c))
	pWords := len(strings.Fields(p))
	shorterWords := cWords
	if pWords < shorterWords {
		shorterWords = pWords
	}
	shorterLen, longerLen := len(c), len(p)
	if shorterLen > longerLen {
		shorterLen, longerLen = longerLen, shorterLen
	}
	lengthRatio := float64(shorterLen) / float64(longerLen)
	if shorterWords > 0 &&
		float64(shared) >= minShorterCoverage*float64(shorterWords) &&
		lengthRatio >= minLengthRatio {
		return true
	}

	return false
}

package search

import "github.com/hbollon/go-edlib"

// PartialRatio computes a fuzzy partial-ratio similarity between two strings
// on a 0-100 scale: the shorter string is aligned against every
// equal-length window of the longer one and the best Levenshtein-derived
// ratio wins. Comparison is done on runes, so multi-byte input is safe.
func PartialRatio(a, b string) float64 {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}

	shorter, longer := []rune(a), []rune(b)
	if len(longer) < len(shorter) {
		shorter, longer = longer, shorter
	}

	var best float64
	for i := 0; i+len(shorter) <= len(longer); i++ {
		r := levenshteinRatio(string(shorter), string(longer[i:i+len(shorter)]))
		if r > best {
			best = r
		}
		if best == 100 {
			break
		}
	}
	return best
}

// levenshteinRatio converts the Levenshtein distance between two strings into
// a 0-100 similarity ratio against the longer of the two.
func levenshteinRatio(a, b string) float64 {
	if a == b {
		return 100
	}

	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 100
	}

	distance := edlib.LevenshteinDistance(a, b)
	return (1 - float64(distance)/float64(maxLen)) * 100
}

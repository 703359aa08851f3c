package search

import (
	"regexp"
	"strings"
)

// nonAlphanumeric matches runs of characters outside [a-z0-9] in lowercased text.
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeText produces the canonical form of a string used for exact and
// prefix comparisons: lowercase, with every run of non-alphanumeric
// characters collapsed to a single space, trimmed at both ends.
//
// The function is pure and idempotent: NormalizeText(NormalizeText(s)) ==
// NormalizeText(s) for every s. Empty input yields the empty string.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

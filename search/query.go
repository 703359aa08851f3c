package search

import (
	"regexp"
	"strings"
)

var (
	// quotedPhrase matches double-quoted spans; the phrase is captured
	// without the quotes, case preserved.
	quotedPhrase = regexp.MustCompile(`"([^"]+)"`)

	// excludedTerm matches a minus sign immediately followed by word
	// characters; only the word part is captured.
	excludedTerm = regexp.MustCompile(`-(\w+)`)
)

// Query is the parsed form of a raw search string.
type Query struct {
	// Original is the raw query string as entered.
	Original string
	// Phrases holds quoted phrases in order of appearance, case preserved.
	Phrases []string
	// ExcludedTerms holds terms prefixed with a minus sign in the raw query.
	ExcludedTerms []string
	// Terms holds the remaining free-form tokens, with any literal "OR"
	// token removed.
	Terms []string
	// HasOr is true when the literal token "OR" appeared, case-insensitively
	// and padded by spaces, after phrase and exclusion spans were removed.
	HasOr bool

	// termPatterns are precompiled word-boundary patterns, one per Term.
	termPatterns []*regexp.Regexp
}

// ParseQuery tokenizes a raw search string. Each extraction stage removes its
// matched spans from the working text before the next stage runs, so no term
// can land in more than one category. An empty query is valid and yields no
// phrases and no terms.
func ParseQuery(raw string) *Query {
	q := &Query{Original: raw}

	working := raw

	// 1. Quoted phrases, then strip their spans.
	for _, m := range quotedPhrase.FindAllStringSubmatch(working, -1) {
		q.Phrases = append(q.Phrases, m[1])
	}
	working = quotedPhrase.ReplaceAllString(working, " ")

	// 2. Excluded terms, then strip their spans.
	for _, m := range excludedTerm.FindAllStringSubmatch(working, -1) {
		q.ExcludedTerms = append(q.ExcludedTerms, m[1])
	}
	working = excludedTerm.ReplaceAllString(working, " ")

	// 3. OR marker in whatever remains.
	q.HasOr = strings.Contains(" "+strings.ToLower(working)+" ", " or ")

	// 4. Free terms; the OR marker itself is not a term.
	for _, token := range strings.Fields(working) {
		if strings.EqualFold(token, "or") {
			continue
		}
		q.Terms = append(q.Terms, token)
		q.termPatterns = append(q.termPatterns,
			regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(token)+`\b`))
	}

	return q
}

// IsEmpty reports whether the query carries no phrases and no free terms.
func (q *Query) IsEmpty() bool {
	return len(q.Phrases) == 0 && len(q.Terms) == 0
}

package search

import (
	"strings"

	"github.com/poiesic/bomvault/core"
)

// Names of the weighted application fields, as reported in Score.MatchField.
const (
	FieldName         = "name"
	FieldVersion      = "version"
	FieldPlatform     = "platform"
	FieldBinaryType   = "binary_type"
	FieldManufacturer = "manufacturer"
	FieldSupplier     = "supplier"
)

// Field weights. Fixed policy, not configuration.
const (
	WeightName         = 10.0
	WeightVersion      = 5.0
	WeightPlatform     = 3.0
	WeightBinaryType   = 3.0
	WeightManufacturer = 2.0
	WeightSupplier     = 2.0
)

// Per-signal tier scores. Fixed policy, not configuration.
const (
	// ScorePhraseMatch is added per quoted phrase found in a field.
	ScorePhraseMatch = 100.0
	// ScoreExactMatch is added when a normalized field equals the normalized full query.
	ScoreExactMatch = 95.0
	// ScorePrefixMatch is added when a field starts with the full query.
	ScorePrefixMatch = 85.0
	// ScoreWordBoundary is added when a free term matches at word boundaries.
	ScoreWordBoundary = 70.0
	// ScoreTermPrefix is added when a field starts with a free term.
	ScoreTermPrefix = 60.0
	// ScoreTermSubstring is added when a field contains a free term.
	ScoreTermSubstring = 50.0
	// ScoreFuzzyMax scales the fuzzy similarity contribution.
	ScoreFuzzyMax = 40.0
	// FuzzyThreshold is the minimum partial-ratio similarity (0-100 scale)
	// for a fuzzy hit to contribute at all.
	FuzzyThreshold = 70.0
)

// Multi-term boost multipliers. The boost is a bonus layer, never a penalty:
// a total of zero stays zero.
const (
	// BoostAllTerms multiplies the total when every free term appears
	// somewhere in the record.
	BoostAllTerms = 1.5
	// BoostPartialFactor scales the partial boost: 1 + matched/total * factor.
	BoostPartialFactor = 0.3
)

// Score is the inspectable per-signal breakdown for one scored record. The
// first six buckets accumulate across all fields; FieldWeight holds the
// weight of the single best-matching field. TotalScore is the sum of all six
// buckets, after the multi-term boost.
type Score struct {
	ExactMatch   float64
	StartsWith   float64
	WordBoundary float64
	PartialMatch float64
	FuzzyMatch   float64
	FieldWeight  float64
	TotalScore   float64
	// MatchField names the field that produced the highest single-field
	// score, or is empty when no field scored.
	MatchField string
}

// scoredField is one weighted application field presented to the scorer.
type scoredField struct {
	name   string
	value  string
	weight float64
}

// applicationFields returns the weighted fields of an application in scoring
// order. Fields that are empty or hold the literal value "none" are skipped
// entirely.
func applicationFields(app *core.Application) []scoredField {
	all := []scoredField{
		{FieldName, app.Name, WeightName},
		{FieldVersion, app.Version, WeightVersion},
		{FieldPlatform, app.Platform, WeightPlatform},
		{FieldBinaryType, app.BinaryType, WeightBinaryType},
		{FieldManufacturer, app.Manufacturer, WeightManufacturer},
		{FieldSupplier, app.Supplier, WeightSupplier},
	}

	fields := make([]scoredField, 0, len(all))
	for _, f := range all {
		if f.value == "" || strings.EqualFold(f.value, "none") {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// ScoreApplication scores one application against a parsed query.
//
// Fields are processed in weight order. An excluded term found anywhere
// vetoes the whole record: the result is a zero Score, regardless of any
// other signal. Otherwise each field accumulates phrase, full-query, per-term
// and fuzzy signals into the global buckets, and the field with the highest
// weighted score is recorded as MatchField with its weight in FieldWeight.
func ScoreApplication(app *core.Application, q *Query) *Score {
	sc := &Score{}
	if app == nil || q == nil {
		return sc
	}

	originalLower := strings.ToLower(q.Original)
	normalizedQuery := NormalizeText(q.Original)

	var bestFieldScore float64
	for _, f := range applicationFields(app) {
		valueLower := strings.ToLower(f.value)

		// An excluded-term hit anywhere vetoes the whole match.
		for _, excluded := range q.ExcludedTerms {
			if strings.Contains(valueLower, strings.ToLower(excluded)) {
				return &Score{}
			}
		}

		var fieldScore float64

		// Quoted phrases, additive per match.
		for _, phrase := range q.Phrases {
			if strings.Contains(valueLower, strings.ToLower(phrase)) {
				fieldScore += ScorePhraseMatch * f.weight
				sc.ExactMatch += ScorePhraseMatch
			}
		}

		// Full query: exact normalized equality, else raw prefix.
		if normalizedQuery != "" && NormalizeText(f.value) == normalizedQuery {
			fieldScore += ScoreExactMatch * f.weight
			sc.ExactMatch += ScoreExactMatch
		} else if originalLower != "" && strings.HasPrefix(valueLower, originalLower) {
			fieldScore += ScorePrefixMatch * f.weight
			sc.StartsWith += ScorePrefixMatch
		}

		// Free terms: one tier per term, first match wins.
		for i, term := range q.Terms {
			termLower := strings.ToLower(term)
			switch {
			case q.termPatterns[i].MatchString(f.value):
				fieldScore += ScoreWordBoundary * f.weight
				sc.WordBoundary += ScoreWordBoundary
			case strings.HasPrefix(valueLower, termLower):
				fieldScore += ScoreTermPrefix * f.weight
				sc.StartsWith += ScoreTermPrefix
			case strings.Contains(valueLower, termLower):
				fieldScore += ScoreTermSubstring * f.weight
				sc.PartialMatch += ScoreTermSubstring
			default:
				if similarity := PartialRatio(termLower, valueLower); similarity > FuzzyThreshold {
					fieldScore += similarity / 100 * ScoreFuzzyMax * f.weight
					sc.FuzzyMatch += similarity / 100 * ScoreFuzzyMax
				}
			}
		}

		if fieldScore > bestFieldScore {
			bestFieldScore = fieldScore
			sc.MatchField = f.name
			sc.FieldWeight = f.weight
		}
	}

	total := sc.ExactMatch + sc.StartsWith + sc.WordBoundary +
		sc.PartialMatch + sc.FuzzyMatch + sc.FieldWeight

	sc.TotalScore = applyTermBoost(total, app, q)
	return sc
}

// applyTermBoost applies the multi-term boost: with more than one free term,
// a record containing all of them (as case-insensitive substrings of any
// weighted field) is boosted 1.5x; a record containing some of them gets a
// proportional bonus. A zero total stays zero.
func applyTermBoost(total float64, app *core.Application, q *Query) float64 {
	if total <= 0 || len(q.Terms) < 2 {
		return total
	}

	var blob strings.Builder
	for _, f := range applicationFields(app) {
		blob.WriteString(strings.ToLower(f.value))
		blob.WriteByte(' ')
	}
	haystack := blob.String()

	matched := 0
	for _, term := range q.Terms {
		if strings.Contains(haystack, strings.ToLower(term)) {
			matched++
		}
	}

	switch {
	case matched == len(q.Terms):
		return total * BoostAllTerms
	case matched > 0:
		return total * (1 + float64(matched)/float64(len(q.Terms))*BoostPartialFactor)
	default:
		return total
	}
}

package search

import (
	"testing"

	"github.com/poiesic/bomvault/core"
	"github.com/stretchr/testify/assert"
)

func TestScoreApplication_Tiers(t *testing.T) {
	t.Run("exact normalized match", func(t *testing.T) {
		app := &core.Application{Name: "Chrome"}
		sc := ScoreApplication(app, ParseQuery("chrome"))
		assert.Equal(t, ScoreExactMatch, sc.ExactMatch)
		assert.Equal(t, FieldName, sc.MatchField)
		assert.Equal(t, WeightName, sc.FieldWeight)
	})

	t.Run("full-query prefix when not exact", func(t *testing.T) {
		app := &core.Application{Name: "chrome"}
		sc := ScoreApplication(app, ParseQuery("chro"))
		assert.Zero(t, sc.ExactMatch)
		// full-query prefix plus the term-prefix tier for the single term
		assert.Equal(t, ScorePrefixMatch+ScoreTermPrefix, sc.StartsWith)
	})

	t.Run("exact and prefix are mutually exclusive", func(t *testing.T) {
		app := &core.Application{Name: "chrome"}
		sc := ScoreApplication(app, ParseQuery("chrome"))
		assert.Equal(t, ScoreExactMatch, sc.ExactMatch)
		assert.Zero(t, sc.StartsWith, "an exact field must not also collect the full-query prefix tier")
	})

	t.Run("word boundary", func(t *testing.T) {
		app := &core.Application{Name: "pdf viewer"}
		sc := ScoreApplication(app, ParseQuery("viewer"))
		assert.Equal(t, ScoreWordBoundary, sc.WordBoundary)
		assert.Equal(t, ScoreWordBoundary+WeightName, sc.TotalScore)
	})

	t.Run("substring", func(t *testing.T) {
		app := &core.Application{Name: "pdf viewer"}
		sc := ScoreApplication(app, ParseQuery("iew"))
		assert.Equal(t, ScoreTermSubstring, sc.PartialMatch)
		assert.Zero(t, sc.WordBoundary)
	})

	t.Run("fuzzy above threshold", func(t *testing.T) {
		app := &core.Application{Name: "firefox"}
		sc := ScoreApplication(app, ParseQuery("firefoxx"))
		assert.Equal(t, ScoreFuzzyMax, sc.FuzzyMatch)
	})

	t.Run("fuzzy below threshold contributes nothing", func(t *testing.T) {
		app := &core.Application{Name: "chrome"}
		sc := ScoreApplication(app, ParseQuery("chorme"))
		assert.Zero(t, sc.TotalScore)
	})

	t.Run("tier ordering holds per term", func(t *testing.T) {
		q := "viewer"
		exact := ScoreApplication(&core.Application{Name: "viewer"}, ParseQuery(q))
		boundary := ScoreApplication(&core.Application{Name: "pdf viewer"}, ParseQuery(q))
		substring := ScoreApplication(&core.Application{Name: "pdfviewer"}, ParseQuery(q))
		assert.Greater(t, exact.TotalScore, boundary.TotalScore)
		assert.Greater(t, boundary.TotalScore, substring.TotalScore)
	})
}

func TestScoreApplication_Phrases(t *testing.T) {
	t.Run("phrase hit", func(t *testing.T) {
		app := &core.Application{Name: "pdf viewer pro"}
		sc := ScoreApplication(app, ParseQuery(`"pdf viewer"`))
		assert.Equal(t, ScorePhraseMatch, sc.ExactMatch)
		assert.Equal(t, ScorePhraseMatch+WeightName, sc.TotalScore)
	})

	t.Run("phrase match is case-insensitive", func(t *testing.T) {
		app := &core.Application{Name: "PDF Viewer Pro"}
		sc := ScoreApplication(app, ParseQuery(`"pdf viewer"`))
		assert.Equal(t, ScorePhraseMatch, sc.ExactMatch)
	})

	t.Run("phrase must be contiguous", func(t *testing.T) {
		app := &core.Application{Name: "pdf pro viewer"}
		sc := ScoreApplication(app, ParseQuery(`"pdf viewer"`))
		assert.Zero(t, sc.ExactMatch)
	})
}

func TestScoreApplication_Exclusions(t *testing.T) {
	t.Run("excluded term vetoes the record", func(t *testing.T) {
		app := &core.Application{Name: "chrome updater"}
		sc := ScoreApplication(app, ParseQuery("chrome -updater"))
		assert.Zero(t, sc.TotalScore)
		assert.Empty(t, sc.MatchField)
	})

	t.Run("exclusion checks every field", func(t *testing.T) {
		app := &core.Application{Name: "chrome", Manufacturer: "updater corp"}
		sc := ScoreApplication(app, ParseQuery("chrome -updater"))
		assert.Zero(t, sc.TotalScore)
	})

	t.Run("absent excluded term leaves the score intact", func(t *testing.T) {
		app := &core.Application{Name: "chrome"}
		sc := ScoreApplication(app, ParseQuery("chrome -beta"))
		assert.Greater(t, sc.TotalScore, 0.0)
	})
}

func TestScoreApplication_Fields(t *testing.T) {
	t.Run("best field wins", func(t *testing.T) {
		app := &core.Application{Name: "installer", Manufacturer: "chrome"}
		sc := ScoreApplication(app, ParseQuery("chrome"))
		assert.Equal(t, FieldManufacturer, sc.MatchField)
		assert.Equal(t, WeightManufacturer, sc.FieldWeight)
	})

	t.Run("higher-weight field beats equal tier", func(t *testing.T) {
		app := &core.Application{Name: "chrome", Supplier: "chrome"}
		sc := ScoreApplication(app, ParseQuery("chrome"))
		assert.Equal(t, FieldName, sc.MatchField)
		assert.Equal(t, WeightName, sc.FieldWeight)
	})

	t.Run("literal none is skipped", func(t *testing.T) {
		app := &core.Application{Name: "app", Manufacturer: "None"}
		sc := ScoreApplication(app, ParseQuery("none"))
		assert.Zero(t, sc.TotalScore)
	})

	t.Run("empty fields are skipped", func(t *testing.T) {
		app := &core.Application{Name: "chrome"}
		sc := ScoreApplication(app, ParseQuery("chrome"))
		assert.Equal(t, FieldName, sc.MatchField)
	})
}

func TestScoreApplication_Boost(t *testing.T) {
	app := &core.Application{Name: "chrome", Manufacturer: "google"}

	t.Run("all terms present boosts 1.5x", func(t *testing.T) {
		sc := ScoreApplication(app, ParseQuery("chrome google"))
		// word boundary on both fields, name is the best field
		base := 2*ScoreWordBoundary + WeightName
		assert.InDelta(t, base*BoostAllTerms, sc.TotalScore, 0.001)
	})

	t.Run("partial match gets proportional boost", func(t *testing.T) {
		sc := ScoreApplication(app, ParseQuery("chrome zzqy"))
		base := ScoreWordBoundary + WeightName
		assert.InDelta(t, base*(1+0.5*BoostPartialFactor), sc.TotalScore, 0.001)
	})

	t.Run("single term gets no boost", func(t *testing.T) {
		sc := ScoreApplication(app, ParseQuery("chrome"))
		assert.InDelta(t, ScoreExactMatch+ScoreWordBoundary+WeightName, sc.TotalScore, 0.001)
	})

	t.Run("zero stays zero", func(t *testing.T) {
		sc := ScoreApplication(app, ParseQuery("zzqy wwxk"))
		assert.Zero(t, sc.TotalScore)
	})
}

func TestScoreApplication_NilInputs(t *testing.T) {
	assert.Zero(t, ScoreApplication(nil, ParseQuery("x")).TotalScore)
	assert.Zero(t, ScoreApplication(&core.Application{Name: "x"}, nil).TotalScore)
}

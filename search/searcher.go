package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/poiesic/bomvault/core"
	"github.com/poiesic/bomvault/storage"
)

// Result limits. Requests outside [1, MaxLimit] fall back to DefaultLimit.
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// MaxDisplayScore caps the Score reported on a Result. Boosted totals may
// exceed 100; ordering uses the unclamped total (still visible in the
// breakdown), and the clamp is applied after sorting so it never changes
// rank, only display.
const MaxDisplayScore = 100.0

// Result is one ranked search hit.
type Result struct {
	Application *core.Application
	// Score is the display score, clamped to MaxDisplayScore.
	Score float64
	// Breakdown carries the per-signal buckets and the unclamped total.
	Breakdown *Score
}

// Metadata describes how the query was parsed, for caller-side display.
type Metadata struct {
	OriginalQuery  string
	Phrases        []string
	ExcludedTerms  []string
	Terms          []string
	HasOr          bool
	CandidateCount int
	MatchCount     int
}

// Rank scores every candidate against the raw query and returns the matches
// sorted by descending total score, truncated to limit. The sort is stable:
// ties keep the candidates' original relative order. A nil or empty candidate
// set is not an error and yields an empty result list with metadata
// reflecting the parsed query.
func Rank(candidates []*core.Application, rawQuery string, limit int) ([]*Result, *Metadata) {
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	q := ParseQuery(rawQuery)
	meta := &Metadata{
		OriginalQuery:  q.Original,
		Phrases:        q.Phrases,
		ExcludedTerms:  q.ExcludedTerms,
		Terms:          q.Terms,
		HasOr:          q.HasOr,
		CandidateCount: len(candidates),
	}

	results := make([]*Result, 0, len(candidates))
	for _, app := range candidates {
		if app == nil {
			continue
		}
		sc := ScoreApplication(app, q)
		if sc.TotalScore > 0 {
			results = append(results, &Result{
				Application: app,
				Score:       sc.TotalScore,
				Breakdown:   sc,
			})
		}
	}
	meta.MatchCount = len(results)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Breakdown.TotalScore > results[j].Breakdown.TotalScore
	})

	if len(results) > limit {
		results = results[:limit]
	}

	// Clamp for display only; sorting above used the unclamped totals.
	for _, r := range results {
		if r.Score > MaxDisplayScore {
			r.Score = MaxDisplayScore
		}
	}

	return results, meta
}

// Searcher ranks one owner's applications fetched from the inventory store.
type Searcher struct {
	applicationRepository storage.ApplicationRepository
	logger                *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(applicationRepository storage.ApplicationRepository, opts ...Option) (*Searcher, error) {
	if applicationRepository == nil {
		return nil, ErrApplicationRepositoryRequired
	}

	s := &Searcher{
		applicationRepository: applicationRepository,
		logger:                slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search ranks the owner's applications against the raw query.
// Returns up to limit results, ranked by relevance score.
func (s *Searcher) Search(ctx context.Context, owner core.ID, rawQuery string, limit int) ([]*Result, *Metadata, error) {
	return s.SearchWithMonitor(ctx, owner, rawQuery, limit, nil)
}

// SearchWithMonitor ranks the owner's applications with monitoring.
// The monitor receives callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, owner core.ID, rawQuery string, limit int, monitor SearchMonitor) ([]*Result, *Metadata, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(rawQuery)

	candidates, err := s.applicationRepository.ListApplications(ctx, owner)
	if err != nil {
		s.logger.Error("error listing applications for search", "owner", owner, "err", err)
		return nil, nil, err
	}
	monitor.AfterCandidateFetch(candidates)

	results, meta := Rank(candidates, rawQuery, limit)

	monitor.Finish(results)
	return results, meta, nil
}

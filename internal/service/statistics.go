package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"crosswords-analytics/internal/cache"
	"crosswords-analytics/internal/constants"
	"crosswords-analytics/internal/domain"
	"crosswords-analytics/internal/stats"
	"crosswords-analytics/internal/table"
)

// SubmissionSource is the read contract the engine consumes from the platform
// database. Implemented by repository.SubmissionRepository; tests use fakes.
type SubmissionSource interface {
	ListByGrid(ctx context.Context, gridID int) ([]domain.Submission, error)
	ListAll(ctx context.Context) ([]domain.Submission, error)
	Count(ctx context.Context) (int, error)
}

type GridSource interface {
	Get(ctx context.Context, id int) (*domain.Grid, error)
	List(ctx context.Context) ([]domain.Grid, error)
	Count(ctx context.Context) (int, error)
	CountPublished(ctx context.Context) (int, error)
}

type UserSource interface {
	Count(ctx context.Context) (int, error)
}

// StatisticsService orchestrates one aggregation per call: resolve the grid,
// fetch raw rows, normalize, compute, and memoize the result. Results are pure
// functions of the dataset, so concurrent cache misses computing the same key
// are a performance cost, not a correctness problem.
type StatisticsService struct {
	subs   SubmissionSource
	grids  GridSource
	users  UserSource
	store  cache.Store
	ttl    time.Duration
	logger zerolog.Logger
}

func NewStatisticsService(
	subs SubmissionSource,
	grids GridSource,
	users UserSource,
	store cache.Store,
	ttl time.Duration,
	logger zerolog.Logger,
) *StatisticsService {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &StatisticsService{
		subs:   subs,
		grids:  grids,
		users:  users,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// GridInfo is one row of the grid listing.
type GridInfo struct {
	ID      int    `json:"id"`
	Version string `json:"version"`
}

// WordsStats summarizes how many words players found on a grid.
type WordsStats struct {
	AverageFound float64     `json:"averageFound"`
	MedianFound  float64     `json:"medianFound"`
	TotalWords   int         `json:"totalWords"`
	Distribution map[int]int `json:"distribution"`
}

// GridStatistics is the full derived statistics object for one grid. Scores
// and Timing are nil for a grid without submissions; CompletionRate is 0 in
// that case, distinguishing "no activity" from "not found".
type GridStatistics struct {
	GridID           int              `json:"gridId"`
	GridNumber       *int             `json:"gridNumber"`
	GridVersion      string           `json:"gridVersion"`
	TotalPlayers     int              `json:"totalPlayers"`
	TotalSubmissions int              `json:"totalSubmissions"`
	CompletionRate   float64          `json:"completionRate"`
	Scores           *stats.Summary   `json:"scores"`
	Timing           *stats.Summary   `json:"timing"`
	JokerUsage       stats.JokerUsage `json:"jokerUsage"`
	WordsStats       *WordsStats      `json:"wordsStats"`
	Message          string           `json:"message,omitempty"`
}

// TemporalStatistics wraps the temporal aggregation with grid identity.
type TemporalStatistics struct {
	GridID      int    `json:"gridId"`
	GridNumber  *int   `json:"gridNumber"`
	GridVersion string `json:"gridVersion"`
	stats.TemporalResult
}

// Grids lists every grid's id and version, uncached (a trivial query).
func (s *StatisticsService) Grids(ctx context.Context) ([]GridInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	grids, err := s.grids.List(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]GridInfo, len(grids))
	for i, g := range grids {
		infos[i] = GridInfo{ID: g.ID, Version: g.Version}
	}
	return infos, nil
}

// GridStatistics computes (or returns the cached) statistics object for one
// grid.
func (s *StatisticsService) GridStatistics(ctx context.Context, gridID int) (*GridStatistics, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	key := cache.Key("grid_stats", scope(gridID))
	return cached(ctx, s, key, func(ctx context.Context) (*GridStatistics, error) {
		t, grid, err := s.gridTable(ctx, gridID)
		if err != nil {
			return nil, err
		}
		return buildGridStatistics(grid, t), nil
	})
}

// Leaderboard returns the ranked top entries for one grid. limit is
// normalized before the cache key is built so equivalent queries share an
// entry.
func (s *StatisticsService) Leaderboard(ctx context.Context, gridID, limit int) ([]stats.LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	limit = normalizeLimit(limit)
	key := cache.Key("leaderboard", scope(gridID), cache.Param{Name: "limit", Value: limit})
	return cached(ctx, s, key, func(ctx context.Context) ([]stats.LeaderboardEntry, error) {
		t, _, err := s.gridTable(ctx, gridID)
		if err != nil {
			return nil, err
		}
		return stats.RankLeaderboard(t, limit), nil
	})
}

// ScoreDistribution returns the score histogram for one grid.
func (s *StatisticsService) ScoreDistribution(ctx context.Context, gridID, bins int) (*stats.Distribution, error) {
	return s.distribution(ctx, "score_distribution", gridID, bins,
		func(t *table.SubmissionTable) []float64 { return t.Scores() })
}

// CompletionTimeDistribution returns the completion-time histogram for one
// grid, in seconds.
func (s *StatisticsService) CompletionTimeDistribution(ctx context.Context, gridID, bins int) (*stats.Distribution, error) {
	return s.distribution(ctx, "time_distribution", gridID, bins,
		func(t *table.SubmissionTable) []float64 { return t.CompletionTimes() })
}

func (s *StatisticsService) distribution(
	ctx context.Context,
	computation string,
	gridID, bins int,
	column func(*table.SubmissionTable) []float64,
) (*stats.Distribution, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	bins = normalizeBins(bins)
	key := cache.Key(computation, scope(gridID), cache.Param{Name: "bins", Value: bins})
	return cached(ctx, s, key, func(ctx context.Context) (*stats.Distribution, error) {
		t, _, err := s.gridTable(ctx, gridID)
		if err != nil {
			return nil, err
		}
		d := stats.Histogram(column(t), bins)
		return &d, nil
	})
}

// TemporalStatistics computes the submission-time analysis for one grid.
func (s *StatisticsService) TemporalStatistics(ctx context.Context, gridID int) (*TemporalStatistics, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	key := cache.Key("temporal", scope(gridID))
	return cached(ctx, s, key, func(ctx context.Context) (*TemporalStatistics, error) {
		t, grid, err := s.gridTable(ctx, gridID)
		if err != nil {
			return nil, err
		}
		return &TemporalStatistics{
			GridID:         grid.ID,
			GridNumber:     domain.GridNumber(grid.Version),
			GridVersion:    grid.Version,
			TemporalResult: stats.Temporal(t.SubmittedAt()),
		}, nil
	})
}

// gridTable resolves the grid and loads its normalized submission table.
// A missing grid surfaces domain.ErrGridNotFound before anything is cached.
func (s *StatisticsService) gridTable(ctx context.Context, gridID int) (*table.SubmissionTable, *domain.Grid, error) {
	grid, err := s.grids.Get(ctx, gridID)
	if err != nil {
		return nil, nil, err
	}
	subs, err := s.subs.ListByGrid(ctx, gridID)
	if err != nil {
		return nil, nil, err
	}
	return table.New(subs), grid, nil
}

func buildGridStatistics(grid *domain.Grid, t *table.SubmissionTable) *GridStatistics {
	gs := &GridStatistics{
		GridID:      grid.ID,
		GridNumber:  domain.GridNumber(grid.Version),
		GridVersion: grid.Version,
		// One submission per user per grid, so players == submissions.
		TotalPlayers:     t.Len(),
		TotalSubmissions: t.Len(),
		CompletionRate:   stats.CompletionRate(t),
		Scores:           stats.Describe(t.Scores(), stats.ScorePercentiles),
		Timing:           stats.Describe(t.CompletionTimes(), stats.TimePercentiles),
		JokerUsage:       stats.AnalyzeJoker(t),
	}
	if t.Len() == 0 {
		gs.Message = "No submissions yet for this grid"
		return gs
	}
	gs.WordsStats = buildWordsStats(t)
	return gs
}

func buildWordsStats(t *table.SubmissionTable) *WordsStats {
	rows := t.Rows()
	found := make([]float64, len(rows))
	dist := make(map[int]int, len(rows))
	for i, r := range rows {
		found[i] = float64(r.WordsFound)
		dist[r.WordsFound]++
	}

	ws := &WordsStats{
		TotalWords:   rows[0].TotalWords,
		Distribution: dist,
	}
	if m := stats.Mean(found); m != nil {
		ws.AverageFound = *m
	}
	if q := stats.Quantile(found, 50); q != nil {
		ws.MedianFound = *q
	}
	return ws
}

// cached is the read-through memoization every computation goes through: a hit
// returns the stored value unchanged, a miss computes and writes. Errors are
// never cached.
func cached[T any](ctx context.Context, s *StatisticsService, key string, compute func(context.Context) (T, error)) (T, error) {
	var zero T
	if raw, ok := s.store.Get(ctx, key); ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			s.logger.Debug().Str("key", key).Msg("cache hit")
			return v, nil
		}
		s.logger.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	}

	v, err := compute(ctx)
	if err != nil {
		return zero, err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		// Derived entities always marshal; this guards future type changes.
		s.logger.Error().Err(err).Str("key", key).Msg("failed to encode result for cache")
		return v, nil
	}
	s.store.Set(ctx, key, raw, s.ttl)
	s.logger.Debug().Str("key", key).Msg("cache miss, stored computed result")
	return v, nil
}

func scope(gridID int) string {
	if gridID < 0 {
		return "global"
	}
	return strconv.Itoa(gridID)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return stats.DefaultLeaderboardLimit
	}
	if limit > stats.MaxLeaderboardLimit {
		return stats.MaxLeaderboardLimit
	}
	return limit
}

func normalizeBins(bins int) int {
	if bins < 1 || bins > stats.MaxBins {
		return stats.DefaultBins
	}
	return bins
}

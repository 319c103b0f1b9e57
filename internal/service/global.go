package service

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"crosswords-analytics/internal/cache"
	"crosswords-analytics/internal/constants"
	"crosswords-analytics/internal/domain"
	"crosswords-analytics/internal/stats"
	"crosswords-analytics/internal/table"
)

// GlobalStatistics aggregates platform-wide totals plus a per-grid breakdown
// over every published grid.
type GlobalStatistics struct {
	TotalUsers                int             `json:"totalUsers"`
	TotalGrids                int             `json:"totalGrids"`
	PublishedGrids            int             `json:"publishedGrids"`
	TotalSubmissions          int             `json:"totalSubmissions"`
	AverageSubmissionsPerGrid float64         `json:"averageSubmissionsPerGrid"`
	GridStats                 []GridBreakdown `json:"gridStats"`
}

// GridBreakdown is one published grid's slice of the global view. Grids
// without submissions report zero-valued metrics, which is valid data, not an
// error.
type GridBreakdown struct {
	GridID               int     `json:"gridId"`
	GridNumber           *int    `json:"gridNumber"`
	GridVersion          string  `json:"gridVersion"`
	TotalPlayers         int     `json:"totalPlayers"`
	CompletionRate       float64 `json:"completionRate"`
	JokerUsageRate       float64 `json:"jokerUsageRate"`
	TotalWords           int     `json:"totalWords"`
	AverageWordsFound    float64 `json:"averageWordsFound"`
	MedianCompletionTime int     `json:"medianCompletionTime"`
}

// GlobalStatistics computes the platform totals. The four counts are
// independent queries and run concurrently.
func (s *StatisticsService) GlobalStatistics(ctx context.Context) (*GlobalStatistics, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	key := cache.Key("global_stats", "global")
	return cached(ctx, s, key, func(ctx context.Context) (*GlobalStatistics, error) {
		gs := &GlobalStatistics{}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			gs.TotalUsers, err = s.users.Count(gctx)
			return err
		})
		g.Go(func() (err error) {
			gs.TotalGrids, err = s.grids.Count(gctx)
			return err
		})
		g.Go(func() (err error) {
			gs.PublishedGrids, err = s.grids.CountPublished(gctx)
			return err
		})
		g.Go(func() (err error) {
			gs.TotalSubmissions, err = s.subs.Count(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		// A platform with grids but no submissions still has a defined
		// average of 0; only a zero grid count makes the ratio unusable.
		if gs.PublishedGrids > 0 {
			gs.AverageSubmissionsPerGrid = float64(gs.TotalSubmissions) / float64(gs.PublishedGrids)
		}

		breakdown, err := s.gridBreakdown(ctx)
		if err != nil {
			return nil, err
		}
		gs.GridStats = breakdown
		return gs, nil
	})
}

func (s *StatisticsService) gridBreakdown(ctx context.Context) ([]GridBreakdown, error) {
	grids, err := s.grids.List(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := s.subs.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byGrid := make(map[int][]domain.Submission)
	for _, sub := range subs {
		byGrid[sub.GridID] = append(byGrid[sub.GridID], sub)
	}

	breakdown := make([]GridBreakdown, 0, len(grids))
	for _, grid := range grids {
		if !grid.Published() {
			continue
		}
		t := table.New(byGrid[grid.ID])

		b := GridBreakdown{
			GridID:         grid.ID,
			GridNumber:     domain.GridNumber(grid.Version),
			GridVersion:    grid.Version,
			TotalPlayers:   t.Len(),
			CompletionRate: stats.CompletionRate(t),
		}
		if t.Len() > 0 {
			rows := t.Rows()
			b.TotalWords = rows[0].TotalWords

			usage := stats.AnalyzeJoker(t)
			b.JokerUsageRate = usage.UsageRate

			found := make([]float64, len(rows))
			for i, r := range rows {
				found[i] = float64(r.WordsFound)
			}
			if m := stats.Mean(found); m != nil {
				b.AverageWordsFound = *m
			}
			if q := stats.Quantile(t.CompletionTimes(), 50); q != nil {
				b.MedianCompletionTime = int(*q)
			}
		}
		breakdown = append(breakdown, b)
	}

	sort.Slice(breakdown, func(i, j int) bool { return breakdown[i].GridID < breakdown[j].GridID })
	return breakdown, nil
}

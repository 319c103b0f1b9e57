package fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"crosswords-analytics/internal/cache"
	"crosswords-analytics/internal/config"
	"crosswords-analytics/internal/database"
	"crosswords-analytics/internal/logger"
	"crosswords-analytics/internal/repository"
	"crosswords-analytics/internal/server"
	"crosswords-analytics/internal/service"
)

// ProvideCacheStore picks the cache backend: shared Redis when configured,
// otherwise a per-process in-memory store.
func ProvideCacheStore(cfg *config.Config, logger zerolog.Logger) (cache.Store, error) {
	if cfg.RedisURL == "" {
		logger.Warn().Msg("REDIS_URL not set, falling back to in-memory cache")
		return cache.NewMemory(), nil
	}
	return cache.NewRedis(cfg.RedisURL, logger)
}

func ProvideStatisticsService(
	subs *repository.SubmissionRepository,
	grids *repository.GridRepository,
	users *repository.UserRepository,
	store cache.Store,
	cfg *config.Config,
	logger zerolog.Logger,
) *service.StatisticsService {
	return service.NewStatisticsService(subs, grids, users, store, cfg.CacheTTL, logger)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewSubmissionRepository),
	fx.Provide(repository.NewGridRepository),
	fx.Provide(repository.NewUserRepository),
	// cache
	fx.Provide(ProvideCacheStore),
	// svc
	fx.Provide(ProvideStatisticsService),
	// http
	fx.Provide(server.NewHandler),
)

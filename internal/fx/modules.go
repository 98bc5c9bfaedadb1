package fx

import (
	"chess-leaderboard/internal/api"
	"chess-leaderboard/internal/cache"
	"chess-leaderboard/internal/config"
	"chess-leaderboard/internal/database"
	"chess-leaderboard/internal/discovery"
	"chess-leaderboard/internal/logger"
	"chess-leaderboard/internal/repository"
	"chess-leaderboard/internal/server"
	"chess-leaderboard/internal/service"
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// ProvideStore opens the cache backend selected by CACHE_BACKEND.
func ProvideStore(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (cache.Store, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendFS:
		return cache.NewFileStore(cfg.CacheDir), nil
	case config.CacheBackendSQLite:
		db, err := database.New(cfg, logger)
		if err != nil {
			return nil, err
		}
		repo := repository.NewCacheEntryRepository(db, logger)
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				count, err := repo.Count(ctx)
				if err != nil {
					return fmt.Errorf("failed to count cache entries: %w", err)
				}
				logger.Info().Int("entries", count).Msg("sqlite cache opened")
				return nil
			},
			OnStop: func(context.Context) error { return db.Close() },
		})
		return repo, nil
	case config.CacheBackendBadger:
		store, err := cache.OpenBadger(filepath.Join(cfg.CacheDir, "badger"))
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return store.Close() }})
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(config.LoadLeague),
	// cache
	fx.Provide(ProvideStore),
	fx.Provide(cache.New),
	// api client
	fx.Provide(fx.Annotate(
		api.NewLichessClient,
		fx.As(fx.Self()),
		fx.As(new(discovery.Source)),
		fx.As(new(service.ResultSource)),
	)),
	// svc
	fx.Provide(discovery.NewPipeline),
	fx.Provide(service.NewLeaderboardService),
	// server
	fx.Provide(server.NewLeaderboardServer),
)

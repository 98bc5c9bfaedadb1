package fx

import (
	"bytes"
	"chess-leaderboard/internal/cache"
	"chess-leaderboard/internal/config"
	"chess-leaderboard/internal/repository"
	"chess-leaderboard/internal/server"
	"chess-leaderboard/internal/service"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestModuleValidates(t *testing.T) {
	require.NoError(t, fx.ValidateApp(
		Module,
		fx.NopLogger,
		fx.Invoke(func(*service.LeaderboardService, *server.LeaderboardServer) {}),
	))
}

func TestProvideStoreBackends(t *testing.T) {
	dir := t.TempDir()
	logger := zerolog.New(io.Discard)

	testCases := []struct {
		backend string
		check   func(t *testing.T, s cache.Store)
	}{
		{backend: config.CacheBackendFS, check: func(t *testing.T, s cache.Store) {
			require.IsType(t, &cache.FileStore{}, s)
		}},
		{backend: config.CacheBackendSQLite, check: func(t *testing.T, s cache.Store) {
			require.IsType(t, &repository.CacheEntryRepository{}, s)
		}},
		{backend: config.CacheBackendBadger, check: func(t *testing.T, s cache.Store) {
			require.IsType(t, &cache.BadgerStore{}, s)
		}},
	}

	for _, test := range testCases {
		t.Run(test.backend, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)
			cfg := &config.Config{
				CacheBackend: test.backend,
				CacheDir:     filepath.Join(dir, test.backend),
				DBPath:       filepath.Join(dir, test.backend, "cache.db"),
			}

			store, err := ProvideStore(lc, cfg, logger)
			require.NoError(t, err)
			test.check(t, store)

			ctx := context.Background()
			require.NoError(t, store.Put(ctx, "games/g1", []byte("page")))
			data, err := store.Get(ctx, "games/g1")
			require.NoError(t, err)
			require.Equal(t, "page", string(data))

			lc.RequireStart().RequireStop()
		})
	}
}

func TestProvideStoreSQLiteLogsEntryCount(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	cfg := &config.Config{
		CacheBackend: config.CacheBackendSQLite,
		DBPath:       filepath.Join(dir, "cache.db"),
	}

	lc := fxtest.NewLifecycle(t)
	store, err := ProvideStore(lc, cfg, logger)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), "games/g1", []byte("page")))

	lc.RequireStart()
	require.Contains(t, buf.String(), `"entries":1`)
	lc.RequireStop()
}

func TestProvideStoreUnknownBackend(t *testing.T) {
	_, err := ProvideStore(fxtest.NewLifecycle(t), &config.Config{CacheBackend: "nope"}, zerolog.Nop())
	require.Error(t, err)
}

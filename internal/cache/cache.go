package cache

import (
	"chess-leaderboard/internal/constants"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var (
	ErrNotFound   = errors.New("cache entry not found")
	ErrExists     = errors.New("cache entry already exists")
	ErrInvalidKey = errors.New("invalid cache key")
)

// Store persists raw payloads by key. Put must never replace an existing entry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Loader performs the real fetch for a missing key.
type Loader func(ctx context.Context) ([]byte, error)

type Cache struct {
	store  Store
	logger zerolog.Logger
}

func New(store Store, logger zerolog.Logger) *Cache {
	return &Cache{store: store, logger: logger}
}

// Fetch returns the entry stored under key, invoking loader only on a miss.
func (c *Cache) Fetch(ctx context.Context, key string, loader Loader) ([]byte, error) {
	data, err := c.store.Get(ctx, key)
	if err == nil {
		c.logger.Debug().Str("key", key).Msg("cache hit")
		return data, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}

	c.logger.Debug().Str("key", key).Msg("cache miss")

	data, err = loader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}

	err = c.store.Put(ctx, key, data)
	if errors.Is(err, ErrExists) {
		// first write wins
		return c.store.Get(ctx, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}

	return data, nil
}

func UserGamesKey(userID string) string {
	return fmt.Sprintf("%s/%s.txt", constants.UserGamesPrefix, userID)
}

func GameKey(gameID string) string {
	return fmt.Sprintf("%s/%s", constants.GamesPrefix, gameID)
}

func TournamentKey(tournamentID string) string {
	return fmt.Sprintf("%s/%s.json", constants.TournamentsPrefix, tournamentID)
}

func TournamentResultsKey(tournamentID string) string {
	return fmt.Sprintf("%s/%s.json", constants.TournamentsResultsPrefix, tournamentID)
}

package repository

import (
	"chess-leaderboard/internal/cache"
	"chess-leaderboard/internal/constants"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// CacheEntryRepository is the sqlite-backed cache.Store.
type CacheEntryRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewCacheEntryRepository(sqlDB *sql.DB, logger zerolog.Logger) *CacheEntryRepository {
	return &CacheEntryRepository{
		db:     sqlDB,
		logger: logger,
	}
}

func (r *CacheEntryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var body []byte
	err := r.db.QueryRowContext(ctx, `SELECT body FROM cache_entries WHERE key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, cache.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (r *CacheEntryRepository) Put(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", cache.ErrInvalidKey)
	}

	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate nanoid: %w", err)
	}

	if data == nil {
		data = []byte{}
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cache_entries (id, key, body, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO NOTHING`,
		id, key, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert cache entry %s: %w", key, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return cache.ErrExists
	}

	r.logger.Debug().Str("key", key).Str("id", id).Int("bytes", len(data)).Msg("cache entry stored")
	return nil
}

func (r *CacheEntryRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cache_entries`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

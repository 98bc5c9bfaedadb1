package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	CacheBackendFS     = "fs"
	CacheBackendSQLite = "sqlite"
	CacheBackendBadger = "badger"
)

type Config struct {
	LichessToken   string
	LichessBaseURL string
	CacheBackend   string
	CacheDir       string
	DBPath         string
	LeagueFile     string
	ServerPort     string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		LichessToken:   getEnv("LICHESS_TOKEN", ""),
		LichessBaseURL: strings.TrimRight(getEnv("LICHESS_BASE_URL", "https://lichess.org"), "/"),
		CacheBackend:   strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendFS)),
		CacheDir:       getEnv("CACHE_DIR", "cache"),
		DBPath:         getEnv("DB_PATH", "cache/cache.db"),
		LeagueFile:     getEnv("LEAGUE_FILE", ""),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
	}

	switch cfg.CacheBackend {
	case CacheBackendFS, CacheBackendSQLite, CacheBackendBadger:
	default:
		return nil, fmt.Errorf("unknown CACHE_BACKEND %q", cfg.CacheBackend)
	}

	// A fully populated cache never reaches the network, so the token is optional.
	if cfg.LichessToken == "" {
		logger.Warn().Msg("LICHESS_TOKEN is not set, only cached resources can be read")
	}

	logger.Info().
		Str("base_url", cfg.LichessBaseURL).
		Str("cache_backend", cfg.CacheBackend).
		Str("cache_dir", cfg.CacheDir).
		Str("db_path", cfg.DBPath).
		Str("league_file", cfg.LeagueFile).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

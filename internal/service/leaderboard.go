package service

import (
	"chess-leaderboard/internal/cache"
	"chess-leaderboard/internal/config"
	"chess-leaderboard/internal/discovery"
	"chess-leaderboard/internal/domain"
	"chess-leaderboard/internal/leaderboard"
	"chess-leaderboard/internal/logger"
	"chess-leaderboard/internal/results"
	"chess-leaderboard/internal/traverse"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ResultSource fetches raw tournament standings.
type ResultSource interface {
	TournamentResults(ctx context.Context, tournamentID string) ([]byte, error)
}

type Report struct {
	Tournaments []domain.TournamentMeta
	Board       *leaderboard.Board
	BuiltAt     time.Time
}

type LeaderboardService struct {
	pipeline *discovery.Pipeline
	source   ResultSource
	cache    *cache.Cache
	league   *config.League
	logger   zerolog.Logger
}

func NewLeaderboardService(pipeline *discovery.Pipeline, source ResultSource, c *cache.Cache, league *config.League, logger zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{pipeline: pipeline, source: source, cache: c, league: league, logger: logger}
}

// Build runs one full pass. The run has no deadline of its own; each remote
// fetch is bounded by the client timeout and the caller's ctx cancels the rest.
func (s *LeaderboardService) Build(ctx context.Context) (*Report, error) {
	log := logger.WithRunID(s.logger)
	start := time.Now()
	log.Info().Int("roster", len(s.league.Roster)).Msg("building leaderboard")

	tournaments, err := s.pipeline.Discover(ctx)
	if err != nil {
		log.Error().Err(err).Msg("discovery failed")
		return nil, fmt.Errorf("failed to discover tournaments: %w", err)
	}

	ids := make([]string, 0, len(tournaments))
	for _, t := range tournaments {
		ids = append(ids, t.ID)
	}

	standings, err := traverse.Each(ctx, ids, s.tournamentResult)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch tournament results")
		return nil, fmt.Errorf("failed to fetch tournament results: %w", err)
	}

	board := leaderboard.Build(standings, s.league, log)

	log.Info().
		Int("tournaments", len(ids)).
		Int("users", len(board.Users())).
		Dur("duration", time.Since(start)).
		Msg("leaderboard built")

	return &Report{Tournaments: tournaments, Board: board, BuiltAt: time.Now()}, nil
}

func (s *LeaderboardService) tournamentResult(ctx context.Context, tournamentID string) (domain.TournamentResult, error) {
	raw, err := s.cache.Fetch(ctx, cache.TournamentResultsKey(tournamentID), func(ctx context.Context) ([]byte, error) {
		s.logger.Info().Str("tournament", tournamentID).Msg("fetching tournament results")
		return s.source.TournamentResults(ctx, tournamentID)
	})
	if err != nil {
		return domain.TournamentResult{}, err
	}
	return results.Parse(tournamentID, raw, s.league)
}

// TournamentLines lists the canonical tournaments as "<url> - <name>" lines.
func (r *Report) TournamentLines(baseURL string) []string {
	lines := make([]string, 0, len(r.Tournaments))
	for _, t := range r.Tournaments {
		lines = append(lines, fmt.Sprintf("%s/tournament/%s - %s", baseURL, t.ID, t.FullName))
	}
	return lines
}

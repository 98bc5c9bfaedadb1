package discovery

import (
	"chess-leaderboard/internal/cache"
	"chess-leaderboard/internal/config"
	"chess-leaderboard/internal/domain"
	"chess-leaderboard/internal/traverse"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
)

// Source is the remote service as seen by discovery.
type Source interface {
	UserGames(ctx context.Context, userID string) ([]byte, error)
	GamePage(ctx context.Context, gameID string) ([]byte, error)
	Tournament(ctx context.Context, tournamentID string) ([]byte, error)
}

type Pipeline struct {
	source Source
	cache  *cache.Cache
	league *config.League
	logger zerolog.Logger
}

func NewPipeline(source Source, c *cache.Cache, league *config.League, logger zerolog.Logger) *Pipeline {
	return &Pipeline{source: source, cache: c, league: league, logger: logger}
}

// Discover walks roster -> games -> tournaments and returns the canonical
// tournament list: excluded ids removed, sorted by start time, creator-filtered.
func (p *Pipeline) Discover(ctx context.Context) ([]domain.TournamentMeta, error) {
	gameIDs, err := p.GameIDs(ctx, p.league.Roster)
	if err != nil {
		return nil, err
	}
	p.logger.Info().Int("games", len(gameIDs)).Msg("games discovered")

	tournamentIDs, err := p.TournamentIDs(ctx, gameIDs)
	if err != nil {
		return nil, err
	}
	p.logger.Info().Int("tournaments", len(tournamentIDs)).Msg("tournaments discovered")

	return p.Resolve(ctx, tournamentIDs)
}

// GameIDs is stage A: last game per date for every user, flattened and deduplicated.
func (p *Pipeline) GameIDs(ctx context.Context, users []string) ([]string, error) {
	perUser, err := traverse.Each(ctx, users, p.userGameIDs)
	if err != nil {
		return nil, err
	}
	return traverse.Unique(traverse.Flatten(perUser)), nil
}

func (p *Pipeline) userGameIDs(ctx context.Context, userID string) ([]string, error) {
	raw, err := p.cache.Fetch(ctx, cache.UserGamesKey(userID), func(ctx context.Context) ([]byte, error) {
		p.logger.Info().Str("user", userID).Msg("fetching games")
		return p.source.UserGames(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	records, err := ParseGameExport(raw)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, err)
	}
	return LastGamePerDate(records), nil
}

// TournamentIDs is stage B: the first tournament linked from each game page.
func (p *Pipeline) TournamentIDs(ctx context.Context, gameIDs []string) ([]string, error) {
	ids, err := traverse.Each(ctx, gameIDs, p.gameTournamentID)
	if err != nil {
		return nil, err
	}
	return traverse.Unique(traverse.Present(ids)), nil
}

func (p *Pipeline) gameTournamentID(ctx context.Context, gameID string) (string, error) {
	page, err := p.cache.Fetch(ctx, cache.GameKey(gameID), func(ctx context.Context) ([]byte, error) {
		p.logger.Info().Str("game", gameID).Msg("fetching game")
		return p.source.GamePage(ctx, gameID)
	})
	if err != nil {
		return "", err
	}
	return ExtractTournamentID(page), nil
}

// Resolve is stage C.
func (p *Pipeline) Resolve(ctx context.Context, tournamentIDs []string) ([]domain.TournamentMeta, error) {
	kept := slices.DeleteFunc(slices.Clone(tournamentIDs), p.league.IsTournamentExcluded)

	metas, err := traverse.Each(ctx, kept, p.Tournament)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(metas, func(a, b domain.TournamentMeta) int {
		return a.StartsAt.Compare(b.StartsAt)
	})

	canonical := make([]domain.TournamentMeta, 0, len(metas))
	for _, m := range metas {
		if !p.league.IsCreatorAllowed(m.CreatedBy) {
			p.logger.Debug().Str("tournament", m.ID).Str("created_by", m.CreatedBy).Msg("tournament creator not allowed")
			continue
		}
		canonical = append(canonical, m)
	}
	return canonical, nil
}

func (p *Pipeline) Tournament(ctx context.Context, tournamentID string) (domain.TournamentMeta, error) {
	raw, err := p.cache.Fetch(ctx, cache.TournamentKey(tournamentID), func(ctx context.Context) ([]byte, error) {
		p.logger.Info().Str("tournament", tournamentID).Msg("fetching tournament")
		return p.source.Tournament(ctx, tournamentID)
	})
	if err != nil {
		return domain.TournamentMeta{}, err
	}

	var meta domain.TournamentMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return domain.TournamentMeta{}, fmt.Errorf("failed to decode tournament %s: %w", tournamentID, err)
	}
	if meta.ID == "" {
		meta.ID = tournamentID
	}
	return meta, nil
}

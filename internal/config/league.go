package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// MedalCount is the number of podium places that earn a medal.
const MedalCount = 3

// ConsolationPoints is awarded for every rank beyond the points table.
const ConsolationPoints = 1

//go:embed league.default.yaml
var defaultLeague []byte

var ErrInvalidLeague = errors.New("invalid league")

// League holds the static tables that drive discovery and scoring.
type League struct {
	Name               string            `yaml:"name"`
	Roster             []string          `yaml:"roster"`
	ExcludeTournaments []string          `yaml:"exclude_tournaments"`
	ExcludeUsers       []string          `yaml:"exclude_users"`
	AllowedCreators    []string          `yaml:"allowed_creators"`
	Aliases            map[string]string `yaml:"aliases"`
	Points             []int             `yaml:"points"`
	Medals             []string          `yaml:"medals"`
	Placeholder        string            `yaml:"placeholder"`

	// Members are listed even when they have no result in a retained tournament.
	Members []string `yaml:"members"`
}

// LoadLeague reads the league from path, or the embedded default when path is empty.
func LoadLeague(cfg *Config, logger zerolog.Logger) (*League, error) {
	data := defaultLeague
	source := "embedded"
	if cfg.LeagueFile != "" {
		raw, err := os.ReadFile(cfg.LeagueFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read league file: %w", err)
		}
		data = raw
		source = cfg.LeagueFile
	}

	league, err := ParseLeague(data)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("league", league.Name).
		Str("source", source).
		Int("roster", len(league.Roster)).
		Int("aliases", len(league.Aliases)).
		Msg("league loaded")

	return league, nil
}

func ParseLeague(data []byte) (*League, error) {
	var league League
	if err := yaml.Unmarshal(data, &league); err != nil {
		return nil, fmt.Errorf("failed to unmarshal league: %w", err)
	}
	if league.Placeholder == "" {
		league.Placeholder = "-"
	}
	if err := league.Validate(); err != nil {
		return nil, err
	}
	return &league, nil
}

func (l *League) Validate() error {
	if len(l.Roster) == 0 {
		return fmt.Errorf("%w: roster is empty", ErrInvalidLeague)
	}
	if len(l.Medals) != MedalCount {
		return fmt.Errorf("%w: expected %d medals, got %d", ErrInvalidLeague, MedalCount, len(l.Medals))
	}
	for i := 1; i < len(l.Points); i++ {
		if l.Points[i] > l.Points[i-1] {
			return fmt.Errorf("%w: points table must be descending at position %d", ErrInvalidLeague, i+1)
		}
	}
	for from, to := range l.Aliases {
		if next, ok := l.Aliases[to]; ok && next != to {
			return fmt.Errorf("%w: alias %q points to another alias %q", ErrInvalidLeague, from, to)
		}
	}
	return nil
}

// PointsFor maps a 1-based rank to the points it earns.
func (l *League) PointsFor(rank int) int {
	idx := rank - 1
	if idx < 0 || idx >= len(l.Points) {
		return ConsolationPoints
	}
	return l.Points[idx]
}

// MedalFor returns the medal for a 1-based rank, if any.
func (l *League) MedalFor(rank int) (string, bool) {
	idx := rank - 1
	if idx < 0 || idx >= len(l.Medals) {
		return "", false
	}
	return l.Medals[idx], true
}

func (l *League) Normalize(username string) string {
	if alias, ok := l.Aliases[username]; ok {
		return alias
	}
	return username
}

func (l *League) IsTournamentExcluded(id string) bool {
	return slices.Contains(l.ExcludeTournaments, id)
}

func (l *League) IsUserExcluded(username string) bool {
	return slices.Contains(l.ExcludeUsers, username)
}

func (l *League) IsCreatorAllowed(creator string) bool {
	creator = strings.ToLower(creator)
	return slices.ContainsFunc(l.AllowedCreators, func(c string) bool {
		return strings.ToLower(c) == creator
	})
}

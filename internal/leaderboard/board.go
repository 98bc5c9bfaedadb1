package leaderboard

import (
	"chess-leaderboard/internal/config"
	"chess-leaderboard/internal/domain"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const (
	membersHeader     = "Membros"
	pointsHeader      = "Pontuação"
	medalsHeader      = "Medalhas"
	tournamentHeading = "Tournament %d"
)

// Board is the read-only aggregate of all canonical tournaments.
type Board struct {
	league      *config.League
	tournaments []string
	tables      map[string]map[string]domain.PlayerResult
	users       []string
}

// Build indexes every result by normalized username. results must already be
// in canonical tournament order. Users sort by lowercased byte order with the
// raw name breaking ties, so punctuation such as '_' and '-' orders by code
// point rather than by locale collation, and names differing only in case
// always order uppercase first.
func Build(results []domain.TournamentResult, league *config.League, logger zerolog.Logger) *Board {
	b := &Board{
		league:      league,
		tournaments: make([]string, 0, len(results)),
		tables:      make(map[string]map[string]domain.PlayerResult, len(results)),
	}

	seen := make(map[string]struct{})
	addUser := func(u string) {
		if league.IsUserExcluded(u) {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		b.users = append(b.users, u)
	}

	for _, r := range results {
		table := make(map[string]domain.PlayerResult, len(r.Players))
		for _, p := range r.Players {
			user := league.Normalize(p.Username)
			if prev, ok := table[user]; ok {
				logger.Warn().
					Str("tournament", r.ID).
					Str("user", user).
					Str("replaced", prev.Username).
					Str("by", p.Username).
					Msg("two usernames share one alias in a tournament, keeping the later")
			}
			table[user] = p
		}
		b.tournaments = append(b.tournaments, r.ID)
		b.tables[r.ID] = table
		for _, p := range r.Players {
			addUser(league.Normalize(p.Username))
		}
	}

	for _, m := range league.Members {
		addUser(league.Normalize(m))
	}

	slices.SortStableFunc(b.users, func(a, c string) int {
		if r := strings.Compare(strings.ToLower(a), strings.ToLower(c)); r != 0 {
			return r
		}
		return strings.Compare(a, c)
	})

	return b
}

func (b *Board) Tournaments() []string {
	return slices.Clone(b.tournaments)
}

func (b *Board) Users() []string {
	return slices.Clone(b.users)
}

func (b *Board) Result(tournamentID, user string) (domain.PlayerResult, bool) {
	r, ok := b.tables[tournamentID][user]
	return r, ok
}

func (b *Board) TotalPoints(user string) int {
	total := 0
	for _, id := range b.tournaments {
		if r, ok := b.Result(id, user); ok {
			total += r.Points
		}
	}
	return total
}

// MedalCounts returns how many of each medal the user won, keyed by medal symbol.
func (b *Board) MedalCounts(user string) map[string]int {
	counts := make(map[string]int)
	for _, id := range b.tournaments {
		r, ok := b.Result(id, user)
		if !ok {
			continue
		}
		if medal, ok := b.league.MedalFor(r.Rank); ok {
			counts[medal]++
		}
	}
	return counts
}

func (b *Board) MedalSummary(user string) string {
	counts := b.MedalCounts(user)
	if len(counts) == 0 {
		return b.league.Placeholder
	}

	parts := make([]string, 0, len(counts))
	for _, medal := range b.league.Medals {
		switch n := counts[medal]; {
		case n == 1:
			parts = append(parts, medal)
		case n > 1:
			parts = append(parts, fmt.Sprintf("%s(%dx)", medal, n))
		}
	}
	return strings.Join(parts, " ")
}

// Standing is one rendered row of the leaderboard.
type Standing struct {
	User         string
	Performances []string
	Points       int
	Medals       string
}

func (b *Board) Standings() []Standing {
	rows := make([]Standing, 0, len(b.users))
	for _, user := range b.users {
		perf := make([]string, 0, len(b.tournaments))
		for _, id := range b.tournaments {
			if r, ok := b.Result(id, user); ok {
				perf = append(perf, strconv.Itoa(r.Performance))
			} else {
				perf = append(perf, b.league.Placeholder)
			}
		}
		rows = append(rows, Standing{
			User:         user,
			Performances: perf,
			Points:       b.TotalPoints(user),
			Medals:       b.MedalSummary(user),
		})
	}
	return rows
}

func (b *Board) TournamentHeaders() []string {
	headers := make([]string, 0, len(b.tournaments))
	for i := range b.tournaments {
		headers = append(headers, fmt.Sprintf(tournamentHeading, i+1))
	}
	return headers
}

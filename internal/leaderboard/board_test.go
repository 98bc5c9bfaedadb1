package leaderboard

import (
	"chess-leaderboard/internal/config"
	"chess-leaderboard/internal/domain"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testLeague() *config.League {
	return &config.League{
		Roster:       []string{"alice"},
		ExcludeUsers: []string{"ghost"},
		Aliases:      map[string]string{"alice_alt": "alice", "Bob": "bob_AS"},
		Points:       []int{10, 8, 6, 3, 2},
		Medals:       []string{"🥇", "🥈", "🥉"},
		Placeholder:  "-",
	}
}

func player(t, user string, rank, perf int) domain.PlayerResult {
	return domain.PlayerResult{
		TournamentID: t,
		Username:     user,
		Rank:         rank,
		Performance:  perf,
		Points:       testLeague().PointsFor(rank),
	}
}

func fixture() []domain.TournamentResult {
	return []domain.TournamentResult{
		{ID: "T1", Players: []domain.PlayerResult{
			player("T1", "alice", 1, 2000),
			player("T1", "Bob", 2, 1900),
			player("T1", "ghost", 3, 1800),
			player("T1", "carol", 7, 1500),
		}},
		{ID: "T2", Players: []domain.PlayerResult{
			player("T2", "alice_alt", 1, 2100),
			player("T2", "carol", 3, 1700),
		}},
		{ID: "T3", Players: []domain.PlayerResult{
			player("T3", "bob_AS", 1, 1950),
			player("T3", "alice", 2, 1850),
			player("T3", "Dave", 4, 1600),
		}},
	}
}

func build(results []domain.TournamentResult, league *config.League) *Board {
	return Build(results, league, zerolog.New(io.Discard))
}

func TestBuildUsers(t *testing.T) {
	b := build(fixture(), testLeague())

	require.Equal(t, []string{"T1", "T2", "T3"}, b.Tournaments())
	require.Equal(t, []string{"alice", "bob_AS", "carol", "Dave"}, b.Users())
	require.NotContains(t, b.Users(), "ghost")
}

func TestTotalsAndMedals(t *testing.T) {
	b := build(fixture(), testLeague())

	require.Equal(t, 10+10+8, b.TotalPoints("alice"))
	require.Equal(t, "🥇(2x) 🥈", b.MedalSummary("alice"))

	require.Equal(t, 8+10, b.TotalPoints("bob_AS"))
	require.Equal(t, "🥇 🥈", b.MedalSummary("bob_AS"))

	require.Equal(t, 1+6, b.TotalPoints("carol"))
	require.Equal(t, "🥉", b.MedalSummary("carol"))

	require.Equal(t, 3, b.TotalPoints("Dave"))
	require.Equal(t, "-", b.MedalSummary("Dave"))
}

func TestAliasCollisionLastWriteWins(t *testing.T) {
	results := []domain.TournamentResult{
		{ID: "T1", Players: []domain.PlayerResult{
			player("T1", "alice", 1, 2000),
			player("T1", "alice_alt", 4, 1500),
		}},
	}
	b := build(results, testLeague())

	r, ok := b.Result("T1", "alice")
	require.True(t, ok)
	require.Equal(t, 4, r.Rank)
	require.Equal(t, "alice_alt", r.Username)
	require.Equal(t, []string{"alice"}, b.Users())
}

func TestMemberWithoutResults(t *testing.T) {
	league := testLeague()
	league.Members = []string{"zed", "ghost"}
	b := build(fixture(), league)

	require.Contains(t, b.Users(), "zed")
	require.NotContains(t, b.Users(), "ghost")
	require.Equal(t, 0, b.TotalPoints("zed"))

	for _, s := range b.Standings() {
		if s.User == "zed" {
			require.Equal(t, []string{"-", "-", "-"}, s.Performances)
			require.Equal(t, 0, s.Points)
			require.Equal(t, "-", s.Medals)
			return
		}
	}
	t.Fatal("zed missing from standings")
}

func TestUsersSortedCaseInsensitive(t *testing.T) {
	results := []domain.TournamentResult{
		{ID: "T1", Players: []domain.PlayerResult{
			player("T1", "zoe", 1, 1),
			player("T1", "Adam", 2, 1),
			player("T1", "bea", 3, 1),
			player("T1", "adam", 4, 1),
		}},
	}
	b := build(results, testLeague())
	require.Equal(t, []string{"Adam", "adam", "bea", "zoe"}, b.Users())
}

func TestUsersSortedByCodePoint(t *testing.T) {
	results := []domain.TournamentResult{
		{ID: "T1", Players: []domain.PlayerResult{
			player("T1", "zed", 1, 1),
			player("T1", "a_b", 2, 1),
			player("T1", "a1", 3, 1),
			player("T1", "Zed", 4, 1),
			player("T1", "a-b", 5, 1),
		}},
	}
	b := build(results, testLeague())
	require.Equal(t, []string{"a-b", "a1", "a_b", "Zed", "zed"}, b.Users())
}

func TestEmptyBoard(t *testing.T) {
	b := build(nil, testLeague())
	require.Empty(t, b.Users())
	require.Empty(t, b.Tournaments())
	require.Equal(t, "Membros\nMembros,Pontuação,Medalhas\n\n", b.CSV())
}

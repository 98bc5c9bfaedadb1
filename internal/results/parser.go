package results

import (
	"bytes"
	"chess-leaderboard/internal/config"
	"chess-leaderboard/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedResult = errors.New("malformed tournament result")

type record struct {
	Username    string `json:"username"`
	Rank        int    `json:"rank"`
	Performance int    `json:"performance"`
}

// Parse decodes an NDJSON standings payload. Any bad line fails the whole payload.
func Parse(tournamentID string, raw []byte, league *config.League) (domain.TournamentResult, error) {
	result := domain.TournamentResult{ID: tournamentID, Players: []domain.PlayerResult{}}

	for n, line := range bytes.Split(bytes.TrimSpace(raw), []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var r record
		if err := json.Unmarshal(line, &r); err != nil {
			return domain.TournamentResult{}, fmt.Errorf("%w: tournament %s line %d: %v", ErrMalformedResult, tournamentID, n+1, err)
		}
		if r.Username == "" || r.Rank < 1 {
			return domain.TournamentResult{}, fmt.Errorf("%w: tournament %s line %d: missing username or rank", ErrMalformedResult, tournamentID, n+1)
		}

		result.Players = append(result.Players, domain.PlayerResult{
			TournamentID: tournamentID,
			Username:     r.Username,
			Rank:         r.Rank,
			Performance:  r.Performance,
			Points:       league.PointsFor(r.Rank),
		})
	}

	return result, nil
}

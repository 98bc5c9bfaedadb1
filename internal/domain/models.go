package domain

import (
	"time"
)

type GameRecord struct {
	Date   string
	GameID string
}

type TournamentMeta struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	CreatedBy string    `json:"createdBy"`
	StartsAt  time.Time `json:"startsAt"`
}

type PlayerResult struct {
	TournamentID string `json:"tournamentId"`
	Username     string `json:"username"`
	Rank         int    `json:"rank"`
	Performance  int    `json:"performance"`
	Points       int    `json:"points"`
}

type TournamentResult struct {
	ID      string
	Players []PlayerResult
}

package constants

import "time"

const (
	ExternalAPITimeout = 30 * time.Second
	DatabaseTimeout    = 5 * time.Second
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	UserGamesPrefix          = "user_games"
	GamesPrefix              = "games"
	TournamentsPrefix        = "tournaments"
	TournamentsResultsPrefix = "tournaments_results"
)

const (
	HTTPMaxConnsPerHost     = 4
	HTTPMaxIdleConnDuration = 1 * time.Minute
	HTTPMaxResponseBodySize = 64 << 20
)

const (
	RunIDLength = 10
)

package logger

import (
	"chess-leaderboard/internal/constants"
	"io"
	"os"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// New builds the process logger. Output goes to stderr so that report text
// written to stdout stays clean.
func New() zerolog.Logger {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return WithWriter(os.Stderr, level)
}

func WithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger.Level(level)
}

// WithRunID tags every entry of a single pipeline run.
func WithRunID(logger zerolog.Logger) zerolog.Logger {
	id, err := gonanoid.New(constants.RunIDLength)
	if err != nil {
		return logger
	}
	return logger.With().Str("run_id", id).Logger()
}

package commands

import (
	"chess-leaderboard/internal/config"
	"chess-leaderboard/internal/constants"
	fxmodules "chess-leaderboard/internal/fx"
	"chess-leaderboard/internal/server"
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the leaderboard over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := fx.New(
			fxmodules.Module,
			fx.Invoke(runServer),
		)
		if err := app.Err(); err != nil {
			return err
		}

		if err := app.Start(cmd.Context()); err != nil {
			return err
		}
		select {
		case <-cmd.Context().Done():
		case <-app.Done():
		}

		stopCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		return app.Stop(stopCtx)
	},
}

func runServer(
	lc fx.Lifecycle,
	leaderboardServer *server.LeaderboardServer,
	cfg *config.Config,
	logger zerolog.Logger,
) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: leaderboardServer.Routes(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}

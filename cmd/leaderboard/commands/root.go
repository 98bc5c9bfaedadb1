package commands

import (
	"chess-leaderboard/internal/config"
	"chess-leaderboard/internal/constants"
	fxmodules "chess-leaderboard/internal/fx"
	"chess-leaderboard/internal/service"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var rootCmd = &cobra.Command{
	Use:           "leaderboard",
	Short:         "leaderboard builds the club's tournament leaderboard from lichess.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildReport runs the pipeline once inside a short-lived fx app and prints
// the canonical tournament list before returning the report. An empty list
// prints nothing, so the leaderboard blocks start the output.
func buildReport(ctx context.Context, out io.Writer) (*service.Report, error) {
	var (
		svc *service.LeaderboardService
		cfg *config.Config
	)
	app := fx.New(
		fxmodules.Module,
		fx.NopLogger,
		fx.Populate(&svc, &cfg),
	)
	if err := app.Err(); err != nil {
		return nil, err
	}

	startCtx, cancel := context.WithTimeout(ctx, constants.ShutdownTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return nil, err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		app.Stop(stopCtx) //nolint:errcheck
	}()

	report, err := svc.Build(ctx)
	if err != nil {
		return nil, err
	}

	for _, line := range report.TournamentLines(cfg.LichessBaseURL) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return nil, err
		}
	}
	return report, nil
}

package commands

import (
	"chess-leaderboard/internal/leaderboard"
	"fmt"

	"github.com/spf13/cobra"
)

var reportFormat *string

func init() {
	reportFormat = reportCmd.Flags().String("format", "csv", "Output format: csv or table.")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [--format csv|table]",
	Short: "Prints the tournament list and the leaderboard to stdout.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if *reportFormat != "csv" && *reportFormat != "table" {
			return fmt.Errorf("unknown format %q", *reportFormat)
		}

		out := cmd.OutOrStdout()
		report, err := buildReport(cmd.Context(), out)
		if err != nil {
			return err
		}

		if *reportFormat == "table" {
			return leaderboard.WriteTable(out, report.Board)
		}
		return leaderboard.WriteCSV(out, report.Board)
	},
}

package commands

import (
	"chess-leaderboard/internal/leaderboard"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var exportOut *string

func init() {
	exportOut = exportCmd.Flags().String("out", "leaderboard.xlsx", "The workbook to write.")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [--out <path/to/leaderboard.xlsx>]",
	Short: "Writes the leaderboard to an xlsx workbook.",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := buildReport(cmd.Context(), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		tmp, err := os.CreateTemp(filepath.Dir(*exportOut), ".leaderboard-*.xlsx")
		if err != nil {
			return fmt.Errorf("failed to create workbook: %w", err)
		}
		defer os.Remove(tmp.Name())

		if err := leaderboard.WriteXLSX(tmp, report.Board); err != nil {
			tmp.Close()
			return err
		}
		if err := tmp.Close(); err != nil {
			return err
		}
		return os.Rename(tmp.Name(), *exportOut)
	},
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show today's adherence for the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := requireSession(cmd, app)
			if err != nil {
				return err
			}

			stats, err := app.tracker.Stats(cmd.Context(), account.ID)
			if err != nil {
				return err
			}

			rendered, err := app.renderStats(stats)
			if err != nil {
				return fmt.Errorf("render stats: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

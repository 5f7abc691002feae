package commands

import (
	"github.com/spf13/cobra"

	"github.com/tyler180/combine-rankings/internal/analysis"
)

var longSummary *bool

func init() {
	longSummary = longformCmd.Flags().Bool("summary", false, "Print the mean percentile per position and event instead of every row.")
	rootCmd.AddCommand(longformCmd)
}

var longformCmd = &cobra.Command{
	Use:   "longform [--position WR] [--summary]",
	Short: "Prints one row per player and event with its global percentile.",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := request()
		if err != nil {
			return err
		}
		svc, err := localService(cmd.Context())
		if err != nil {
			return err
		}
		a, err := svc.Analyze(cmd.Context(), req)
		if err != nil {
			return err
		}
		if *longSummary {
			renderSummary(cmd.OutOrStdout(), analysis.Summarize(a.LongForm))
			return nil
		}
		renderLongForm(cmd.OutOrStdout(), a.LongForm)
		return nil
	},
}

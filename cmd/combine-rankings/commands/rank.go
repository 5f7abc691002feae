package commands

import (
	"github.com/spf13/cobra"
)

var rankLimit *int

func init() {
	rankLimit = rankCmd.Flags().Int("limit", 50, "Rows to print, 0 for all.")
	rootCmd.AddCommand(rankCmd)
}

var rankCmd = &cobra.Command{
	Use:   "rank [--subset drafted-only|all] [--group-key detailed|general]",
	Short: "Prints global percentiles, position deciles and composite scores.",
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
		renderWarnings(cmd.ErrOrStderr(), a.Ranked.Warnings)
		renderRanked(cmd.OutOrStdout(), a.Ranked, *rankLimit)
		return nil
	},
}

package commands

import (
	"github.com/spf13/cobra"
)

var flagStored bool

func init() {
	importanceCmd.Flags().BoolVar(&flagStored, "stored", false, "Read the last exported heatmap for --position from DynamoDB instead of recomputing.")
	rootCmd.AddCommand(importanceCmd)
}

var importanceCmd = &cobra.Command{
	Use:   "importance",
	Short: "Prints, per position, how strongly each event's decile tracks draft order.",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := request()
		if err != nil {
			return err
		}
		svc, err := localService(cmd.Context())
		if err != nil {
			return err
		}
		if flagStored {
			res, err := svc.Heatmap(cmd.Context(), req)
			if err != nil {
				return err
			}
			renderStoredImportance(cmd.OutOrStdout(), res.Heatmap, cfg.Tables())
			return nil
		}
		a, err := svc.Analyze(cmd.Context(), req)
		if err != nil {
			return err
		}
		renderImportance(cmd.OutOrStdout(), a.Importance, a.Ranked.Tables)
		return nil
	},
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [--year-start N] [--year-end N]",
	Short: "Downloads the yearly combine pages into the snapshot cache.",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := request()
		if err != nil {
			return err
		}
		svc, err := localService(cmd.Context())
		if err != nil {
			return err
		}
		n, err := svc.Fetch(cmd.Context(), req.Years)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "fetched %d of %d pages\n", n, len(req.Years))
		return nil
	},
}

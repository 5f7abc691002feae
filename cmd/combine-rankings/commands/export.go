package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/tyler180/combine-rankings/internal/app/rankings"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Writes parquet to S3, the heatmap to DynamoDB and registers Athena tables.",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := request()
		if err != nil {
			return err
		}
		clients, err := rankings.NewClients(cmd.Context())
		if err != nil {
			return err
		}
		svc := rankings.NewService(cfg, clients)
		res, err := svc.Export(cmd.Context(), req)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

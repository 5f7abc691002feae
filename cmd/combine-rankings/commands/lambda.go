package commands

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/tyler180/combine-rankings/internal/app/rankings"
)

func init() {
	rootCmd.AddCommand(lambdaCmd)
}

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Starts the AWS Lambda runtime loop.",
	// the handler loads its own config per invocation
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		lambda.Start(rankings.LambdaEntrypoint)
	},
}

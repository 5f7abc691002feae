package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tyler180/combine-rankings/internal/app/rankings"
	"github.com/tyler180/combine-rankings/internal/config"
)

var (
	cfg *config.Config

	flagSubset    string
	flagGroupKey  string
	flagYearStart int
	flagYearEnd   int
	flagPosition  string
)

var rootCmd = &cobra.Command{
	Use:           "combine-rankings",
	Short:         "combine-rankings ranks NFL combine results and measures which events track draft position.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		slog.SetDefault(rankings.NewLogger(os.Stderr, cfg.LogLevel, false))
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagSubset, "subset", "drafted-only", "Reference pool: drafted-only or all.")
	pf.StringVar(&flagGroupKey, "group-key", "general", "Position column for deciles: detailed or general.")
	pf.IntVar(&flagYearStart, "year-start", 0, "First combine year (default from config).")
	pf.IntVar(&flagYearEnd, "year-end", 0, "Last combine year (default from config).")
	pf.StringVar(&flagPosition, "position", "", "Only this position code or name in long-form output.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// request turns the persistent flags into a pipeline request.
func request() (rankings.Request, error) {
	e := rankings.Event{Subset: flagSubset, GroupKey: flagGroupKey, Position: flagPosition}
	if flagYearStart != 0 {
		e.YearStart = &flagYearStart
	}
	if flagYearEnd != 0 {
		e.YearEnd = &flagYearEnd
	}
	return rankings.RequestFromEvent(e, cfg)
}

// localService runs against the snapshot cache without AWS unless the
// config names a bucket.
func localService(ctx context.Context) (*rankings.Service, error) {
	var clients rankings.Clients
	if cfg.CacheBucket != "" || cfg.ExportBucket != "" || cfg.ImportanceTable != "" {
		c, err := rankings.NewClients(ctx)
		if err != nil {
			return nil, err
		}
		clients = c
	}
	return rankings.NewService(cfg, clients, rankings.WithLogger(slog.Default())), nil
}

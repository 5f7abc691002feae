// Package ath runs Athena statements and registers the exported datasets.
package ath

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
)

type AthenaAPI interface {
	StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error)
	GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error)
	GetQueryResults(ctx context.Context, params *athena.GetQueryResultsInput, optFns ...func(*athena.Options)) (*athena.GetQueryResultsOutput, error)
}

var (
	ErrQueryFailed    = errors.New("athena failed")
	ErrQueryCancelled = errors.New("athena cancelled")
)

type Runner struct {
	Client    AthenaAPI
	Workgroup string
	Database  string
	OutputS3  string // s3://bucket/prefix/
	Logger    *slog.Logger
	// PollInterval defaults to one second.
	PollInterval time.Duration
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Runner) ExecAndWait(ctx context.Context, sql string) (*types.QueryExecution, error) {
	in := &athena.StartQueryExecutionInput{
		QueryString: &sql,
		QueryExecutionContext: &types.QueryExecutionContext{
			Database: &r.Database,
		},
		WorkGroup: &r.Workgroup,
	}
	// an empty location falls back to the workgroup's own
	if r.OutputS3 != "" {
		in.ResultConfiguration = &types.ResultConfiguration{OutputLocation: &r.OutputS3}
	}
	startOut, err := r.Client.StartQueryExecution(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("start query: %w", err)
	}
	qid := *startOut.QueryExecutionId
	r.logger().Debug("athena query started", "qid", qid)

	every := r.PollInterval
	if every <= 0 {
		every = time.Second
	}
	tick := time.NewTicker(every)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-tick.C:
			ge, err := r.Client.GetQueryExecution(ctx, &athena.GetQueryExecutionInput{
				QueryExecutionId: &qid,
			})
			if err != nil {
				return nil, fmt.Errorf("get query execution: %w", err)
			}
			switch ge.QueryExecution.Status.State {
			case types.QueryExecutionStateSucceeded:
				if stats := ge.QueryExecution.Statistics; stats != nil {
					var scannedMB, execSec float64
					if stats.DataScannedInBytes != nil {
						scannedMB = float64(*stats.DataScannedInBytes) / 1024.0 / 1024.0
					}
					if stats.EngineExecutionTimeInMillis != nil {
						execSec = float64(*stats.EngineExecutionTimeInMillis) / 1000.0
					}
					r.logger().Info("athena query succeeded", "qid", qid, "scanned_mb", scannedMB, "exec_s", execSec)
				}
				return ge.QueryExecution, nil
			case types.QueryExecutionStateFailed:
				msg := ""
				if ge.QueryExecution.Status.StateChangeReason != nil {
					msg = *ge.QueryExecution.Status.StateChangeReason
				}
				return nil, fmt.Errorf("%w: %s", ErrQueryFailed, msg)
			case types.QueryExecutionStateCancelled:
				return nil, ErrQueryCancelled
			default:
				// still running
			}
		}
	}
}

func (r *Runner) CountRows(ctx context.Context, table string) (int64, error) {
	sql := fmt.Sprintf("SELECT COUNT(*) AS c FROM %s", table)
	exec, err := r.ExecAndWait(ctx, sql)
	if err != nil {
		return 0, err
	}
	gr, err := r.Client.GetQueryResults(ctx, &athena.GetQueryResultsInput{
		QueryExecutionId: exec.QueryExecutionId,
	})
	if err != nil {
		return 0, fmt.Errorf("get results: %w", err)
	}
	if len(gr.ResultSet.Rows) < 2 || len(gr.ResultSet.Rows[1].Data) < 1 || gr.ResultSet.Rows[1].Data[0].VarCharValue == nil {
		return 0, errors.New("unexpected COUNT(*) result shape")
	}
	var n int64
	if _, err := fmt.Sscan(*gr.ResultSet.Rows[1].Data[0].VarCharValue, &n); err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return n, nil
}

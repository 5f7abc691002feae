// Package rankings wires configuration, the snapshot cache, the ranking
// pipeline and the AWS sinks into the runs the CLI and Lambda expose.
package rankings

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/tyler180/combine-rankings/internal/analysis"
	"github.com/tyler180/combine-rankings/internal/ath"
	"github.com/tyler180/combine-rankings/internal/config"
	"github.com/tyler180/combine-rankings/internal/export"
	"github.com/tyler180/combine-rankings/internal/pfr"
	"github.com/tyler180/combine-rankings/internal/snapshot"
	"github.com/tyler180/combine-rankings/internal/store"
)

// Clients are the AWS services a run may touch. Any of them may be nil
// when the matching config is unset.
type Clients struct {
	S3     snapshot.S3API
	DDB    store.DynamoDBAPI
	Athena ath.AthenaAPI
}

type Service struct {
	cfg        *config.Config
	clients    Clients
	logger     *slog.Logger
	source     analysis.TableSource
	fetcher    snapshot.PageFetcher
	athenaPoll time.Duration
	now        func() time.Time
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource bypasses the snapshot loader.
func WithSource(src analysis.TableSource) Option {
	return func(s *Service) { s.source = src }
}

// WithFetcher replaces the live page fetcher used on cache misses.
func WithFetcher(f snapshot.PageFetcher) Option {
	return func(s *Service) { s.fetcher = f }
}

func WithAthenaPollInterval(d time.Duration) Option {
	return func(s *Service) { s.athenaPoll = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(cfg *config.Config, clients Clients, opts ...Option) *Service {
	s := &Service{cfg: cfg, clients: clients, logger: slog.Default(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) snapshotStore() snapshot.Store {
	if s.cfg.CacheBucket != "" && s.clients.S3 != nil {
		return snapshot.S3Store{Client: s.clients.S3, Bucket: s.cfg.CacheBucket, Prefix: s.cfg.CachePrefix}
	}
	return snapshot.DirStore{Dir: s.cfg.CacheDir}
}

func (s *Service) pageFetcher() snapshot.PageFetcher {
	if s.fetcher != nil {
		return s.fetcher
	}
	opts := []pfr.FetchOption{
		pfr.WithBaseURL(s.cfg.BaseURL),
		pfr.WithRetry(s.cfg.Retry()),
		pfr.WithLogger(s.logger),
	}
	if s.cfg.UserAgent != "" {
		opts = append(opts, pfr.WithUserAgent(s.cfg.UserAgent))
	}
	return pfr.NewFetcher(opts...)
}

// Loader builds the snapshot loader for the given years.
func (s *Service) Loader(years []int) *snapshot.Loader {
	return snapshot.NewLoader(s.snapshotStore(), s.pageFetcher(), years,
		snapshot.WithCrawlDelay(s.cfg.CrawlDelay()),
		snapshot.WithLoaderLogger(s.logger),
	)
}

func (s *Service) analysisOptions() []analysis.Option {
	return []analysis.Option{
		analysis.WithTables(s.cfg.Tables()),
		analysis.WithMinDecileSamples(s.cfg.MinDecileSamples),
		analysis.WithExcludedPositions(s.cfg.ExcludedPositions...),
		analysis.WithLogger(s.logger),
	}
}

// Pipeline returns the ranking pipeline and, when it reads through the
// snapshot cache, the loader behind it.
func (s *Service) Pipeline(years []int) (*analysis.Pipeline, *snapshot.Loader) {
	if s.source != nil {
		return analysis.NewPipeline(s.source, s.analysisOptions()...), nil
	}
	l := s.Loader(years)
	return analysis.NewPipeline(l, s.analysisOptions()...), l
}

// Fetch fills the snapshot cache for the years and returns how many pages
// came from the network.
func (s *Service) Fetch(ctx context.Context, years []int) (int, error) {
	l := s.Loader(years)
	for _, y := range years {
		if _, err := l.Page(ctx, y); err != nil {
			return l.Fetched(), err
		}
	}
	return l.Fetched(), nil
}

// Analysis is one run's in-memory output.
type Analysis struct {
	Ranked     *analysis.RankedTable
	Importance []analysis.ImportanceEntry
	LongForm   []analysis.EAVRow
	Fetched    int
}

func (s *Service) Analyze(ctx context.Context, req Request) (*Analysis, error) {
	p, l := s.Pipeline(req.Years)
	ranked, err := p.LoadAndRank(ctx, req.Subset, req.GroupKey)
	if err != nil {
		return nil, err
	}
	a := &Analysis{
		Ranked:     ranked,
		Importance: p.ImportanceByPosition(ranked),
		LongForm:   p.LongForm(ranked, req.Position),
	}
	if l != nil {
		a.Fetched = l.Fetched()
	}
	return a, nil
}

func (s *Service) result(mode string, req Request, a *Analysis) *Result {
	return &Result{
		OK:         true,
		Mode:       mode,
		Subset:     string(req.Subset),
		GroupKey:   string(req.GroupKey),
		Years:      req.Years,
		Players:    len(a.Ranked.Rows),
		Warnings:   warningStrings(a.Ranked.Warnings),
		Importance: len(a.Importance),
		LongForm:   len(a.LongForm),
		Fetched:    a.Fetched,
	}
}

func (s *Service) Rank(ctx context.Context, req Request) (*Result, error) {
	a, err := s.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.result("rank", req, a), nil
}

// Export runs the pipeline and writes every configured sink: parquet to
// S3, the heatmap to DynamoDB, and the Athena table registrations.
func (s *Service) Export(ctx context.Context, req Request) (*Result, error) {
	a, err := s.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	res := s.result("export", req, a)
	res.RunID = uuid.NewString()

	if s.cfg.ExportBucket != "" {
		if s.clients.S3 == nil {
			return nil, fmt.Errorf("%w: export_bucket set without an S3 client", config.ErrInvalidConfig)
		}
		up := &export.Uploader{Client: s.clients.S3, Bucket: s.cfg.ExportBucket, Prefix: s.cfg.ExportPrefix, Now: s.now}
		subset, key := string(req.Subset), string(req.GroupKey)

		keys := make([]string, 0, 3)
		k, err := export.Dataset(ctx, up, export.DatasetRanks, subset, key, export.RankRows(a.Ranked))
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		k, err = export.Dataset(ctx, up, export.DatasetLongForm, subset, key, export.EAVRows(a.LongForm))
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		k, err = export.Dataset(ctx, up, export.DatasetImportance, subset, key, export.ImportanceRows(a.Importance, a.Ranked.Tables))
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		for _, k := range keys {
			if k != "" {
				res.Objects = append(res.Objects, k)
			}
		}
		s.logger.Info("exported parquet", "bucket", s.cfg.ExportBucket, "objects", len(res.Objects))

		if s.cfg.AthenaDB != "" && s.clients.Athena != nil {
			r := &ath.Runner{
				Client:       s.clients.Athena,
				Workgroup:    s.cfg.AthenaWorkgroup,
				Database:     s.cfg.AthenaDB,
				OutputS3:     s.cfg.AthenaOutput,
				Logger:       s.logger,
				PollInterval: s.athenaPoll,
			}
			tables := ath.ExportTables(up)
			qids, err := ath.RegisterTables(ctx, r, tables)
			if err != nil {
				return nil, err
			}
			res.QueryIDs = qids
			res.TableRows = make(map[string]int64, len(tables))
			for _, t := range tables {
				n, err := r.CountRows(ctx, s.cfg.AthenaDB+"."+t.Name)
				if err != nil {
					return nil, fmt.Errorf("count %s: %w", t.Name, err)
				}
				res.TableRows[t.Name] = n
				s.logger.Info("registered athena table", "table", t.Name, "rows", n)
			}
		}
	}

	if s.cfg.ImportanceTable != "" && s.clients.DDB != nil {
		if err := store.PutImportance(ctx, s.clients.DDB, s.cfg.ImportanceTable, res.RunID, a.Importance); err != nil {
			return nil, err
		}
		if err := store.PutRunSummary(ctx, s.clients.DDB, s.cfg.ImportanceTable, res.RunID, req.Subset, req.GroupKey, res.Players, res.Importance); err != nil {
			return nil, err
		}
		s.logger.Info("stored importance heatmap", "table", s.cfg.ImportanceTable, "entries", len(a.Importance), "run_id", res.RunID)
	}
	return res, nil
}

// Heatmap reads the stored importance entries for one position code back
// from DynamoDB, in rank order.
func (s *Service) Heatmap(ctx context.Context, req Request) (*Result, error) {
	if s.cfg.ImportanceTable == "" || s.clients.DDB == nil {
		return nil, fmt.Errorf("%w: heatmap needs importance_table and a DynamoDB client", config.ErrInvalidConfig)
	}
	pos := strings.ToUpper(req.Position)
	if pos == "" {
		return nil, fmt.Errorf("%w: heatmap needs a position", analysis.ErrInvalidArgument)
	}
	items, err := store.QueryImportance(ctx, s.clients.DDB, s.cfg.ImportanceTable, pos)
	if err != nil {
		return nil, err
	}
	s.logger.Info("read importance heatmap", "table", s.cfg.ImportanceTable, "position", pos, "entries", len(items))
	return &Result{
		OK:         true,
		Mode:       "heatmap",
		Subset:     string(req.Subset),
		GroupKey:   string(req.GroupKey),
		Years:      req.Years,
		Importance: len(items),
		Heatmap:    items,
	}, nil
}

// Run dispatches one named mode; an empty mode exports.
func (s *Service) Run(ctx context.Context, mode string, req Request) (*Result, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		mode = "export"
	}
	switch mode {
	case "rank":
		return s.Rank(ctx, req)
	case "export":
		return s.Export(ctx, req)
	case "heatmap":
		return s.Heatmap(ctx, req)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", analysis.ErrInvalidArgument, mode)
	}
}

// NewClients builds the AWS clients from the default credential chain.
func NewClients(ctx context.Context) (Clients, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return Clients{}, fmt.Errorf("aws config: %w", err)
	}
	return Clients{
		S3:     s3.NewFromConfig(awsCfg),
		DDB:    dynamodb.NewFromConfig(awsCfg),
		Athena: athena.NewFromConfig(awsCfg),
	}, nil
}

// LambdaEntrypoint is the single Lambda handler exported from this package.
func LambdaEntrypoint(ctx context.Context, raw Raw) (*Result, error) {
	var e Event
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(os.Stderr, cfg.LogLevel, true)

	req, err := RequestFromEvent(e, cfg)
	if err != nil {
		return nil, err
	}
	clients, err := NewClients(ctx)
	if err != nil {
		return nil, err
	}
	return NewService(cfg, clients, WithLogger(logger)).Run(ctx, e.Mode, req)
}

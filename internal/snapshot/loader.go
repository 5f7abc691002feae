package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/tyler180/combine-rankings/internal/pfr"
)

// PageFetcher downloads one year's combine page.
type PageFetcher interface {
	FetchCombinePage(ctx context.Context, year int) (string, error)
}

// Loader resolves yearly tables from the store, falling back to the fetcher
// on a miss. Parsed tables are memoized for the Loader's lifetime.
type Loader struct {
	store   Store
	fetcher PageFetcher
	years   []int
	delay   time.Duration
	jitter  func() float64
	sleep   func(context.Context, time.Duration) error
	logger  *slog.Logger
	memo    map[int]pfr.RawTable
	fetched int
}

type LoaderOption func(*Loader)

// WithCrawlDelay caps the randomized pause after each network fetch.
func WithCrawlDelay(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d >= 0 {
			l.delay = d
		}
	}
}

func WithLoaderLogger(lg *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// WithSleeper replaces the crawl-delay wait, mostly for tests.
func WithSleeper(fn func(context.Context, time.Duration) error) LoaderOption {
	return func(l *Loader) { l.sleep = fn }
}

// Years returns start..end inclusive.
func Years(start, end int) []int {
	var out []int
	for y := start; y <= end; y++ {
		out = append(out, y)
	}
	return out
}

func NewLoader(store Store, fetcher PageFetcher, years []int, opts ...LoaderOption) *Loader {
	l := &Loader{
		store:   store,
		fetcher: fetcher,
		years:   append([]int(nil), years...),
		delay:   6 * time.Second,
		jitter:  rand.Float64,
		sleep:   sleepCtx,
		logger:  slog.Default(),
		memo:    make(map[int]pfr.RawTable),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Tables returns every configured year's table, in year order.
func (l *Loader) Tables(ctx context.Context) ([]pfr.RawTable, error) {
	out := make([]pfr.RawTable, 0, len(l.years))
	for _, y := range l.years {
		t, err := l.Table(ctx, y)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Table returns one year's table.
func (l *Loader) Table(ctx context.Context, year int) (pfr.RawTable, error) {
	if t, ok := l.memo[year]; ok {
		return t, nil
	}
	body, err := l.Page(ctx, year)
	if err != nil {
		return pfr.RawTable{}, err
	}
	t, err := pfr.ParseCombineTableWithLogger(l.logger, string(body), year)
	if err != nil {
		return pfr.RawTable{}, fmt.Errorf("parse combine %d: %w", year, err)
	}
	l.memo[year] = t
	return t, nil
}

// Page returns the raw page, fetching and caching it on a miss.
func (l *Loader) Page(ctx context.Context, year int) ([]byte, error) {
	body, err := l.store.Get(ctx, year)
	if err == nil {
		l.logger.Debug("snapshot hit", "year", year, "bytes", len(body))
		return body, nil
	}
	if !errors.Is(err, ErrNotCached) {
		return nil, err
	}
	if l.fetcher == nil {
		return nil, fmt.Errorf("combine %d: %w", year, ErrNotCached)
	}
	html, err := l.fetcher.FetchCombinePage(ctx, year)
	if err != nil {
		return nil, err
	}
	l.fetched++
	if err := l.store.Put(ctx, year, []byte(html)); err != nil {
		return nil, err
	}
	wait := time.Duration(l.jitter() * float64(l.delay))
	l.logger.Info("fetched combine page", "year", year, "bytes", len(html), "crawl_delay", wait.String())
	// don't crawl too hard
	if err := l.sleep(ctx, wait); err != nil {
		return nil, err
	}
	return []byte(html), nil
}

// Fetched is the number of network fetches made so far.
func (l *Loader) Fetched() int { return l.fetched }

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

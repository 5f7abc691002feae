package pfr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Fetcher downloads combine pages. The zero value is not usable; build one
// with NewFetcher.
type Fetcher struct {
	client      *http.Client
	baseURL     string
	userAgent   string
	maxAttempts int
	base        time.Duration
	maxBackoff  time.Duration
	cooldown    time.Duration
	logger      *slog.Logger
}

type FetchOption func(*Fetcher)

func WithHTTPClient(c *http.Client) FetchOption {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

func WithBaseURL(u string) FetchOption {
	return func(f *Fetcher) {
		if u = strings.TrimRight(strings.TrimSpace(u), "/"); u != "" {
			f.baseURL = u
		}
	}
}

func WithUserAgent(s string) FetchOption {
	return func(f *Fetcher) {
		if s != "" {
			f.userAgent = s
		}
	}
}

// WithRetry overrides attempts per request, base/max backoff and the 429
// cooldown used when the server sends no Retry-After.
func WithRetry(maxAttempts int, base, maxBackoff, cooldown time.Duration) FetchOption {
	return func(f *Fetcher) {
		if maxAttempts > 0 {
			f.maxAttempts = maxAttempts
		}
		if base >= 0 {
			f.base = base
		}
		if maxBackoff >= 0 {
			f.maxBackoff = maxBackoff
		}
		if cooldown >= 0 {
			f.cooldown = cooldown
		}
	}
}

func WithLogger(l *slog.Logger) FetchOption {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

func NewFetcher(opts ...FetchOption) *Fetcher {
	f := &Fetcher{
		client:      &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseWWW,
		userAgent:   ua,
		maxAttempts: 6,
		base:        400 * time.Millisecond,
		maxBackoff:  6 * time.Second,
		cooldown:    7 * time.Second,
		logger:      slog.Default(),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// CombineURL is the combine page for a draft class, e.g. /draft/2010-combine.htm.
func (f *Fetcher) CombineURL(year int) string {
	return fmt.Sprintf("%s/draft/%d-combine.htm", f.baseURL, year)
}

// FetchCombinePage returns the raw HTML of one year's combine page.
func (f *Fetcher) FetchCombinePage(ctx context.Context, year int) (string, error) {
	url := f.CombineURL(year)
	f.logger.Debug("combine: GET", "url", url)
	html, err := f.getTextWithRetry(ctx, url, f.baseURL+"/draft/")
	if err != nil {
		return "", fmt.Errorf("fetch combine %d: %w", year, err)
	}
	return html, nil
}

func parseRetryAfter(h string) time.Duration {
	h = strings.TrimSpace(h)
	if h == "" {
		return 0
	}
	// seconds form
	if secs, err := strconv.Atoi(h); err == nil {
		return time.Duration(secs) * time.Second
	}
	// HTTP date
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

func backoff(attempt int, base, max time.Duration) time.Duration {
	// exponential + jitter, capped
	d := base * time.Duration(1<<attempt)
	j := time.Duration(rand.Intn(250)) * time.Millisecond
	if d+j > max {
		return max
	}
	return d + j
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
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

// getTextWithRetry fetches a URL and retries on transport errors, 429 and 5xx.
// Respects Retry-After when present.
func (f *Fetcher) getTextWithRetry(ctx context.Context, url, referer string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("User-Agent", f.userAgent)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		if referer != "" {
			req.Header.Set("Referer", referer)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			if err := sleepCtx(ctx, backoff(attempt, f.base, f.maxBackoff)); err != nil {
				return "", err
			}
			continue
		}

		b, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr == nil {
				return string(b), nil
			}
			lastErr = readErr
			if err := sleepCtx(ctx, backoff(attempt, f.base, f.maxBackoff)); err != nil {
				return "", err
			}
		case resp.StatusCode == http.StatusTooManyRequests:
			sleep := parseRetryAfter(resp.Header.Get("Retry-After"))
			if sleep == 0 {
				sleep = f.cooldown
			}
			lastErr = fmt.Errorf("status %d for %s", resp.StatusCode, url)
			f.logger.Debug("combine: rate limited", "url", url, "sleep", sleep)
			if err := sleepCtx(ctx, sleep); err != nil {
				return "", err
			}
		case resp.StatusCode >= 500 && resp.StatusCode <= 599:
			lastErr = fmt.Errorf("status %d for %s", resp.StatusCode, url)
			if err := sleepCtx(ctx, backoff(attempt, f.base, f.maxBackoff)); err != nil {
				return "", err
			}
		default:
			// Non-retryable
			return "", fmt.Errorf("status %d for %s (body len=%d)", resp.StatusCode, url, len(b))
		}
	}
	if lastErr != nil {
		return "", fmt.Errorf("exhausted retries for %s: %w", url, lastErr)
	}
	return "", fmt.Errorf("exhausted retries for %s", url)
}

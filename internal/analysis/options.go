package analysis

import (
	"log/slog"
	"strings"

	"github.com/tyler180/combine-rankings/internal/combine"
)

type options struct {
	tables           *combine.Tables
	minDecileSamples int
	excluded         map[string]struct{}
	logger           *slog.Logger
}

// Option configures ranking and reshaping.
type Option func(*options)

// WithTables sets the lookups. Importance and LongForm default to the
// tables recorded on the RankedTable.
func WithTables(t combine.Tables) Option {
	return func(o *options) { o.tables = &t }
}

func WithMinDecileSamples(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.minDecileSamples = n
		}
	}
}

// WithExcludedPositions drops low-sample positions from importance and
// long-form output, matched against both detailed and general codes. The default excludes the special-teams group.
func WithExcludedPositions(codes ...string) Option {
	return func(o *options) {
		o.excluded = make(map[string]struct{}, len(codes))
		for _, c := range codes {
			if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
				o.excluded[c] = struct{}{}
			}
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		minDecileSamples: DefaultMinDecileSamples,
		excluded:         map[string]struct{}{"ST": {}},
		logger:           slog.Default(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func (o options) tablesOr(fallback combine.Tables) combine.Tables {
	if o.tables != nil {
		return *o.tables
	}
	return fallback
}

// isExcluded matches the row's key and its general group, so excluding ST
// also drops K and P rows keyed by detailed position.
func (o options) isExcluded(r RankedRow) bool {
	for _, code := range []string{r.Key, r.Player.Group} {
		if code == "" {
			continue
		}
		if _, ok := o.excluded[strings.ToUpper(code)]; ok {
			return true
		}
	}
	return false
}

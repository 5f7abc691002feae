package rankings

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tyler180/combine-rankings/internal/analysis"
	"github.com/tyler180/combine-rankings/internal/config"
	"github.com/tyler180/combine-rankings/internal/snapshot"
)

func pickInt(ev *int, def int) int {
	if ev != nil {
		return *ev
	}
	return def
}

// NewLogger builds the process logger: text for terminals, JSON under Lambda.
func NewLogger(w io.Writer, level string, jsonOut bool) *slog.Logger {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if jsonOut {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// RequestFromEvent validates the event and fills gaps from cfg.
func RequestFromEvent(e Event, cfg *config.Config) (Request, error) {
	subset := analysis.DraftedOnly
	if s := strings.TrimSpace(e.Subset); s != "" {
		v, err := analysis.ParseSubset(s)
		if err != nil {
			return Request{}, err
		}
		subset = v
	}
	key := analysis.General
	if k := strings.TrimSpace(e.GroupKey); k != "" {
		v, err := analysis.ParseGroupKey(k)
		if err != nil {
			return Request{}, err
		}
		key = v
	}
	start := pickInt(e.YearStart, cfg.YearStart)
	end := pickInt(e.YearEnd, cfg.YearEnd)
	if end < start {
		return Request{}, fmt.Errorf("years %d-%d: %w", start, end, analysis.ErrInvalidArgument)
	}
	return Request{
		Subset:   subset,
		GroupKey: key,
		Years:    snapshot.Years(start, end),
		Position: strings.TrimSpace(e.Position),
	}, nil
}

func warningStrings(ws []analysis.SampleWarning) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.String())
	}
	return out
}

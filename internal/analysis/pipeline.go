package analysis

import (
	"context"
	"fmt"

	"github.com/tyler180/combine-rankings/internal/combine"
	"github.com/tyler180/combine-rankings/internal/pfr"
)

// TableSource yields the raw per-year combine tables, typically from a
// snapshot cache backed by live fetches.
type TableSource interface {
	Tables(ctx context.Context) ([]pfr.RawTable, error)
}

// Pipeline wires a table source to normalization and ranking.
type Pipeline struct {
	src  TableSource
	opts []Option
	o    options
}

func NewPipeline(src TableSource, opts ...Option) *Pipeline {
	return &Pipeline{src: src, opts: opts, o: newOptions(opts)}
}

// LoadAndRank loads every table once, normalizes them into players and
// ranks the chosen subset.
func (p *Pipeline) LoadAndRank(ctx context.Context, subset Subset, key GroupKey) (*RankedTable, error) {
	raw, err := p.src.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}
	tabs := p.o.tablesOr(combine.NewTables())
	players, err := combine.Load(raw, tabs)
	if err != nil {
		return nil, err
	}
	p.o.logger.Info("normalized combine results", "tables", len(raw), "players", len(players),
		"positions", len(combine.Positions(players)))
	return Rank(players, subset, key, p.opts...)
}

func (p *Pipeline) ImportanceByPosition(ranked *RankedTable) []ImportanceEntry {
	return Importance(ranked, p.opts...)
}

func (p *Pipeline) LongForm(ranked *RankedTable, filter string) []EAVRow {
	return LongForm(ranked, filter, p.opts...)
}

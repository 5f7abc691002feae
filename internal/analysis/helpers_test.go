package analysis

import (
	"io"
	"log/slog"

	"github.com/tyler180/combine-rankings/internal/combine"
)

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func player(id int, pos string, drafted bool, order float64, metrics map[combine.Metric]float64) combine.Player {
	p := combine.Player{
		ID:      id,
		Name:    "P" + string(rune('A'+id%26)),
		Pos:     pos,
		Group:   combine.NewTables().GroupOf(pos),
		Metrics: metrics,
	}
	if drafted {
		p.Draft = combine.DraftInfo{Drafted: true, Order: order}
	}
	return p
}

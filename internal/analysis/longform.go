package analysis

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/tyler180/combine-rankings/internal/combine"
)

// LongForm reshapes the percentile columns into one row per player and
// event. Excluded position keys are dropped; a non-empty filter keeps only
// the position whose code or display name matches it.
func LongForm(ranked *RankedTable, filter string, opts ...Option) []EAVRow {
	if ranked == nil {
		return nil
	}
	o := newOptions(opts)
	tabs := o.tablesOr(ranked.Tables)
	filter = strings.TrimSpace(filter)

	out := make([]EAVRow, 0, len(ranked.Rows)*len(ranked.Metrics))
	for _, r := range ranked.Rows {
		if o.isExcluded(r) {
			continue
		}
		posName := tabs.PositionName(r.Key)
		if filter != "" && !strings.EqualFold(filter, r.Key) && !strings.EqualFold(filter, posName) {
			continue
		}
		for _, spec := range ranked.Metrics {
			v, ok := r.Global[spec.Metric]
			if !ok {
				continue
			}
			out = append(out, EAVRow{
				PlayerID:     r.Player.ID,
				Player:       r.Player.Name,
				Metric:       spec.Metric,
				Event:        tabs.MetricName(spec.Metric),
				PositionCode: r.Key,
				Position:     posName,
				Result:       v,
			})
		}
	}
	return out
}

// Pivot folds long-form rows back into playerID -> metric -> percentile.
func Pivot(rows []EAVRow) map[int]map[combine.Metric]int {
	out := make(map[int]map[combine.Metric]int)
	for _, r := range rows {
		m, ok := out[r.PlayerID]
		if !ok {
			m = make(map[combine.Metric]int)
			out[r.PlayerID] = m
		}
		m[r.Metric] = r.Result
	}
	return out
}

// EventSummary is the mean percentile of one event within one position.
type EventSummary struct {
	Position string
	Event    string
	Mean     float64
	Count    int
}

// Summarize averages long-form results per (position, event), sorted by
// position then event.
func Summarize(rows []EAVRow) []EventSummary {
	type key struct{ pos, event string }
	results := make(map[key][]float64)
	for _, r := range rows {
		k := key{r.Position, r.Event}
		results[k] = append(results[k], float64(r.Result))
	}
	out := make([]EventSummary, 0, len(results))
	for k, vals := range results {
		out = append(out, EventSummary{
			Position: k.pos,
			Event:    k.event,
			Mean:     stat.Mean(vals, nil),
			Count:    len(vals),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Event < out[j].Event
	})
	return out
}

package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Importance correlates each metric's position decile with draft order,
// per position key, and ranks the metrics within the position by |r|.
// Undefined correlations count as 0 and stay in the output flagged.
func Importance(ranked *RankedTable, opts ...Option) []ImportanceEntry {
	if ranked == nil {
		return nil
	}
	o := newOptions(opts)
	tabs := o.tablesOr(ranked.Tables)

	byKey := make(map[string][]RankedRow)
	for _, r := range ranked.Rows {
		if o.isExcluded(r) {
			continue
		}
		byKey[r.Key] = append(byKey[r.Key], r)
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []ImportanceEntry
	for _, k := range keys {
		entries := make([]ImportanceEntry, 0, len(ranked.Metrics))
		for _, spec := range ranked.Metrics {
			var xs, ys []float64
			for _, r := range byKey[k] {
				d, ok := r.Position[spec.Metric]
				if !ok || !r.Player.Draft.Drafted {
					continue
				}
				xs = append(xs, float64(d))
				ys = append(ys, r.Player.Draft.Order)
			}
			e := ImportanceEntry{
				Position: k,
				Metric:   spec.Metric,
				Event:    tabs.MetricName(spec.Metric),
				Samples:  len(xs),
			}
			if r, ok := Pearson(xs, ys); ok {
				e.Importance = math.Abs(r)
			} else {
				e.Undetermined = true
				o.logger.Debug("undetermined correlation",
					"position", k, "metric", string(spec.Metric), "samples", len(xs))
			}
			entries = append(entries, e)
		}
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i], entries[j]
			if a.Importance != b.Importance {
				return a.Importance > b.Importance
			}
			if a.Event != b.Event {
				return a.Event < b.Event
			}
			return a.Metric < b.Metric
		})
		for i := range entries {
			entries[i].Rank = i + 1
		}
		out = append(out, entries...)
	}
	return out
}

// Pearson is the linear correlation coefficient of xs and ys. ok is false
// for fewer than two pairs or when either side has zero variance.
func Pearson(xs, ys []float64) (float64, bool) {
	if len(xs) < 2 || len(xs) != len(ys) {
		return 0, false
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return 0, false
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0, false
	}
	// keep rounding from pushing |r| past 1
	return math.Max(-1, math.Min(1, r)), true
}

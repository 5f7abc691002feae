package analysis

import (
	"fmt"
	"sort"

	"github.com/tyler180/combine-rankings/internal/combine"
)

// Rank computes global percentiles and position-relative deciles for every
// metric over the chosen subset, then the composite score per player. Ranks
// are relative to the subset, never to the full player list.
func Rank(players []combine.Player, subset Subset, key GroupKey, opts ...Option) (*RankedTable, error) {
	if _, err := ParseSubset(string(subset)); err != nil {
		return nil, err
	}
	if _, err := ParseGroupKey(string(key)); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	tabs := o.tablesOr(combine.NewTables())
	metrics := tabs.Metrics()

	pool := make([]combine.Player, 0, len(players))
	for _, p := range players {
		if subset.includes(p) {
			pool = append(pool, p)
		}
	}

	// each derived column is its own playerID -> value map, merged below
	global := make(map[combine.Metric]map[int]int, len(metrics))
	for _, spec := range metrics {
		global[spec.Metric] = bucketize(metricItems(pool, spec.Metric), spec.Direction, PercentileBuckets)
	}

	byKey := make(map[string][]combine.Player)
	for _, p := range pool {
		k := key.of(p)
		byKey[k] = append(byKey[k], p)
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var warnings []SampleWarning
	position := make(map[combine.Metric]map[int]int, len(metrics))
	for _, spec := range metrics {
		merged := make(map[int]int)
		for _, k := range keys {
			items := metricItems(byKey[k], spec.Metric)
			// can't split into deciles without enough of this position + metric combo
			if len(items) < o.minDecileSamples {
				w := SampleWarning{Key: k, Metric: spec.Metric, Count: len(items), Required: o.minDecileSamples}
				warnings = append(warnings, w)
				o.logger.Warn("insufficient samples for decile",
					"position", k, "metric", string(spec.Metric), "count", len(items), "required", o.minDecileSamples)
				continue
			}
			for id, d := range bucketize(items, spec.Direction, DecileBuckets) {
				merged[id] = d
			}
		}
		position[spec.Metric] = merged
	}

	rows := make([]RankedRow, 0, len(pool))
	for _, p := range pool {
		row := RankedRow{
			Player:   p,
			Key:      key.of(p),
			Global:   make(map[combine.Metric]int, len(metrics)),
			Position: make(map[combine.Metric]int, len(metrics)),
		}
		for _, spec := range metrics {
			if v, ok := global[spec.Metric][p.ID]; ok {
				row.Global[spec.Metric] = v
			}
			if v, ok := position[spec.Metric][p.ID]; ok {
				row.Position[spec.Metric] = v
			}
		}
		row.Composite = Composite(row.Position)
		rows = append(rows, row)
	}

	o.logger.Info("ranked combine results",
		"subset", string(subset), "group_key", string(key), "players", len(rows), "skipped_pairs", len(warnings))
	return &RankedTable{
		Subset:   subset,
		GroupKey: key,
		Metrics:  metrics,
		Rows:     rows,
		Warnings: warnings,
		Tables:   tabs,
	}, nil
}

// Column names used when a ranked row is flattened.
func GlobalColumn(m combine.Metric) string   { return fmt.Sprintf("global-%s", m) }
func PositionColumn(m combine.Metric) string { return fmt.Sprintf("position-%s", m) }

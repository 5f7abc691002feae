// Package export flattens ranking output into partitioned parquet datasets.
package export

import (
	"strings"

	"github.com/tyler180/combine-rankings/internal/analysis"
	"github.com/tyler180/combine-rankings/internal/combine"
)

// Dataset names, also the S3 path segment and Athena table name.
const (
	DatasetRanks      = "combine_ranks"
	DatasetLongForm   = "combine_longform"
	DatasetImportance = "combine_importance"
)

// RankRow is one flattened ranked player. Percentile columns follow the
// global-<metric> / position-<metric> naming, made Athena-safe.
type RankRow struct {
	PlayerID    int64    `parquet:"player_id"`
	Player      string   `parquet:"player"`
	Pos         string   `parquet:"pos"`
	PosGroup    string   `parquet:"pos_group"`
	RankKey     string   `parquet:"rank_key"`
	School      *string  `parquet:"school,optional"`
	Height      *string  `parquet:"height,optional"`
	Weight      *float64 `parquet:"weight,optional"`
	CombineYear int32    `parquet:"combine_year"`
	Drafted     bool     `parquet:"drafted"`
	DraftTeam   *string  `parquet:"draft_team,optional"`
	DraftOrder  *float64 `parquet:"draft_order,optional"`
	Composite   *float64 `parquet:"composite,optional"`

	Global40yd      *int32 `parquet:"global_40yd,optional"`
	GlobalVertical  *int32 `parquet:"global_vertical,optional"`
	GlobalBench     *int32 `parquet:"global_bench,optional"`
	GlobalBroadJump *int32 `parquet:"global_broad_jump,optional"`
	Global3Cone     *int32 `parquet:"global_3cone,optional"`
	GlobalShuttle   *int32 `parquet:"global_shuttle,optional"`

	Position40yd      *int32 `parquet:"position_40yd,optional"`
	PositionVertical  *int32 `parquet:"position_vertical,optional"`
	PositionBench     *int32 `parquet:"position_bench,optional"`
	PositionBroadJump *int32 `parquet:"position_broad_jump,optional"`
	Position3Cone     *int32 `parquet:"position_3cone,optional"`
	PositionShuttle   *int32 `parquet:"position_shuttle,optional"`
}

type EAVRow struct {
	PlayerID     int64  `parquet:"player_id"`
	Player       string `parquet:"player"`
	Metric       string `parquet:"metric"`
	Event        string `parquet:"event"`
	PositionCode string `parquet:"position_code"`
	Position     string `parquet:"position"`
	Result       int32  `parquet:"result"`
}

type ImportanceRow struct {
	Position     string  `parquet:"position"`
	PositionName string  `parquet:"position_name"`
	Metric       string  `parquet:"metric"`
	Event        string  `parquet:"event"`
	Rank         int32   `parquet:"rank"`
	Importance   float64 `parquet:"importance"`
	Samples      int32   `parquet:"samples"`
	Undetermined bool    `parquet:"undetermined"`
}

// ColumnName turns a flattened column label such as "global-Broad Jump"
// into its stored form "global_broad_jump".
func ColumnName(label string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(label) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func pct(m map[combine.Metric]int, metric combine.Metric) *int32 {
	v, ok := m[metric]
	if !ok {
		return nil
	}
	n := int32(v)
	return &n
}

func RankRows(ranked *analysis.RankedTable) []RankRow {
	out := make([]RankRow, 0, len(ranked.Rows))
	for _, r := range ranked.Rows {
		p := r.Player
		row := RankRow{
			PlayerID:    int64(p.ID),
			Player:      p.Name,
			Pos:         p.Pos,
			PosGroup:    p.Group,
			RankKey:     r.Key,
			School:      strPtr(p.School),
			Height:      strPtr(p.Height),
			Weight:      p.Weight,
			CombineYear: int32(p.CombineYear),
			Drafted:     p.Draft.Drafted,
			Composite:   r.Composite,

			Global40yd:      pct(r.Global, combine.Forty),
			GlobalVertical:  pct(r.Global, combine.Vertical),
			GlobalBench:     pct(r.Global, combine.Bench),
			GlobalBroadJump: pct(r.Global, combine.BroadJump),
			Global3Cone:     pct(r.Global, combine.ThreeCone),
			GlobalShuttle:   pct(r.Global, combine.Shuttle),

			Position40yd:      pct(r.Position, combine.Forty),
			PositionVertical:  pct(r.Position, combine.Vertical),
			PositionBench:     pct(r.Position, combine.Bench),
			PositionBroadJump: pct(r.Position, combine.BroadJump),
			Position3Cone:     pct(r.Position, combine.ThreeCone),
			PositionShuttle:   pct(r.Position, combine.Shuttle),
		}
		if p.Draft.Drafted {
			order := p.Draft.Order
			row.DraftOrder = &order
			row.DraftTeam = strPtr(p.Draft.Team)
		}
		out = append(out, row)
	}
	return out
}

func EAVRows(rows []analysis.EAVRow) []EAVRow {
	out := make([]EAVRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, EAVRow{
			PlayerID:     int64(r.PlayerID),
			Player:       r.Player,
			Metric:       string(r.Metric),
			Event:        r.Event,
			PositionCode: r.PositionCode,
			Position:     r.Position,
			Result:       int32(r.Result),
		})
	}
	return out
}

func ImportanceRows(entries []analysis.ImportanceEntry, tabs combine.Tables) []ImportanceRow {
	out := make([]ImportanceRow, 0, len(entries))
	for _, e := range entries {
		out = append(out, ImportanceRow{
			Position:     e.Position,
			PositionName: tabs.PositionName(e.Position),
			Metric:       string(e.Metric),
			Event:        e.Event,
			Rank:         int32(e.Rank),
			Importance:   e.Importance,
			Samples:      int32(e.Samples),
			Undetermined: e.Undetermined,
		})
	}
	return out
}

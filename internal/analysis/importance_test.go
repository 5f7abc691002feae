package analysis

import (
	"math"
	"testing"

	"github.com/tyler180/combine-rankings/internal/combine"
)

func TestPearson(t *testing.T) {
	r, ok := Pearson([]float64{1, 2, 3}, []float64{2, 4, 6})
	if !ok || math.Abs(r-1) > 1e-12 {
		t.Fatalf("perfect correlation = %v, %v", r, ok)
	}
	r, ok = Pearson([]float64{1, 2, 3}, []float64{6, 4, 2})
	if !ok || math.Abs(r+1) > 1e-12 {
		t.Fatalf("perfect anticorrelation = %v, %v", r, ok)
	}
	r, ok = Pearson([]float64{1, 2, 3, 4}, []float64{1, 3, 2, 4})
	if !ok || math.Abs(r-0.8) > 1e-12 {
		t.Fatalf("partial correlation = %v, %v, want 0.8", r, ok)
	}
	if _, ok := Pearson([]float64{1, 2}, []float64{1}); ok {
		t.Fatalf("mismatched lengths should be undetermined")
	}
	if _, ok := Pearson([]float64{1}, []float64{1}); ok {
		t.Fatalf("single pair should be undetermined")
	}
	if _, ok := Pearson([]float64{3, 3, 3}, []float64{1, 2, 3}); ok {
		t.Fatalf("zero variance should be undetermined")
	}
}

func rankedFixture(rows ...RankedRow) *RankedTable {
	return &RankedTable{
		Subset:   DraftedOnly,
		GroupKey: Detailed,
		Metrics:  combine.DefaultMetrics(),
		Rows:     rows,
		Tables:   combine.NewTables(),
	}
}

func row(id int, key string, order float64, deciles map[combine.Metric]int) RankedRow {
	return RankedRow{
		Player:   combine.Player{ID: id, Pos: key, Draft: combine.DraftInfo{Drafted: true, Order: order}},
		Key:      key,
		Position: deciles,
		Global:   map[combine.Metric]int{},
	}
}

func TestImportance_RankOneIsStrongest(t *testing.T) {
	ranked := rankedFixture(
		row(0, "WR", 1, map[combine.Metric]int{combine.Forty: 9, combine.Bench: 3}),
		row(1, "WR", 20, map[combine.Metric]int{combine.Forty: 5, combine.Bench: 9}),
		row(2, "WR", 40, map[combine.Metric]int{combine.Forty: 1, combine.Bench: 4}),
	)
	got := Importance(ranked, quiet())
	if len(got) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(got))
	}
	if got[0].Metric != combine.Forty || got[0].Rank != 1 {
		t.Fatalf("rank 1 = %+v, want 40yd", got[0])
	}
	for _, e := range got[1:] {
		if e.Importance > got[0].Importance {
			t.Errorf("%s importance %v beats rank 1", e.Metric, e.Importance)
		}
	}
	for i, e := range got {
		if e.Rank != i+1 {
			t.Errorf("entry %d rank = %d", i, e.Rank)
		}
	}
}

func TestImportance_TiesAndUndetermined(t *testing.T) {
	// Vertical and 40yd carry identical deciles, so they tie exactly
	ranked := rankedFixture(
		row(0, "CB", 1, map[combine.Metric]int{combine.Forty: 9, combine.Vertical: 9}),
		row(1, "CB", 30, map[combine.Metric]int{combine.Forty: 0, combine.Vertical: 0}),
		row(2, "ST", 30, map[combine.Metric]int{combine.Forty: 0}),
	)
	got := Importance(ranked, quiet())
	wantOrder := []combine.Metric{combine.Forty, combine.Vertical, combine.ThreeCone, combine.Bench, combine.BroadJump, combine.Shuttle}
	if len(got) != len(wantOrder) {
		t.Fatalf("expected %d entries (ST excluded), got %d", len(wantOrder), len(got))
	}
	for i, m := range wantOrder {
		if got[i].Metric != m || got[i].Position != "CB" {
			t.Errorf("entry %d = %s/%s, want CB/%s", i, got[i].Position, got[i].Metric, m)
		}
	}
	if got[0].Importance != 1 || got[1].Importance != 1 {
		t.Errorf("tied importance = %v, %v", got[0].Importance, got[1].Importance)
	}
	for _, e := range got[2:] {
		if !e.Undetermined || e.Importance != 0 || e.Samples != 0 {
			t.Errorf("%s = %+v, want undetermined", e.Metric, e)
		}
	}

	again := Importance(ranked, quiet())
	for i := range got {
		if got[i] != again[i] {
			t.Fatalf("non-deterministic order at %d: %+v vs %+v", i, got[i], again[i])
		}
	}
}

func TestImportance_NoExclusions(t *testing.T) {
	ranked := rankedFixture(row(0, "ST", 1, map[combine.Metric]int{combine.Forty: 3}))
	got := Importance(ranked, quiet(), WithExcludedPositions())
	if len(got) != 6 || got[0].Position != "ST" {
		t.Fatalf("expected ST entries, got %+v", got)
	}
}

func TestImportance_DetailedKeyDropsSpecialTeams(t *testing.T) {
	players := receivers(4)
	for i := 0; i < 4; i++ {
		players = append(players, player(10+i, "K", true, float64(100+i), map[combine.Metric]float64{
			combine.Forty: 5.0 + 0.1*float64(i),
			combine.Bench: float64(5 + i),
		}))
	}
	ranked, err := Rank(players, DraftedOnly, Detailed, quiet(), WithMinDecileSamples(2))
	if err != nil {
		t.Fatalf("Rank error: %v", err)
	}

	entries := Importance(ranked, quiet())
	if len(entries) != 6 {
		t.Fatalf("expected only the 6 WR entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Position != "WR" {
			t.Errorf("unexpected importance entry for %s", e.Position)
		}
	}
	for _, r := range LongForm(ranked, "", quiet()) {
		if r.PositionCode == "K" {
			t.Fatalf("kicker %s leaked into long form", r.Player)
		}
	}

	// with no exclusions the kickers come back under their own key
	all := Importance(ranked, quiet(), WithExcludedPositions())
	if len(all) != 12 {
		t.Fatalf("expected WR and K entries, got %d", len(all))
	}
}

package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tyler180/combine-rankings/internal/combine"
)

func longFixture() *RankedTable {
	rows := []RankedRow{
		{Player: combine.Player{ID: 0, Name: "A"}, Key: "WR", Global: map[combine.Metric]int{combine.Forty: 99, combine.Bench: 10}},
		{Player: combine.Player{ID: 1, Name: "B"}, Key: "QB", Global: map[combine.Metric]int{combine.Forty: 40}},
		{Player: combine.Player{ID: 2, Name: "C"}, Key: "WR", Global: map[combine.Metric]int{combine.Forty: 0, combine.Shuttle: 60}},
		{Player: combine.Player{ID: 3, Name: "D"}, Key: "ST", Global: map[combine.Metric]int{combine.Forty: 5}},
	}
	return rankedFixture(rows...)
}

func TestLongForm_RoundTrip(t *testing.T) {
	ranked := longFixture()
	got := Pivot(LongForm(ranked, "", quiet()))
	want := map[int]map[combine.Metric]int{
		0: {combine.Forty: 99, combine.Bench: 10},
		1: {combine.Forty: 40},
		2: {combine.Forty: 0, combine.Shuttle: 60},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pivot mismatch (-want +got):\n%s", diff)
	}
}

func TestLongForm_DisplayNamesAndFilter(t *testing.T) {
	rows := LongForm(longFixture(), "wide receiver", quiet())
	if len(rows) != 4 {
		t.Fatalf("expected 4 WR rows, got %d", len(rows))
	}
	first := rows[0]
	want := EAVRow{PlayerID: 0, Player: "A", Metric: combine.Forty, Event: "40 Yard Dash", PositionCode: "WR", Position: "Wide Receiver", Result: 99}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
	if byCode := LongForm(longFixture(), "QB", quiet()); len(byCode) != 1 {
		t.Fatalf("expected 1 QB row, got %d", len(byCode))
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(LongForm(longFixture(), "", quiet()))
	want := []EventSummary{
		{Position: "Quarterback", Event: "40 Yard Dash", Mean: 40, Count: 1},
		{Position: "Wide Receiver", Event: "40 Yard Dash", Mean: 49.5, Count: 2},
		{Position: "Wide Receiver", Event: "Bench Press", Mean: 10, Count: 1},
		{Position: "Wide Receiver", Event: "Shuttle Run", Mean: 60, Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}

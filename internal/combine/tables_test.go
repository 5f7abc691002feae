package combine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTables_Defaults(t *testing.T) {
	tabs := NewTables()
	if got := tabs.Fixup("db"); got != "S" {
		t.Errorf("Fixup(db) = %q, want S", got)
	}
	if got := tabs.Fixup("LS"); got != "C" {
		t.Errorf("Fixup(LS) = %q, want C", got)
	}
	if got := tabs.Fixup("WR"); got != "WR" {
		t.Errorf("Fixup(WR) = %q, want WR", got)
	}
	for in, want := range map[string]string{"ILB": "LB", "OLB": "LB", "DE": "DL", "K": "ST", "QB": "QB", "??": "??"} {
		if got := tabs.GroupOf(in); got != want {
			t.Errorf("GroupOf(%q) = %q, want %q", in, got, want)
		}
	}
	if got := tabs.MetricName(Forty); got != "40 Yard Dash" {
		t.Errorf("MetricName(40yd) = %q", got)
	}
	if got := tabs.PositionName("RB"); got != "Running Back" {
		t.Errorf("PositionName(RB) = %q", got)
	}
	if got := tabs.PositionName("ZZ"); got != "ZZ" {
		t.Errorf("PositionName(ZZ) = %q, want passthrough", got)
	}
}

func TestTables_Overrides(t *testing.T) {
	tabs := NewTables(
		WithPositionFixups(map[string]string{"db": "", "FL": "WR"}),
		WithPositionGroups(map[string]string{"qb": "SKILL", "C": ""}),
		WithMetricNames(map[string]string{"Bench": "225lb Bench"}),
		WithMetrics([]MetricSpec{{Metric: Bench, Direction: HigherIsBetter}}),
		WithDropColumns([]string{"College", "Link"}),
	)
	if got := tabs.Fixup("DB"); got != "DB" {
		t.Errorf("removed fixup still applied: %q", got)
	}
	if got := tabs.Fixup("FL"); got != "WR" {
		t.Errorf("Fixup(FL) = %q, want WR", got)
	}
	if got := tabs.GroupOf("QB"); got != "SKILL" {
		t.Errorf("GroupOf(QB) = %q, want SKILL", got)
	}
	if got := tabs.GroupOf("C"); got != "C" {
		t.Errorf("GroupOf(C) = %q, want passthrough", got)
	}
	if got := tabs.MetricName(Bench); got != "225lb Bench" {
		t.Errorf("MetricName(Bench) = %q", got)
	}
	if diff := cmp.Diff([]MetricSpec{{Metric: Bench, Direction: HigherIsBetter}}, tabs.Metrics()); diff != "" {
		t.Errorf("metrics mismatch (-want +got):\n%s", diff)
	}
	if !tabs.dropped("link") {
		t.Error("expected Link to be dropped")
	}
	// defaults are untouched by another instance's overrides
	if got := NewTables().Fixup("DB"); got != "S" {
		t.Errorf("default Fixup(DB) = %q, want S", got)
	}
}

func TestTables_MetricsCopy(t *testing.T) {
	tabs := NewTables()
	m := tabs.Metrics()
	m[0].Direction = HigherIsBetter
	if tabs.Metrics()[0].Direction != LowerIsBetter {
		t.Fatal("Metrics() exposed internal slice")
	}
}

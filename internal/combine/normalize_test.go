package combine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tyler180/combine-rankings/internal/pfr"
)

var header = []string{"Player", "Pos", "School", "College", "Ht", "Wt", "40yd", "Vertical",
	"Bench", "Broad Jump", "3Cone", "Shuttle", "Drafted (tm/rnd/yr)"}

func rawTable(year int, rows ...[]string) pfr.RawTable {
	return pfr.RawTable{Year: year, Header: header, Rows: rows}
}

func ptr(f float64) *float64 { return &f }

func TestNormalize_MergesStripsAndCoerces(t *testing.T) {
	t2000 := rawTable(2000,
		[]string{"A One", "QB", "State", "College Stats", "6-2", "220", "4.71", "31.5", "", "115", "7.05", "4.30", "Pittsburgh Steelers / 1st / 10th pick / 2000"},
		header,
		[]string{"B Two", "DB", "Tech", "College Stats", "6-0", "195", "4.45", "", "14", "", "", "", ""},
	)
	t2001 := rawTable(2001,
		[]string{"C Three", "LS", "U", "", "6-3", "", "", "", "", "", "", "", ""},
	)

	got, err := Normalize([]pfr.RawTable{t2000, t2001}, NewTables())
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 players, got %d", len(got))
	}

	want := []Player{
		{
			ID: 0, Name: "A One", Pos: "QB", School: "State", Height: "6-2", Weight: ptr(220),
			Metrics:     map[Metric]float64{Forty: 4.71, Vertical: 31.5, BroadJump: 115, ThreeCone: 7.05, Shuttle: 4.30},
			CombineYear: 2000, DraftText: "Pittsburgh Steelers / 1st / 10th pick / 2000",
		},
		{
			ID: 1, Name: "B Two", Pos: "S", School: "Tech", Height: "6-0", Weight: ptr(195),
			Metrics:     map[Metric]float64{Forty: 4.45, Bench: 14},
			CombineYear: 2000,
		},
		{
			ID: 2, Name: "C Three", Pos: "C", School: "U", Height: "6-3",
			Metrics:     map[Metric]float64{},
			CombineYear: 2001,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("players mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_KeepsUnknownColumnsDropsLinks(t *testing.T) {
	tbl := pfr.RawTable{
		Year:   2005,
		Header: append(append([]string(nil), header...), "AV"),
		Rows:   [][]string{{"A", "WR", "S", "College Stats", "6-1", "200", "4.4", "", "", "", "", "", "", "12"}},
	}
	got, err := Normalize([]pfr.RawTable{tbl}, NewTables())
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"AV": "12"}, got[0].Extra); diff != "" {
		t.Fatalf("extra mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	_, err := Normalize(nil, NewTables())
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
}

func TestNormalize_MalformedNumeric(t *testing.T) {
	tbl := rawTable(2003, []string{"A", "RB", "S", "", "5-11", "205", "4.5*", "", "", "", "", "", ""})
	_, err := Normalize([]pfr.RawTable{tbl}, NewTables())
	var malformed *MalformedNumericValueError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want MalformedNumericValueError", err)
	}
	if malformed.Column != "40yd" || malformed.Value != "4.5*" || malformed.Year != 2003 || malformed.Row != 0 {
		t.Fatalf("unexpected error detail: %+v", malformed)
	}
}

func TestNormalize_NonFiniteIsMalformed(t *testing.T) {
	cases := []struct {
		name   string
		row    []string
		column string
		value  string
	}{
		{"nan metric", []string{"A", "RB", "S", "", "", "205", "", "NaN", "", "", "", "", ""}, "Vertical", "NaN"},
		{"lower nan", []string{"A", "RB", "S", "", "", "205", "", "", "nan", "", "", "", ""}, "Bench", "nan"},
		{"inf metric", []string{"A", "RB", "S", "", "", "205", "Inf", "", "", "", "", "", ""}, "40yd", "Inf"},
		{"nan weight", []string{"A", "RB", "S", "", "", "NaN", "", "", "", "", "", "", ""}, ColWeight, "NaN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize([]pfr.RawTable{rawTable(2004, tc.row)}, NewTables())
			var malformed *MalformedNumericValueError
			if !errors.As(err, &malformed) {
				t.Fatalf("err = %v, want MalformedNumericValueError", err)
			}
			if malformed.Column != tc.column || malformed.Value != tc.value {
				t.Fatalf("unexpected error detail: %+v", malformed)
			}
		})
	}
}

func TestNormalize_MissingColumn(t *testing.T) {
	tbl := pfr.RawTable{Year: 2002, Header: []string{"Player", "Pos", "Wt"}, Rows: [][]string{{"A", "QB", "200"}}}
	_, err := Normalize([]pfr.RawTable{tbl}, NewTables())
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}
}

func TestLoad_DraftAndGroup(t *testing.T) {
	tbl := rawTable(2010,
		[]string{"A", "OLB", "S", "", "", "240", "4.6", "", "", "", "", "", "Dallas Cowboys / 3rd / 74th pick / 2010"},
		[]string{"B", "XX", "S", "", "", "240", "", "", "", "", "", "", ""},
	)
	got, err := Load([]pfr.RawTable{tbl}, NewTables())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got[0].Group != "LB" || got[1].Group != "XX" {
		t.Fatalf("groups = %q, %q; want LB, XX", got[0].Group, got[1].Group)
	}
	if !got[0].Draft.Drafted || got[0].Draft.Order != 74+64 {
		t.Fatalf("draft = %+v", got[0].Draft)
	}
	if got[1].Draft.Drafted {
		t.Fatalf("undrafted player parsed as drafted: %+v", got[1].Draft)
	}
}

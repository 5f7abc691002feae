package pfr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const combineHTML = `<html><body>
<div id="all_combine">
<!--
<table id="combine">
  <thead>
    <tr>
      <th data-stat="player">Player</th><th data-stat="pos">Pos</th><th data-stat="school_name">School</th>
      <th data-stat="college">College</th><th data-stat="height">Ht</th><th data-stat="weight">Wt</th>
      <th data-stat="forty_yd">40yd</th><th data-stat="vertical">Vertical</th><th data-stat="bench_reps">Bench</th>
      <th data-stat="broad_jump">Broad Jump</th><th data-stat="cone">3Cone</th><th data-stat="shuttle">Shuttle</th>
      <th data-stat="draft_info">Drafted (tm/rnd/yr)</th>
    </tr>
  </thead>
  <tbody>
    <tr>
      <th data-stat="player"><a href="/players/J/JohnDo00.htm">John  Doe</a></th><td>QB</td><td>State</td>
      <td><a href="https://www.sports-reference.com/cfb/players/john-doe-1.html">College Stats</a></td>
      <td>6-2</td><td>220</td><td>4.71</td><td>31.5</td><td></td><td>115</td><td>7.05</td><td>4.30</td>
      <td>Pittsburgh Steelers / 1st / 10th pick / 2010</td>
    </tr>
    <tr class="thead">
      <th>Player</th><th>Pos</th><th>School</th><th>College</th><th>Ht</th><th>Wt</th><th>40yd</th>
      <th>Vertical</th><th>Bench</th><th>Broad Jump</th><th>3Cone</th><th>Shuttle</th><th>Drafted (tm/rnd/yr)</th>
    </tr>
    <tr>
      <th data-stat="player">Jim Roe</th><td>DB</td><td>Tech</td><td></td><td>6-0</td><td>195</td><td>4.45</td>
      <td></td><td>14</td><td></td><td></td><td></td><td></td>
    </tr>
  </tbody>
</table>
-->
</div>
</body></html>`

func TestParseCombineTable_CommentedTable(t *testing.T) {
	got, err := ParseCombineTable(combineHTML, 2010)
	if err != nil {
		t.Fatalf("ParseCombineTable error: %v", err)
	}
	if got.Year != 2010 {
		t.Fatalf("Year = %d, want 2010", got.Year)
	}
	wantHeader := []string{"Player", "Pos", "School", "College", "Ht", "Wt", "40yd", "Vertical",
		"Bench", "Broad Jump", "3Cone", "Shuttle", "Drafted (tm/rnd/yr)"}
	if diff := cmp.Diff(wantHeader, got.Header); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
	if len(got.Rows) != 3 {
		t.Fatalf("expected 3 body rows (repeated header kept), got %d", len(got.Rows))
	}
	if got.Rows[0][0] != "John Doe" {
		t.Errorf("player = %q, want whitespace-collapsed %q", got.Rows[0][0], "John Doe")
	}
	if got.Rows[1][5] != "Wt" {
		t.Errorf("repeated header row weight cell = %q, want Wt", got.Rows[1][5])
	}
	if c := got.Column("broad jump"); c != 9 {
		t.Errorf("Column(broad jump) = %d, want 9", c)
	}
	if v := got.Cell(0, got.Column("Drafted (tm/rnd/yr)")); v != "Pittsburgh Steelers / 1st / 10th pick / 2010" {
		t.Errorf("draft cell = %q", v)
	}
	if v := got.Cell(2, 99); v != "" {
		t.Errorf("out of range cell = %q, want empty", v)
	}
}

func TestParseCombineTable_FallbackToPlayerHeader(t *testing.T) {
	html := `<table id="other"><thead><tr><th>Team</th></tr></thead><tbody><tr><td>SEA</td></tr></tbody></table>
<table><thead><tr><th>Player</th><th>Wt</th></tr></thead><tbody><tr><td>A</td><td>200</td></tr></tbody></table>`
	got, err := ParseCombineTable(html, 2001)
	if err != nil {
		t.Fatalf("ParseCombineTable error: %v", err)
	}
	if len(got.Rows) != 1 || got.Rows[0][1] != "200" {
		t.Fatalf("unexpected rows: %+v", got.Rows)
	}
}

func TestParseCombineTable_NoTable(t *testing.T) {
	_, err := ParseCombineTable(`<html><body><p>nothing</p></body></html>`, 2001)
	if !errors.Is(err, ErrNoTable) {
		t.Fatalf("err = %v, want ErrNoTable", err)
	}
}

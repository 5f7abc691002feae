package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tyler180/combine-rankings/internal/analysis"
	"github.com/tyler180/combine-rankings/internal/combine"
	"github.com/tyler180/combine-rankings/internal/store"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func cell(m map[combine.Metric]int, metric combine.Metric) string {
	if v, ok := m[metric]; ok {
		return strconv.Itoa(v)
	}
	return ""
}

func renderRanked(w io.Writer, ranked *analysis.RankedTable, limit int) {
	t := newTable(w)
	hdr := table.Row{"Player", "Pos", "Key", "Year", "Draft"}
	for _, spec := range ranked.Metrics {
		hdr = append(hdr, analysis.GlobalColumn(spec.Metric))
	}
	for _, spec := range ranked.Metrics {
		hdr = append(hdr, analysis.PositionColumn(spec.Metric))
	}
	hdr = append(hdr, "Composite")
	t.AppendHeader(hdr)

	for i, r := range ranked.Rows {
		if limit > 0 && i >= limit {
			break
		}
		draft := ""
		if r.Player.Draft.Drafted {
			draft = fmt.Sprintf("%.0f", r.Player.Draft.Order)
		}
		row := table.Row{r.Player.Name, r.Player.Pos, r.Key, r.Player.CombineYear, draft}
		for _, spec := range ranked.Metrics {
			row = append(row, cell(r.Global, spec.Metric))
		}
		for _, spec := range ranked.Metrics {
			row = append(row, cell(r.Position, spec.Metric))
		}
		comp := ""
		if r.Composite != nil {
			comp = fmt.Sprintf("%.2f", *r.Composite)
		}
		t.AppendRow(append(row, comp))
	}
	t.Render()
}

func renderImportance(w io.Writer, entries []analysis.ImportanceEntry, tabs combine.Tables) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Position", "Rank", "Event", "Importance", "Samples"})
	for _, e := range entries {
		imp := fmt.Sprintf("%.3f", e.Importance)
		if e.Undetermined {
			imp += " (n/a)"
		}
		t.AppendRow(table.Row{tabs.PositionName(e.Position), e.Rank, e.Event, imp, e.Samples})
	}
	t.Render()
}

func renderStoredImportance(w io.Writer, items []store.ImportanceItem, tabs combine.Tables) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Position", "Rank", "Event", "Importance", "Samples", "Run"})
	for _, it := range items {
		imp := fmt.Sprintf("%.3f", it.Importance)
		if it.Undetermined {
			imp += " (n/a)"
		}
		t.AppendRow(table.Row{tabs.PositionName(it.Position), it.Rank, it.Event, imp, it.Samples, it.RunID})
	}
	t.Render()
}

func renderLongForm(w io.Writer, rows []analysis.EAVRow) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Player", "Position", "Event", "Result"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Player, r.Position, r.Event, r.Result})
	}
	t.Render()
}

func renderSummary(w io.Writer, rows []analysis.EventSummary) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Position", "Event", "Mean", "Count"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Position, r.Event, fmt.Sprintf("%.1f", r.Mean), r.Count})
	}
	t.Render()
}

func renderWarnings(w io.Writer, ws []analysis.SampleWarning) {
	for _, s := range ws {
		fmt.Fprintln(w, s.String())
	}
}

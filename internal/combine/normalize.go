package combine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tyler180/combine-rankings/internal/pfr"
)

type columns struct {
	player, pos, school, height, weight, draft int
	metrics                                    map[Metric]int
	known                                      map[int]struct{}
}

func resolveColumns(t pfr.RawTable, tabs Tables) (columns, error) {
	c := columns{
		player:  t.Column(ColPlayer),
		pos:     t.Column(ColPos),
		school:  t.Column(ColSchool),
		height:  t.Column(ColHeight),
		weight:  t.Column(ColWeight),
		draft:   t.Column(ColDraft),
		metrics: make(map[Metric]int),
		known:   make(map[int]struct{}),
	}
	required := map[string]int{ColPlayer: c.player, ColPos: c.pos, ColWeight: c.weight, ColDraft: c.draft}
	for _, spec := range tabs.Metrics() {
		idx := t.Column(string(spec.Metric))
		c.metrics[spec.Metric] = idx
		required[string(spec.Metric)] = idx
	}
	for label, idx := range required {
		if idx < 0 {
			return c, fmt.Errorf("combine %d: %w %q", t.Year, ErrMissingColumn, label)
		}
	}
	for _, idx := range []int{c.player, c.pos, c.school, c.height, c.weight, c.draft} {
		c.known[idx] = struct{}{}
	}
	for _, idx := range c.metrics {
		c.known[idx] = struct{}{}
	}
	return c, nil
}

// parseNumeric coerces one cell. Empty means not measured; NaN and Inf are
// malformed.
func parseNumeric(s string) (*float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, false
	}
	return &f, true
}

// isRepeatedHeader reports whether a body row is one of the header rows PFR
// repeats inside the table: its weight cell carries the weight label.
func isRepeatedHeader(t pfr.RawTable, row int, c columns) bool {
	return strings.EqualFold(t.Cell(row, c.weight), strings.TrimSpace(t.Header[c.weight]))
}

// Normalize concatenates the yearly tables in the order given and returns one
// Player per real row. Draft text is carried but not parsed; see ParseDrafts.
func Normalize(tables []pfr.RawTable, tabs Tables) ([]Player, error) {
	if len(tables) == 0 {
		return nil, ErrEmptyInput
	}
	out := make([]Player, 0, 350*len(tables))
	for _, t := range tables {
		c, err := resolveColumns(t, tabs)
		if err != nil {
			return nil, err
		}
		for r := range t.Rows {
			// these are header rows, not actual players.
			if isRepeatedHeader(t, r, c) {
				continue
			}
			p := Player{
				ID:          len(out),
				Name:        t.Cell(r, c.player),
				Pos:         tabs.Fixup(t.Cell(r, c.pos)),
				School:      t.Cell(r, c.school),
				Height:      t.Cell(r, c.height),
				CombineYear: t.Year,
				DraftText:   t.Cell(r, c.draft),
				Metrics:     make(map[Metric]float64, len(c.metrics)),
			}

			w, ok := parseNumeric(t.Cell(r, c.weight))
			if !ok {
				return nil, &MalformedNumericValueError{Year: t.Year, Row: r, Column: ColWeight, Value: t.Cell(r, c.weight)}
			}
			p.Weight = w

			for _, spec := range tabs.Metrics() {
				idx := c.metrics[spec.Metric]
				v, ok := parseNumeric(t.Cell(r, idx))
				if !ok {
					return nil, &MalformedNumericValueError{Year: t.Year, Row: r, Column: string(spec.Metric), Value: t.Cell(r, idx)}
				}
				if v != nil {
					p.Metrics[spec.Metric] = *v
				}
			}

			for i, label := range t.Header {
				if _, ok := c.known[i]; ok || tabs.dropped(label) || label == "" {
					continue
				}
				if p.Extra == nil {
					p.Extra = make(map[string]string)
				}
				p.Extra[label] = t.Cell(r, i)
			}
			out = append(out, p)
		}
	}
	return out, nil
}

// Load runs the full normalization: Normalize, ParseDrafts, Group.
func Load(tables []pfr.RawTable, tabs Tables) ([]Player, error) {
	players, err := Normalize(tables, tabs)
	if err != nil {
		return nil, err
	}
	return Group(ParseDrafts(players), tabs), nil
}

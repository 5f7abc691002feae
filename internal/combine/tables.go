package combine

import "strings"

// Column labels as printed on the combine page.
const (
	ColPlayer = "Player"
	ColPos    = "Pos"
	ColSchool = "School"
	ColHeight = "Ht"
	ColWeight = "Wt"
	ColDraft  = "Drafted (tm/rnd/yr)"
)

// Tables bundles the static lookups the pipeline reads: metric directions,
// position fix-ups and groups, display names and dropped columns. A Tables
// value is immutable once built; accessors return copies.
type Tables struct {
	metrics       []MetricSpec
	fixups        map[string]string
	groups        map[string]string
	metricNames   map[Metric]string
	positionNames map[string]string
	dropColumns   []string
}

type TablesOption func(*Tables)

// WithMetrics replaces the ranked metric list and directions.
func WithMetrics(specs []MetricSpec) TablesOption {
	return func(t *Tables) {
		if len(specs) > 0 {
			t.metrics = append([]MetricSpec(nil), specs...)
		}
	}
}

// WithPositionFixups merges rewrites into the defaults; an empty target
// removes the default rewrite for that code.
func WithPositionFixups(m map[string]string) TablesOption {
	return func(t *Tables) { mergeCodes(t.fixups, m) }
}

// WithPositionGroups merges detailed→group entries into the defaults; an
// empty group removes the mapping.
func WithPositionGroups(m map[string]string) TablesOption {
	return func(t *Tables) { mergeCodes(t.groups, m) }
}

func WithMetricNames(m map[string]string) TablesOption {
	return func(t *Tables) {
		for k, v := range m {
			if strings.TrimSpace(v) == "" {
				delete(t.metricNames, Metric(k))
				continue
			}
			t.metricNames[Metric(k)] = v
		}
	}
}

func WithPositionNames(m map[string]string) TablesOption {
	return func(t *Tables) {
		for k, v := range m {
			k = strings.ToUpper(strings.TrimSpace(k))
			if strings.TrimSpace(v) == "" {
				delete(t.positionNames, k)
				continue
			}
			t.positionNames[k] = v
		}
	}
}

// WithDropColumns replaces the list of link-only columns removed during
// normalization.
func WithDropColumns(cols []string) TablesOption {
	return func(t *Tables) {
		if cols != nil {
			t.dropColumns = append([]string(nil), cols...)
		}
	}
}

func mergeCodes(dst, src map[string]string) {
	for k, v := range src {
		k = strings.ToUpper(strings.TrimSpace(k))
		v = strings.ToUpper(strings.TrimSpace(v))
		if k == "" {
			continue
		}
		if v == "" {
			delete(dst, k)
			continue
		}
		dst[k] = v
	}
}

// DefaultMetrics are the six events ranked by the pipeline.
func DefaultMetrics() []MetricSpec {
	return []MetricSpec{
		{Metric: Forty, Direction: LowerIsBetter},
		{Metric: Vertical, Direction: HigherIsBetter},
		{Metric: Bench, Direction: HigherIsBetter},
		{Metric: BroadJump, Direction: HigherIsBetter},
		{Metric: ThreeCone, Direction: LowerIsBetter},
		{Metric: Shuttle, Direction: LowerIsBetter},
	}
}

// NewTables builds the default lookups and applies opts on top.
func NewTables(opts ...TablesOption) Tables {
	t := Tables{
		metrics: DefaultMetrics(),
		fixups: map[string]string{
			"DB": "S", // curse you, Minkah Fitzpatrick
			"LS": "C", // long snappers
		},
		groups: map[string]string{
			"ILB": "LB", "OLB": "LB",
			"DE": "DL", "DT": "DL", "EDGE": "DL",
			"OT": "OL", "OG": "OL", "C": "OL",
			"FS": "S", "SS": "S",
			"FB": "RB",
			"K": "ST", "P": "ST",
		},
		metricNames: map[Metric]string{
			Forty:     "40 Yard Dash",
			Vertical:  "Vertical Jump",
			Bench:     "Bench Press",
			BroadJump: "Broad Jump",
			ThreeCone: "3 Cone Drill",
			Shuttle:   "Shuttle Run",
		},
		positionNames: map[string]string{
			"QB": "Quarterback", "RB": "Running Back", "FB": "Fullback",
			"WR": "Wide Receiver", "TE": "Tight End",
			"OL": "Offensive Line", "OT": "Offensive Tackle", "OG": "Offensive Guard", "C": "Center",
			"DL": "Defensive Line", "DE": "Defensive End", "DT": "Defensive Tackle", "EDGE": "Edge Rusher",
			"LB": "Linebacker", "ILB": "Inside Linebacker", "OLB": "Outside Linebacker",
			"CB": "Cornerback", "S": "Safety", "FS": "Free Safety", "SS": "Strong Safety",
			"K": "Kicker", "P": "Punter", "ST": "Special Teams",
		},
		dropColumns: []string{"College"}, // this is a link to college stats.
	}
	for _, o := range opts {
		o(&t)
	}
	return t
}

// Metrics returns the ranked metrics in declaration order.
func (t Tables) Metrics() []MetricSpec {
	return append([]MetricSpec(nil), t.metrics...)
}

// Fixup rewrites rare or legacy codes; other codes come back upper-cased.
func (t Tables) Fixup(pos string) string {
	pos = strings.ToUpper(strings.TrimSpace(pos))
	if v, ok := t.fixups[pos]; ok {
		return v
	}
	return pos
}

// GroupOf maps a detailed code to its coarse group; unmapped codes pass through.
func (t Tables) GroupOf(pos string) string {
	pos = strings.ToUpper(strings.TrimSpace(pos))
	if g, ok := t.groups[pos]; ok {
		return g
	}
	return pos
}

// MetricName is the display name of a metric, or its code.
func (t Tables) MetricName(m Metric) string {
	if n, ok := t.metricNames[m]; ok {
		return n
	}
	return string(m)
}

// PositionName is the display name of a position or group code, or the code.
func (t Tables) PositionName(code string) string {
	if n, ok := t.positionNames[strings.ToUpper(code)]; ok {
		return n
	}
	return code
}

func (t Tables) dropped(label string) bool {
	for _, c := range t.dropColumns {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(label)) {
			return true
		}
	}
	return false
}

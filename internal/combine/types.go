// Package combine turns raw yearly combine tables into normalized player
// records: header rows stripped, numeric columns coerced, legacy position
// codes rewritten, draft text parsed and positions grouped.
package combine

// Metric is a combine event, named by its PFR column label.
type Metric string

const (
	Forty     Metric = "40yd"
	Vertical  Metric = "Vertical"
	Bench     Metric = "Bench"
	BroadJump Metric = "Broad Jump"
	ThreeCone Metric = "3Cone"
	Shuttle   Metric = "Shuttle"
)

// Direction says which end of a metric is good.
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

func (d Direction) String() string {
	if d == LowerIsBetter {
		return "lower"
	}
	return "higher"
}

// MetricSpec declares a metric and its ordering.
type MetricSpec struct {
	Metric    Metric
	Direction Direction
}

// Player is one combine participant for one combine year.
type Player struct {
	// ID is the row position in the normalized table and the identity every
	// derived column is keyed by.
	ID          int
	Name        string
	Pos         string
	Group       string
	School      string
	Height      string
	Weight      *float64
	Metrics     map[Metric]float64 // absent key = not measured
	CombineYear int
	DraftText   string
	Draft       DraftInfo
	// Extra holds the remaining page columns by header label.
	Extra map[string]string
}

// Metric returns the measured value, if any.
func (p Player) Metric(m Metric) (float64, bool) {
	v, ok := p.Metrics[m]
	return v, ok
}

// DraftInfo is the structured form of the "Drafted (tm/rnd/yr)" cell.
type DraftInfo struct {
	Drafted bool
	Team    string
	Round   int
	Pick    int
	Year    string
	// Order approximates overall pick number; meaningful only when Drafted.
	Order float64
}

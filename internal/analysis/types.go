// Package analysis ranks normalized combine results: global percentiles,
// position-relative deciles, a composite score per player and, per position,
// how strongly each event tracks draft order.
package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tyler180/combine-rankings/internal/combine"
)

// ErrInvalidArgument is returned for an unknown subset or group key.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	PercentileBuckets = 100
	DecileBuckets     = 10
	// DefaultMinDecileSamples is the fewest measurements a position+metric
	// pair needs before it is split into deciles.
	DefaultMinDecileSamples = 10
)

// Subset selects which players the ranks are relative to.
type Subset string

const (
	DraftedOnly Subset = "drafted-only"
	AllPlayers  Subset = "all"
)

func ParseSubset(s string) (Subset, error) {
	switch Subset(strings.ToLower(strings.TrimSpace(s))) {
	case DraftedOnly, "drafted":
		return DraftedOnly, nil
	case AllPlayers:
		return AllPlayers, nil
	}
	return "", fmt.Errorf("subset %q: %w", s, ErrInvalidArgument)
}

func (s Subset) includes(p combine.Player) bool {
	return s == AllPlayers || p.Draft.Drafted
}

// GroupKey selects the position column deciles are computed within.
type GroupKey string

const (
	Detailed GroupKey = "detailed"
	General  GroupKey = "general"
)

func ParseGroupKey(s string) (GroupKey, error) {
	switch GroupKey(strings.ToLower(strings.TrimSpace(s))) {
	case Detailed:
		return Detailed, nil
	case General:
		return General, nil
	}
	return "", fmt.Errorf("group key %q: %w", s, ErrInvalidArgument)
}

func (k GroupKey) of(p combine.Player) string {
	if k == General {
		return p.Group
	}
	return p.Pos
}

// RankedRow is one player's rank record.
type RankedRow struct {
	Player combine.Player
	// Key is the position code deciles were computed within.
	Key string
	// Global holds percentiles 0..99; a missing metric had no measurement.
	Global map[combine.Metric]int
	// Position holds deciles 0..9; missing when unmeasured or when the
	// position had too few measurements.
	Position map[combine.Metric]int
	// Composite is the mean of the available deciles, nil when none.
	Composite *float64
}

// SampleWarning records a position+metric pair left without deciles.
type SampleWarning struct {
	Key      string
	Metric   combine.Metric
	Count    int
	Required int
}

func (w SampleWarning) String() string {
	return fmt.Sprintf("on position %s, can't do metric %s (%d of %d samples)", w.Key, w.Metric, w.Count, w.Required)
}

// RankedTable is the output of one ranking run.
type RankedTable struct {
	Subset   Subset
	GroupKey GroupKey
	Metrics  []combine.MetricSpec
	Rows     []RankedRow
	Warnings []SampleWarning
	// Tables are the lookups the run used; downstream reshaping reuses them.
	Tables combine.Tables
}

// ImportanceEntry is one cell of the position × rank heatmap.
type ImportanceEntry struct {
	Position   string
	Metric     combine.Metric
	Event      string
	Rank       int
	Importance float64
	Samples    int
	// Undetermined marks a correlation that could not be computed (fewer
	// than two pairs or zero variance); Importance is 0.
	Undetermined bool
}

// EAVRow is one (player, event, position) percentile.
type EAVRow struct {
	PlayerID     int
	Player       string
	Metric       combine.Metric
	Event        string
	PositionCode string
	Position     string
	Result       int
}

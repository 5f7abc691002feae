package rankings

import (
	"encoding/json"

	"github.com/tyler180/combine-rankings/internal/analysis"
	"github.com/tyler180/combine-rankings/internal/store"
)

// Event is the Lambda payload.
type Event struct {
	Mode      string `json:"mode"`       // rank | export | heatmap
	Subset    string `json:"subset"`     // drafted-only | all
	GroupKey  string `json:"group_key"`  // detailed | general
	YearStart *int   `json:"year_start"` // falls back to config
	YearEnd   *int   `json:"year_end"`
	Position  string `json:"position"` // long-form filter; heatmap position code
}

// Raw is used by Lambda entrypoint to avoid tight coupling to the event type at the edge.
type Raw = json.RawMessage

// Request is one pipeline run.
type Request struct {
	Subset   analysis.Subset
	GroupKey analysis.GroupKey
	Years    []int
	Position string
}

// Result summarizes a run for the Lambda response and the CLI.
type Result struct {
	OK         bool     `json:"ok"`
	Mode       string   `json:"mode"`
	RunID      string   `json:"run_id,omitempty"`
	Subset     string   `json:"subset"`
	GroupKey   string   `json:"group_key"`
	Years      []int    `json:"years"`
	Players    int      `json:"players"`
	Warnings   []string `json:"warnings,omitempty"`
	Importance int      `json:"importance_entries"`
	LongForm   int      `json:"longform_rows"`
	Fetched    int      `json:"fetched_pages"`
	Objects    []string `json:"objects,omitempty"`
	QueryIDs   []string `json:"query_ids,omitempty"`

	// TableRows is each registered Athena table's row count after export.
	TableRows map[string]int64       `json:"table_rows,omitempty"`
	Heatmap   []store.ImportanceItem `json:"heatmap,omitempty"`
}

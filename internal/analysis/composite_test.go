package analysis

import (
	"testing"

	"github.com/tyler180/combine-rankings/internal/combine"
)

func TestComposite(t *testing.T) {
	if got := Composite(nil); got != nil {
		t.Fatalf("Composite(nil) = %v, want nil", *got)
	}
	got := Composite(map[combine.Metric]int{combine.Forty: 9, combine.Bench: 2, combine.Shuttle: 4})
	if got == nil || *got != 5 {
		t.Fatalf("Composite = %v, want 5", got)
	}
}

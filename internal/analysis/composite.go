package analysis

import (
	"gonum.org/v1/gonum/stat"

	"github.com/tyler180/combine-rankings/internal/combine"
)

// Composite averages the available deciles, weighting every metric the
// same. No deciles means no score.
func Composite(deciles map[combine.Metric]int) *float64 {
	if len(deciles) == 0 {
		return nil
	}
	vals := make([]float64, 0, len(deciles))
	for _, d := range deciles {
		vals = append(vals, float64(d))
	}
	mean := stat.Mean(vals, nil)
	return &mean
}

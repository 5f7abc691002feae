package analysis

import (
	"sort"

	"github.com/tyler180/combine-rankings/internal/combine"
)

// Bucket maps a 1-based rank among n distinct ranks into one of q
// equal-frequency buckets, 0 being the worst. Edges sit at 1+k(n-1)/q, each
// bucket is closed on the right and the lowest is closed on both ends, so
// rank 1 is always bucket 0 and rank n always bucket q-1. Integer arithmetic
// keeps the edges exact.
func Bucket(rank, n, q int) int {
	if q <= 1 || n <= 1 || rank <= 1 {
		return 0
	}
	b := ceilDiv((rank-1)*q, n-1) - 1
	if b < 0 {
		return 0
	}
	if b > q-1 {
		return q - 1
	}
	return b
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

type item struct {
	id    int // player ID, also the original row order
	value float64
}

// firstRanks assigns ranks 1..n so that the worst value gets 1. Ties keep
// their original row order: the first occurrence gets the lower rank.
func firstRanks(items []item, dir combine.Direction) map[int]int {
	sorted := append([]item(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.value != b.value {
			if dir == combine.LowerIsBetter {
				return a.value > b.value
			}
			return a.value < b.value
		}
		return a.id < b.id
	})
	out := make(map[int]int, len(sorted))
	for i, it := range sorted {
		out[it.id] = i + 1
	}
	return out
}

// bucketize ranks items and maps each player ID to its bucket.
func bucketize(items []item, dir combine.Direction, q int) map[int]int {
	ranks := firstRanks(items, dir)
	out := make(map[int]int, len(ranks))
	n := len(ranks)
	for id, r := range ranks {
		out[id] = Bucket(r, n, q)
	}
	return out
}

func metricItems(players []combine.Player, m combine.Metric) []item {
	out := make([]item, 0, len(players))
	for _, p := range players {
		if v, ok := p.Metric(m); ok {
			out = append(out, item{id: p.ID, value: v})
		}
	}
	return out
}

// Package analyze implements the distribution analysis over the urban-areas
// dataset: size typologies, per-type top-1% outlier flags, per-type summary
// statistics, and CCDF curves. Every function is a pure transformation over
// its inputs; repeated calls on the same records yield identical results.
package analyze

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
)

// Percentile returns the nearest-rank percentile of values: the element at
// rank ⌈p/100·n⌉ of the ascending-sorted copy. p must be in [0, 100];
// p=0 yields the minimum and p=100 the maximum. The input is never mutated.
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, eris.Wrap(ErrEmptyInput, "analyze: percentile")
	}
	if p < 0 || p > 100 {
		return 0, eris.Errorf("analyze: percentile %v out of range [0, 100]", p)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	// Stable sort keeps tied values in input order, so rank assignment is
	// reproducible across runs.
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1], nil
}

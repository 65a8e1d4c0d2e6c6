package analyze

import (
	"sort"

	"github.com/sells-group/urban-atlas/internal/model"
)

// BuildCCDF computes the complementary cumulative distribution of values:
// one point per distinct value x, descending by x, with fraction equal to
// count(values >= x) / n. Fractions are non-increasing as x increases, the
// first point's fraction is the share of records tied with the maximum, and
// the last point's fraction is 1.0. Returns nil for empty input.
func BuildCCDF(values []float64) []model.CCDFPoint {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	n := float64(len(sorted))
	var points []model.CCDFPoint
	for i, v := range sorted {
		// Emit a point at the last occurrence of each distinct value, where
		// i+1 is exactly the count of values >= v.
		if i+1 < len(sorted) && sorted[i+1] == v {
			continue
		}
		points = append(points, model.CCDFPoint{
			ValueKM2: v,
			Fraction: float64(i+1) / n,
		})
	}
	return points
}

package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/urban-atlas/internal/model"
)

func TestBuildCCDFDistinctValues(t *testing.T) {
	t.Parallel()

	points := BuildCCDF([]float64{1, 1, 2, 3})
	require.Len(t, points, 3)

	assert.Equal(t, model.CCDFPoint{ValueKM2: 3, Fraction: 0.25}, points[0])
	assert.Equal(t, model.CCDFPoint{ValueKM2: 2, Fraction: 0.5}, points[1])
	assert.Equal(t, model.CCDFPoint{ValueKM2: 1, Fraction: 1.0}, points[2])
}

func TestBuildCCDFMonotone(t *testing.T) {
	t.Parallel()

	sets := [][]float64{
		{5},
		{4, 4, 4},
		{0.1, 7, 7, 120, 3000, 0.1, 42},
	}

	for _, values := range sets {
		points := BuildCCDF(values)
		require.NotEmpty(t, points)

		// Descending by value, non-increasing fraction as value grows,
		// which here means non-decreasing along the slice.
		for i := 1; i < len(points); i++ {
			assert.Greater(t, points[i-1].ValueKM2, points[i].ValueKM2)
			assert.GreaterOrEqual(t, points[i].Fraction, points[i-1].Fraction)
		}
		assert.Equal(t, 1.0, points[len(points)-1].Fraction)
		assert.Greater(t, points[0].Fraction, 0.0)
	}
}

func TestBuildCCDFFirstPointCountsMaxTies(t *testing.T) {
	t.Parallel()

	points := BuildCCDF([]float64{9, 9, 1, 2})
	require.NotEmpty(t, points)
	assert.Equal(t, 9.0, points[0].ValueKM2)
	assert.Equal(t, 0.5, points[0].Fraction, "two of four records tie at the maximum")
}

func TestBuildCCDFEmpty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, BuildCCDF(nil))
}

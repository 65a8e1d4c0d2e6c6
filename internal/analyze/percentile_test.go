package analyze

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentileNearestRank(t *testing.T) {
	t.Parallel()

	values := []float64{10, 20, 1000}

	tests := []struct {
		name string
		p    float64
		want float64
	}{
		{"p0_is_min", 0, 10},
		{"p50", 50, 20},
		{"p99_three_values", 99, 1000}, // rank = ceil(0.99*3) = 3
		{"p100_is_max", 100, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Percentile(values, tt.p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPercentileMinMaxProperty(t *testing.T) {
	t.Parallel()

	sets := [][]float64{
		{5},
		{3, 1, 2},
		{7, 7, 7, 7},
		{0, 0.5, 12000, 0.5, 99},
	}

	for _, values := range sets {
		min, err := Percentile(values, 0)
		require.NoError(t, err)
		max, err := Percentile(values, 100)
		require.NoError(t, err)

		for _, v := range values {
			assert.LessOrEqual(t, min, v)
			assert.GreaterOrEqual(t, max, v)
		}
	}
}

func TestPercentileEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Percentile(nil, 50)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestPercentileOutOfRange(t *testing.T) {
	t.Parallel()

	_, err := Percentile([]float64{1}, -1)
	assert.Error(t, err)

	_, err = Percentile([]float64{1}, 100.5)
	assert.Error(t, err)
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	values := []float64{3, 1, 2}
	_, err := Percentile(values, 50)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

package dataset

import (
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeCentroidPoint(t *testing.T) {
	t.Parallel()

	lat, lon, ok := shapeCentroid(&shp.Point{X: -84.2, Y: 31.6})
	require.True(t, ok)
	assert.InDelta(t, 31.6, lat, 1e-9)
	assert.InDelta(t, -84.2, lon, 1e-9)
}

func TestShapeCentroidPolygon(t *testing.T) {
	t.Parallel()

	// Unit square shell around (-100.5, 40.5).
	square := &shp.Polygon{
		NumParts: 1,
		Parts:    []int32{0},
		Points: []shp.Point{
			{X: -101, Y: 40},
			{X: -100, Y: 40},
			{X: -100, Y: 41},
			{X: -101, Y: 41},
			{X: -101, Y: 40},
		},
	}

	lat, lon, ok := shapeCentroid(square)
	require.True(t, ok)
	assert.InDelta(t, 40.5, lat, 1e-6)
	assert.InDelta(t, -100.5, lon, 1e-6)
}

func TestShapeCentroidUnsupported(t *testing.T) {
	t.Parallel()

	_, _, ok := shapeCentroid(nil)
	assert.False(t, ok)

	_, _, ok = shapeCentroid(&shp.PolyLine{})
	assert.False(t, ok)

	_, _, ok = shapeCentroid(&shp.Polygon{})
	assert.False(t, ok, "empty polygon has no centroid")
}

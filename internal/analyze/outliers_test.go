package analyze

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/urban-atlas/internal/model"
)

func ua(geoid string, typ model.UrbanType, land float64) model.UrbanArea {
	return model.UrbanArea{GEOID: geoid, Name: "Area " + geoid, Type: typ, LandKM2: land}
}

// Three UA records: p99 rank = ceil(0.99*3) = 3, so the threshold is the
// maximum itself and the strict > comparison flags nothing.
func TestFlagOutliersSmallPartitionFlagsNothing(t *testing.T) {
	t.Parallel()

	records := []model.UrbanArea{
		ua("00001", model.UrbanTypeUA, 10),
		ua("00002", model.UrbanTypeUA, 20),
		ua("00003", model.UrbanTypeUA, 1000),
	}

	flags, err := FlagOutliers(records)
	require.NoError(t, err)
	require.Len(t, flags, 3)
	for geoid, flagged := range flags {
		assert.False(t, flagged, "no value exceeds the max itself: %s", geoid)
	}
}

func TestFlagOutliersPartitionsByType(t *testing.T) {
	t.Parallel()

	// UC partition's largest value sits far above its own p99 threshold,
	// while the UA partition stays clean.
	records := []model.UrbanArea{
		ua("00001", model.UrbanTypeUA, 100),
		ua("00002", model.UrbanTypeUA, 110),
		ua("00003", model.UrbanTypeUA, 120),
	}
	for i := 0; i < 200; i++ {
		records = append(records, ua(fmt.Sprintf("9%04d", i), model.UrbanTypeUC, 1))
	}
	records = append(records, ua("99999", model.UrbanTypeUC, 5000))

	flags, err := FlagOutliers(records)
	require.NoError(t, err)

	assert.True(t, flags["99999"], "extreme UC record must be flagged against its own partition")
	assert.False(t, flags["00003"], "UA partition max equals its threshold")

	var flagged int
	for _, f := range flags {
		if f {
			flagged++
		}
	}
	// Never more than ceil(1%) of the partition plus boundary ties.
	assert.LessOrEqual(t, flagged, int(math.Ceil(0.01*201))+1)
}

func TestFlagOutliersIdempotent(t *testing.T) {
	t.Parallel()

	records := []model.UrbanArea{
		ua("00001", model.UrbanTypeUA, 10),
		ua("90001", model.UrbanTypeUC, 3),
		ua("00002", model.UrbanTypeUA, 900),
	}

	first, err := FlagOutliers(records)
	require.NoError(t, err)
	second, err := FlagOutliers(records)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFlagOutliersEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := FlagOutliers(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestOutlierThresholdsPerType(t *testing.T) {
	t.Parallel()

	records := []model.UrbanArea{
		ua("00001", model.UrbanTypeUA, 10),
		ua("00002", model.UrbanTypeUA, 500),
		ua("90001", model.UrbanTypeUC, 2),
	}

	thresholds, err := OutlierThresholds(records, 99)
	require.NoError(t, err)
	assert.Equal(t, 500.0, thresholds[model.UrbanTypeUA])
	assert.Equal(t, 2.0, thresholds[model.UrbanTypeUC])
}

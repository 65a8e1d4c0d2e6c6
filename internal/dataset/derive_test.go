package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/urban-atlas/internal/model"
)

func TestPadGEOID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"199", "00199"},
		{"90100", "90100"},
		{" 7 ", "00007"},
		{"", ""},
		{"123456", "123456"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PadGEOID(tt.in), "input %q", tt.in)
	}
}

func TestTypeFromGEOID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, model.UrbanTypeUA, TypeFromGEOID("00199"))
	assert.Equal(t, model.UrbanTypeUC, TypeFromGEOID("90100"))
	assert.Equal(t, model.UrbanTypeUA, TypeFromGEOID("89999"))
}

func TestParseArea(t *testing.T) {
	t.Parallel()

	v, err := parseArea("ALAND10", "2500000")
	require.NoError(t, err)
	assert.InDelta(t, 2.5, v, 1e-9)

	_, err = parseArea("ALAND10", "-1")
	assert.Error(t, err, "negative areas are rejected, not coerced")

	_, err = parseArea("ALAND10", "n/a")
	assert.Error(t, err)
}

func TestParseCoordSignedCensusFormat(t *testing.T) {
	t.Parallel()

	lat, err := parseCoord("INTPTLAT10", "+33.9838")
	require.NoError(t, err)
	assert.InDelta(t, 33.9838, lat, 1e-9)

	lon, err := parseCoord("INTPTLON10", "-117.2736")
	require.NoError(t, err)
	assert.InDelta(t, -117.2736, lon, 1e-9)
}

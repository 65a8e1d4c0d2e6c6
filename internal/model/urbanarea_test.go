package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUrbanTypeValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  UrbanType
		want string
	}{
		{UrbanTypeUA, "urbanized_area"},
		{UrbanTypeUC, "urban_cluster"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, string(tt.typ))
		})
	}
}

func TestUrbanTypeDisplay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Urbanized Area (UA)", UrbanTypeUA.Display())
	assert.Equal(t, "Urban Cluster (UC)", UrbanTypeUC.Display())
	assert.Equal(t, "bogus", UrbanType("bogus").Display())
}

func TestWaterShare(t *testing.T) {
	t.Parallel()

	u := UrbanArea{LandKM2: 75, WaterKM2: 25}
	share, ok := u.WaterShare()
	assert.True(t, ok)
	assert.InDelta(t, 25.0, share, 1e-9)
	assert.InDelta(t, 100.0, u.TotalKM2(), 1e-9)

	empty := UrbanArea{}
	_, ok = empty.WaterShare()
	assert.False(t, ok, "zero total area has no defined water share")
}

func TestClassificationByGEOID(t *testing.T) {
	t.Parallel()

	r := &Report{Classifications: []Classification{
		{GEOID: "00001", Typology: "small"},
		{GEOID: "90002", Typology: "large", Outlier: true},
	}}

	m := r.ClassificationByGEOID()
	assert.Len(t, m, 2)
	assert.True(t, m["90002"].Outlier)
	assert.Equal(t, "small", m["00001"].Typology)
}

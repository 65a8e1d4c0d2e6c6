// Package model defines the urban-area record and the derived analysis types.
package model

import "time"

// UrbanType is the Census urban geography category.
type UrbanType string

const (
	UrbanTypeUA UrbanType = "urbanized_area"
	UrbanTypeUC UrbanType = "urban_cluster"
)

// AllUrbanTypes returns the recognized types in a fixed order.
func AllUrbanTypes() []UrbanType {
	return []UrbanType{UrbanTypeUA, UrbanTypeUC}
}

// Display returns the human-readable label used in reports.
func (t UrbanType) Display() string {
	switch t {
	case UrbanTypeUA:
		return "Urbanized Area (UA)"
	case UrbanTypeUC:
		return "Urban Cluster (UC)"
	}
	return string(t)
}

// UrbanArea is one Census urban geography unit. Areas are in km²,
// converted from the source dataset's square meters at load time.
// Records are immutable after load.
type UrbanArea struct {
	GEOID    string    `json:"geoid"` // 5-digit UACE code, zero-padded
	Name     string    `json:"name"`
	FuncStat string    `json:"funcstat"`
	Type     UrbanType `json:"type"`
	LandKM2  float64   `json:"land_km2"`
	WaterKM2 float64   `json:"water_km2"`
	Lat      float64   `json:"lat"` // interior reference point
	Lon      float64   `json:"lon"`
}

// TotalKM2 returns land plus water area.
func (u UrbanArea) TotalKM2() float64 {
	return u.LandKM2 + u.WaterKM2
}

// WaterShare returns the water fraction of total area as a percentage.
// The second return is false when total area is zero.
func (u UrbanArea) WaterShare() (float64, bool) {
	total := u.TotalKM2()
	if total <= 0 {
		return 0, false
	}
	return u.WaterKM2 / total * 100, true
}

// TypeSummary holds per-type land-area statistics.
type TypeSummary struct {
	Count             int     `json:"count"`
	MeanKM2           float64 `json:"mean_km2"`
	MedianKM2         float64 `json:"median_km2"`
	MinKM2            float64 `json:"min_km2"`
	MaxKM2            float64 `json:"max_km2"`
	StdDevKM2         float64 `json:"stddev_km2"`
	MeanWaterSharePct float64 `json:"mean_water_share_pct"`
}

// CCDFPoint is one point of a complementary cumulative distribution curve:
// the fraction of records whose land area is at or above ValueKM2.
type CCDFPoint struct {
	ValueKM2 float64 `json:"value_km2"`
	Fraction float64 `json:"fraction"`
}

// Classification is the derived per-record output of the analyzer.
type Classification struct {
	GEOID    string `json:"geoid"`
	Typology string `json:"typology"`
	Outlier  bool   `json:"outlier"`
}

// TypologyCount is the size-band histogram entry, in band order.
type TypologyCount struct {
	Label    string  `json:"label"`
	Count    int     `json:"count"`
	SharePct float64 `json:"share_pct"`
}

// OutlierRank is one entry of the top-N outlier ranking.
type OutlierRank struct {
	GEOID         string    `json:"geoid"`
	Name          string    `json:"name"`
	Type          UrbanType `json:"type"`
	LandKM2       float64   `json:"land_km2"`
	WaterKM2      float64   `json:"water_km2"`
	WaterSharePct float64   `json:"water_share_pct"`
	LandSharePct  float64   `json:"land_share_pct"` // share of total land across all records
}

// Report is the full analyzer output. It is the contract any report
// renderer or dashboard consumes.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`

	RecordCount   int     `json:"record_count"`
	SkippedRows   int     `json:"skipped_rows"`
	TotalLandKM2  float64 `json:"total_land_km2"`
	TotalWaterKM2 float64 `json:"total_water_km2"`

	Thresholds      map[UrbanType]float64     `json:"p99_thresholds_km2"`
	Classifications []Classification          `json:"classifications"`
	Summaries       map[UrbanType]TypeSummary `json:"summaries"`
	TypologyCounts  []TypologyCount           `json:"typology_counts"`

	CCDF       []CCDFPoint               `json:"ccdf"`
	CCDFByType map[UrbanType][]CCDFPoint `json:"ccdf_by_type"`

	TopOutliers []OutlierRank `json:"top_outliers"`
}

// ClassificationByGEOID indexes the report's classifications for lookup.
func (r *Report) ClassificationByGEOID() map[string]Classification {
	m := make(map[string]Classification, len(r.Classifications))
	for _, c := range r.Classifications {
		m[c.GEOID] = c
	}
	return m
}

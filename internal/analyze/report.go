package analyze

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/urban-atlas/internal/model"
)

// Options configures a full analysis run.
type Options struct {
	Bands       []Band // size typology bins; DefaultBands() when nil
	TopN        int    // outlier ranking length (default 20)
	SkippedRows int    // ingestion skip count, carried into the report
}

const defaultTopN = 20

// Run executes the whole pipeline over an immutable record set and returns
// a freshly built report: per-record classifications, per-type summaries and
// P99 thresholds, global and per-type CCDF curves, and the top-N outlier
// ranking. Outlier flags and thresholds are always computed over the full
// record set, never a filtered view.
func Run(records []model.UrbanArea, opts Options) (*model.Report, error) {
	if len(records) == 0 {
		return nil, eris.Wrap(ErrEmptyInput, "analyze: run")
	}

	bands := opts.Bands
	if bands == nil {
		bands = DefaultBands()
	}
	if err := ValidateBands(bands); err != nil {
		return nil, err
	}
	topN := opts.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	thresholds, err := OutlierThresholds(records, OutlierPercentile)
	if err != nil {
		return nil, err
	}

	summaries, err := SummarizeByType(records)
	if err != nil {
		return nil, err
	}

	var totalLand, totalWater float64
	for _, r := range records {
		totalLand += r.LandKM2
		totalWater += r.WaterKM2
	}

	classifications := make([]model.Classification, 0, len(records))
	bandCounts := make(map[string]int, len(bands))
	landsByType := make(map[model.UrbanType][]float64)
	lands := make([]float64, 0, len(records))
	var outliers []model.UrbanArea

	for _, r := range records {
		label := Classify(r.LandKM2, bands)
		flagged := r.LandKM2 > thresholds[r.Type]
		classifications = append(classifications, model.Classification{
			GEOID:    r.GEOID,
			Typology: label,
			Outlier:  flagged,
		})
		bandCounts[label]++
		lands = append(lands, r.LandKM2)
		landsByType[r.Type] = append(landsByType[r.Type], r.LandKM2)
		if flagged {
			outliers = append(outliers, r)
		}
	}

	typologyCounts := make([]model.TypologyCount, 0, len(bands))
	for _, b := range bands {
		count := bandCounts[b.Label]
		typologyCounts = append(typologyCounts, model.TypologyCount{
			Label:    b.Label,
			Count:    count,
			SharePct: float64(count) / float64(len(records)) * 100,
		})
	}

	ccdfByType := make(map[model.UrbanType][]model.CCDFPoint, len(landsByType))
	for t, v := range landsByType {
		ccdfByType[t] = BuildCCDF(v)
	}

	return &model.Report{
		ID:              uuid.New().String(),
		GeneratedAt:     time.Now().UTC(),
		RecordCount:     len(records),
		SkippedRows:     opts.SkippedRows,
		TotalLandKM2:    totalLand,
		TotalWaterKM2:   totalWater,
		Thresholds:      thresholds,
		Classifications: classifications,
		Summaries:       summaries,
		TypologyCounts:  typologyCounts,
		CCDF:            BuildCCDF(lands),
		CCDFByType:      ccdfByType,
		TopOutliers:     rankOutliers(outliers, totalLand, topN),
	}, nil
}

// rankOutliers sorts flagged records by land area descending (GEOID breaks
// ties for a deterministic order) and keeps the top n with each record's
// share of total land.
func rankOutliers(outliers []model.UrbanArea, totalLand float64, n int) []model.OutlierRank {
	sorted := make([]model.UrbanArea, len(outliers))
	copy(sorted, outliers)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].LandKM2 != sorted[j].LandKM2 {
			return sorted[i].LandKM2 > sorted[j].LandKM2
		}
		return sorted[i].GEOID < sorted[j].GEOID
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	ranks := make([]model.OutlierRank, 0, len(sorted))
	for _, r := range sorted {
		share, _ := r.WaterShare()
		var landShare float64
		if totalLand > 0 {
			landShare = r.LandKM2 / totalLand * 100
		}
		ranks = append(ranks, model.OutlierRank{
			GEOID:         r.GEOID,
			Name:          r.Name,
			Type:          r.Type,
			LandKM2:       r.LandKM2,
			WaterKM2:      r.WaterKM2,
			WaterSharePct: share,
			LandSharePct:  landShare,
		})
	}
	return ranks
}

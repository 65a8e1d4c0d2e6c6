package analyze

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/urban-atlas/internal/model"
)

// OutlierPercentile is the per-type land-area percentile beyond which a
// record counts as extreme-scale.
const OutlierPercentile = 99.0

// OutlierThresholds computes the nearest-rank P99 land area for each urban
// type present in records. Partitions smaller than 100 records still get a
// threshold from whatever count exists.
func OutlierThresholds(records []model.UrbanArea, percentile float64) (map[model.UrbanType]float64, error) {
	if len(records) == 0 {
		return nil, eris.Wrap(ErrEmptyInput, "analyze: outlier thresholds")
	}

	byType := make(map[model.UrbanType][]float64)
	for _, r := range records {
		byType[r.Type] = append(byType[r.Type], r.LandKM2)
	}

	thresholds := make(map[model.UrbanType]float64, len(byType))
	for t, lands := range byType {
		p, err := Percentile(lands, percentile)
		if err != nil {
			return nil, eris.Wrapf(err, "analyze: threshold for type %s", t)
		}
		thresholds[t] = p
	}
	return thresholds, nil
}

// FlagOutliers marks each record whose land area strictly exceeds its type's
// P99 threshold. The comparison is strict: a record equal to the threshold
// is NOT an outlier, so a partition whose maximum is the threshold flags
// nothing. The result maps GEOID to the flag and is identical across
// repeated calls on the same records.
func FlagOutliers(records []model.UrbanArea) (map[string]bool, error) {
	thresholds, err := OutlierThresholds(records, OutlierPercentile)
	if err != nil {
		return nil, err
	}

	flags := make(map[string]bool, len(records))
	for _, r := range records {
		flags[r.GEOID] = r.LandKM2 > thresholds[r.Type]
	}
	return flags, nil
}

package analyze

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/sells-group/urban-atlas/internal/model"
)

// SummarizeByType groups records by urban type and computes land-area
// statistics per group, plus the mean water share. Both recognized types
// must be present; a missing one yields ErrEmptyGroup, which signals a
// data-loading defect upstream. Sums accumulate left to right in record
// order so results are bit-identical across runs.
func SummarizeByType(records []model.UrbanArea) (map[model.UrbanType]model.TypeSummary, error) {
	if len(records) == 0 {
		return nil, eris.Wrap(ErrEmptyInput, "analyze: summarize by type")
	}

	groups := make(map[model.UrbanType][]model.UrbanArea)
	for _, r := range records {
		groups[r.Type] = append(groups[r.Type], r)
	}

	summaries := make(map[model.UrbanType]model.TypeSummary, len(groups))
	for _, t := range model.AllUrbanTypes() {
		group := groups[t]
		if len(group) == 0 {
			return nil, eris.Wrapf(ErrEmptyGroup, "analyze: type %s", t)
		}
		s, err := summarize(group)
		if err != nil {
			return nil, eris.Wrapf(err, "analyze: summarize type %s", t)
		}
		summaries[t] = s
	}
	return summaries, nil
}

func summarize(group []model.UrbanArea) (model.TypeSummary, error) {
	n := len(group)

	lands := make([]float64, n)
	min, max := group[0].LandKM2, group[0].LandKM2
	var sum float64
	for i, r := range group {
		lands[i] = r.LandKM2
		sum += r.LandKM2
		if r.LandKM2 < min {
			min = r.LandKM2
		}
		if r.LandKM2 > max {
			max = r.LandKM2
		}
	}
	mean := sum / float64(n)

	median, err := Percentile(lands, 50)
	if err != nil {
		return model.TypeSummary{}, err
	}

	// Sample standard deviation; zero for a single record.
	var stddev float64
	if n > 1 {
		var sq float64
		for _, v := range lands {
			d := v - mean
			sq += d * d
		}
		stddev = math.Sqrt(sq / float64(n-1))
	}

	var shareSum float64
	var shareCount int
	for _, r := range group {
		if share, ok := r.WaterShare(); ok {
			shareSum += share
			shareCount++
		}
	}
	var meanShare float64
	if shareCount > 0 {
		meanShare = shareSum / float64(shareCount)
	}

	return model.TypeSummary{
		Count:             n,
		MeanKM2:           mean,
		MedianKM2:         median,
		MinKM2:            min,
		MaxKM2:            max,
		StdDevKM2:         stddev,
		MeanWaterSharePct: meanShare,
	}, nil
}

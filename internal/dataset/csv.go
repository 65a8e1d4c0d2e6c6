package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/urban-atlas/internal/model"
)

// LoadCSV reads an urban-areas CSV export. Column order is free; headers are
// matched case-insensitively after trimming. A missing required column is a
// hard error, a malformed row is skipped and counted.
func LoadCSV(path string) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open csv %s", path)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow variable fields, reject per row

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrap(err, "dataset: read csv header")
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	if err := checkRequiredColumns(idx); err != nil {
		return nil, err
	}

	result := &LoadResult{}
	seen := make(map[string]bool)
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			result.reject(row, eris.Wrap(err, "dataset: read csv row"))
			continue
		}

		get := func(col string) string {
			i := idx[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		area, err := buildRecord(
			get(colGEOID), get(colName), get(colFuncStat),
			get(colLand), get(colWater), get(colLat), get(colLon),
		)
		if err != nil {
			result.reject(row, err)
			continue
		}
		if seen[area.GEOID] {
			result.reject(row, eris.Errorf("dataset: duplicate GEOID %s", area.GEOID))
			continue
		}
		seen[area.GEOID] = true
		result.Records = append(result.Records, area)
	}

	if result.Skipped > 0 {
		zap.L().Debug("dataset: skipped csv rows",
			zap.String("path", path),
			zap.Int("skipped", result.Skipped),
		)
	}

	return result, nil
}

// checkRequiredColumns verifies all source columns exist, reporting every
// missing one at once.
func checkRequiredColumns(idx map[string]int) error {
	var missing []string
	for _, col := range []string{colGEOID, colName, colFuncStat, colLand, colWater, colLat, colLon} {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return eris.Errorf("dataset: missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// buildRecord assembles one UrbanArea from raw field values, enforcing the
// ingestion contract shared by both loaders.
func buildRecord(geoidRaw, name, funcStat, landRaw, waterRaw, latRaw, lonRaw string) (model.UrbanArea, error) {
	geoid := PadGEOID(geoidRaw)
	if geoid == "" {
		return model.UrbanArea{}, eris.New("dataset: empty GEOID")
	}

	land, err := parseArea(colLand, landRaw)
	if err != nil {
		return model.UrbanArea{}, err
	}
	water, err := parseArea(colWater, waterRaw)
	if err != nil {
		return model.UrbanArea{}, err
	}
	lat, err := parseCoord(colLat, latRaw)
	if err != nil {
		return model.UrbanArea{}, err
	}
	lon, err := parseCoord(colLon, lonRaw)
	if err != nil {
		return model.UrbanArea{}, err
	}

	return model.UrbanArea{
		GEOID:    geoid,
		Name:     name,
		FuncStat: funcStat,
		Type:     TypeFromGEOID(geoid),
		LandKM2:  land,
		WaterKM2: water,
		Lat:      lat,
		Lon:      lon,
	}, nil
}

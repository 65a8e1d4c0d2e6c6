package dataset

import (
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"
)

// LoadShapefile reads a TIGER/Line urban-areas shapefile. Attribute values
// come from the DBF; when the interior-point attributes are blank the
// reference point falls back to the centroid of the record's geometry.
func LoadShapefile(path string) (*LoadResult, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	if err := checkRequiredShapeFields(fieldIdx); err != nil {
		return nil, err
	}

	result := &LoadResult{}
	seen := make(map[string]bool)
	row := 0
	for reader.Next() {
		_, shape := reader.Shape()
		row++

		attr := func(col string) string {
			idx, ok := fieldIdx[col]
			if !ok {
				return ""
			}
			return strings.TrimSpace(strings.TrimRight(reader.Attribute(idx), "\x00"))
		}

		latRaw, lonRaw := attr(colLat), attr(colLon)
		if latRaw == "" || lonRaw == "" {
			if lat, lon, ok := shapeCentroid(shape); ok {
				latRaw, lonRaw = formatCoord(lat), formatCoord(lon)
			}
		}

		area, err := buildRecord(
			attr(colGEOID), attr(colName), attr(colFuncStat),
			attr(colLand), attr(colWater), latRaw, lonRaw,
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
		zap.L().Debug("dataset: skipped shapefile records",
			zap.String("path", path),
			zap.Int("skipped", result.Skipped),
		)
	}

	return result, nil
}

// checkRequiredShapeFields verifies the DBF carries the attribute columns
// the ingestion contract needs. Interior-point columns may be absent since
// the geometry centroid covers them.
func checkRequiredShapeFields(fieldIdx map[string]int) error {
	var missing []string
	for _, col := range []string{colGEOID, colName, colFuncStat, colLand, colWater} {
		if _, ok := fieldIdx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return eris.Errorf("dataset: shapefile missing attributes: %s", strings.Join(missing, ", "))
	}
	return nil
}

// shapeCentroid computes the interior reference point of a shapefile
// geometry. Supports points and polygons, the only shapes in UAC files.
func shapeCentroid(shape shp.Shape) (lat, lon float64, ok bool) {
	switch s := shape.(type) {
	case *shp.Point:
		return s.Y, s.X, true
	case *shp.Polygon:
		poly := polygonFromShape(s)
		if poly == nil {
			return 0, 0, false
		}
		c, err := xy.Centroid(poly)
		if err != nil || len(c) < 2 {
			return 0, 0, false
		}
		return c[1], c[0], true
	}
	return 0, 0, false
}

// polygonFromShape converts the shell ring of a shapefile polygon into a
// geom.Polygon. Rings beyond the first are holes or disjoint parts; the
// centroid of the shell is a good enough interior point for display.
func polygonFromShape(p *shp.Polygon) *geom.Polygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	end := int32(len(p.Points))
	if p.NumParts > 1 {
		end = p.Parts[1]
	}

	flat := make([]float64, 0, end*2)
	for j := p.Parts[0]; j < end; j++ {
		flat = append(flat, p.Points[j].X, p.Points[j].Y)
	}
	if len(flat) < 8 { // a closed ring needs at least 4 points
		return nil
	}

	poly := geom.NewPolygon(geom.XY).SetSRID(4326)
	if err := poly.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
		zap.L().Debug("dataset: skipping malformed polygon ring", zap.Error(err))
		return nil
	}
	return poly
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

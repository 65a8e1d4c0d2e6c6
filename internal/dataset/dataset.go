// Package dataset ingests the Census urban-areas dataset from CSV or
// TIGER/Line shapefile sources into immutable in-memory records.
//
// Malformed rows (unparseable numerics, negative areas, missing or duplicate
// GEOIDs) are skipped and counted, never coerced to zero; the skip count and
// a sample of row errors are returned to the caller.
package dataset

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/urban-atlas/internal/model"
)

// Required source columns (2010 vintage names).
const (
	colGEOID    = "UACE10"
	colName     = "NAME10"
	colFuncStat = "FUNCSTAT10"
	colLand     = "ALAND10"
	colWater    = "AWATER10"
	colLat      = "INTPTLAT10"
	colLon      = "INTPTLON10"
)

// maxRowErrorSamples caps how many row errors a LoadResult carries.
const maxRowErrorSamples = 10

// RowError describes one rejected source row.
type RowError struct {
	Row int // 1-based position in the source, header excluded for CSV
	Err error
}

// LoadResult is the outcome of an ingestion pass.
type LoadResult struct {
	Records   []model.UrbanArea
	Skipped   int
	RowErrors []RowError // first maxRowErrorSamples rejections
}

func (r *LoadResult) reject(row int, err error) {
	r.Skipped++
	if len(r.RowErrors) < maxRowErrorSamples {
		r.RowErrors = append(r.RowErrors, RowError{Row: row, Err: err})
	}
}

// Load reads a dataset file, picking the parser from format ("csv",
// "shapefile") or, when format is "auto" or empty, from the file extension.
func Load(path, format string) (*LoadResult, error) {
	switch strings.ToLower(format) {
	case "csv":
		return LoadCSV(path)
	case "shapefile", "shp":
		return LoadShapefile(path)
	case "", "auto":
		if strings.EqualFold(filepath.Ext(path), ".shp") {
			return LoadShapefile(path)
		}
		return LoadCSV(path)
	}
	return nil, eris.Errorf("dataset: unknown format %q", format)
}

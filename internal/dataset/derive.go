package dataset

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/urban-atlas/internal/model"
)

const sqMetersPerKM2 = 1_000_000

// PadGEOID zero-pads a UACE code to the canonical 5 digits.
func PadGEOID(raw string) string {
	s := strings.TrimSpace(raw)
	for len(s) > 0 && len(s) < 5 {
		s = "0" + s
	}
	return s
}

// TypeFromGEOID derives the urban type from the UACE code: codes in the
// 9xxxx range are Urban Clusters, everything else an Urbanized Area.
func TypeFromGEOID(geoid string) model.UrbanType {
	if strings.HasPrefix(geoid, "9") {
		return model.UrbanTypeUC
	}
	return model.UrbanTypeUA
}

// parseArea parses a square-meter field and converts it to km². Negative
// values are rejected so bad rows surface instead of shrinking totals.
func parseArea(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, eris.Wrapf(err, "dataset: parse %s %q", field, raw)
	}
	if v < 0 {
		return 0, eris.Errorf("dataset: negative %s: %v", field, v)
	}
	return v / sqMetersPerKM2, nil
}

// parseCoord parses a latitude/longitude field. Census files prefix
// latitudes with an explicit sign ("+33.98"), which ParseFloat accepts.
func parseCoord(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, eris.Wrapf(err, "dataset: parse %s %q", field, raw)
	}
	return v, nil
}

package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/urban-atlas/internal/model"
)

// WriteRecordsCSV writes per-record output rows: identity, areas, and the
// derived typology and outlier flag. Records without a classification get
// empty derived columns rather than being dropped.
func WriteRecordsCSV(w io.Writer, records []model.UrbanArea, classifications map[string]model.Classification) error {
	cw := csv.NewWriter(w)

	header := []string{
		"geoid", "name", "type", "funcstat",
		"land_km2", "water_km2", "water_share_pct",
		"typology", "outlier",
	}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}

	for _, r := range records {
		var shareStr string
		if share, ok := r.WaterShare(); ok {
			shareStr = formatFloat(share)
		}

		var typology, outlier string
		if c, ok := classifications[r.GEOID]; ok {
			typology = c.Typology
			outlier = strconv.FormatBool(c.Outlier)
		}

		row := []string{
			r.GEOID, r.Name, string(r.Type), r.FuncStat,
			formatFloat(r.LandKM2), formatFloat(r.WaterKM2), shareStr,
			typology, outlier,
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrapf(err, "export: write csv row %s", r.GEOID)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Package export renders analyzer output for downstream consumers: JSON for
// dashboards, CSV for spreadsheets, and a multi-sheet XLSX workbook.
package export

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/urban-atlas/internal/model"
)

// WriteJSON writes the full report as indented JSON, the machine-readable
// form of the analyzer's output contract.
func WriteJSON(w io.Writer, report *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(report), "export: encode report json")
}

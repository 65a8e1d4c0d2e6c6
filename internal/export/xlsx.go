package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/urban-atlas/internal/model"
)

// WriteXLSX writes the report as a workbook with Summary, Typology,
// Outliers, and CCDF sheets.
func WriteXLSX(report *model.Report, path string) error {
	f := xlsx.NewFile()

	if err := addSummarySheet(f, report); err != nil {
		return err
	}
	if err := addTypologySheet(f, report); err != nil {
		return err
	}
	if err := addOutliersSheet(f, report); err != nil {
		return err
	}
	if err := addCCDFSheet(f, report); err != nil {
		return err
	}

	return eris.Wrapf(f.Save(path), "export: save workbook %s", path)
}

func addSummarySheet(f *xlsx.File, report *model.Report) error {
	sheet, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}

	meta := [][2]string{
		{"Report ID", report.ID},
		{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
	}
	for _, kv := range meta {
		row := sheet.AddRow()
		row.AddCell().SetString(kv[0])
		row.AddCell().SetString(kv[1])
	}

	kpis := sheet.AddRow()
	kpis.AddCell().SetString("Urban Areas")
	kpis.AddCell().SetInt(report.RecordCount)
	kpis.AddCell().SetString("Skipped Rows")
	kpis.AddCell().SetInt(report.SkippedRows)

	totals := sheet.AddRow()
	totals.AddCell().SetString("Total Land (km²)")
	totals.AddCell().SetFloat(report.TotalLandKM2)
	totals.AddCell().SetString("Total Water (km²)")
	totals.AddCell().SetFloat(report.TotalWaterKM2)

	sheet.AddRow() // spacer

	header := sheet.AddRow()
	for _, h := range []string{
		"Type", "Count", "Mean (km²)", "Median (km²)", "Min (km²)",
		"Max (km²)", "StdDev (km²)", "Mean Water Share (%)", "P99 Threshold (km²)",
	} {
		header.AddCell().SetString(h)
	}

	for _, t := range model.AllUrbanTypes() {
		s, ok := report.Summaries[t]
		if !ok {
			continue
		}
		row := sheet.AddRow()
		row.AddCell().SetString(t.Display())
		row.AddCell().SetInt(s.Count)
		row.AddCell().SetFloat(s.MeanKM2)
		row.AddCell().SetFloat(s.MedianKM2)
		row.AddCell().SetFloat(s.MinKM2)
		row.AddCell().SetFloat(s.MaxKM2)
		row.AddCell().SetFloat(s.StdDevKM2)
		row.AddCell().SetFloat(s.MeanWaterSharePct)
		row.AddCell().SetFloat(report.Thresholds[t])
	}
	return nil
}

func addTypologySheet(f *xlsx.File, report *model.Report) error {
	sheet, err := f.AddSheet("Typology")
	if err != nil {
		return eris.Wrap(err, "export: add typology sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"Size Class", "Count", "Share (%)"} {
		header.AddCell().SetString(h)
	}
	for _, tc := range report.TypologyCounts {
		row := sheet.AddRow()
		row.AddCell().SetString(tc.Label)
		row.AddCell().SetInt(tc.Count)
		row.AddCell().SetFloat(tc.SharePct)
	}
	return nil
}

func addOutliersSheet(f *xlsx.File, report *model.Report) error {
	sheet, err := f.AddSheet("Outliers")
	if err != nil {
		return eris.Wrap(err, "export: add outliers sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{
		"Rank", "GEOID", "Name", "Type", "Land (km²)", "Water (km²)",
		"Water Share (%)", "Share of Total Land (%)",
	} {
		header.AddCell().SetString(h)
	}
	for i, o := range report.TopOutliers {
		row := sheet.AddRow()
		row.AddCell().SetInt(i + 1)
		row.AddCell().SetString(o.GEOID)
		row.AddCell().SetString(o.Name)
		row.AddCell().SetString(o.Type.Display())
		row.AddCell().SetFloat(o.LandKM2)
		row.AddCell().SetFloat(o.WaterKM2)
		row.AddCell().SetFloat(o.WaterSharePct)
		row.AddCell().SetFloat(o.LandSharePct)
	}
	return nil
}

func addCCDFSheet(f *xlsx.File, report *model.Report) error {
	sheet, err := f.AddSheet("CCDF")
	if err != nil {
		return eris.Wrap(err, "export: add ccdf sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"Partition", "Land (km²)", "Fraction ≥"} {
		header.AddCell().SetString(h)
	}

	writeCurve := func(name string, curve []model.CCDFPoint) {
		for _, p := range curve {
			row := sheet.AddRow()
			row.AddCell().SetString(name)
			row.AddCell().SetFloat(p.ValueKM2)
			row.AddCell().SetFloat(p.Fraction)
		}
	}

	writeCurve("all", report.CCDF)
	for _, t := range model.AllUrbanTypes() {
		if curve, ok := report.CCDFByType[t]; ok {
			writeCurve(string(t), curve)
		}
	}
	return nil
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/urban-atlas/internal/analyze"
	"github.com/sells-group/urban-atlas/internal/dataset"
	"github.com/sells-group/urban-atlas/internal/export"
	"github.com/sells-group/urban-atlas/internal/model"
)

const ccdfPreviewPoints = 10

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the distribution analysis and print a report",
	Long: `Loads the urban-areas dataset, classifies every record into a size
typology, flags the top 1% by land area within each urban type, and computes
per-type summary statistics and CCDF curves.

Thresholds and flags are always computed over the full dataset. Use --json
for machine-readable output or --xlsx to write a workbook.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, _ := cmd.Flags().GetString("input")
		format, _ := cmd.Flags().GetString("format")
		bandsFile, _ := cmd.Flags().GetString("bands")
		topN, _ := cmd.Flags().GetInt("top")
		asJSON, _ := cmd.Flags().GetBool("json")
		xlsxPath, _ := cmd.Flags().GetString("xlsx")

		report, _, err := runAnalysis(input, format, bandsFile, topN)
		if err != nil {
			return err
		}

		if xlsxPath != "" {
			if err := export.WriteXLSX(report, xlsxPath); err != nil {
				return err
			}
			zap.L().Info("workbook written",
				zap.String("path", xlsxPath),
				zap.String("report_id", report.ID),
			)
		}

		if asJSON {
			return export.WriteJSON(os.Stdout, report)
		}
		printReport(report)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("input", "", "dataset path (default from config)")
	analyzeCmd.Flags().String("format", "", "input format: auto, csv, shapefile (default from config)")
	analyzeCmd.Flags().String("bands", "", "typology bands YAML file (default from config or built-in bins)")
	analyzeCmd.Flags().Int("top", 0, "outlier ranking length (default from config or 20)")
	analyzeCmd.Flags().Bool("json", false, "write the report as JSON to stdout")
	analyzeCmd.Flags().String("xlsx", "", "also write an XLSX workbook to this path")
	rootCmd.AddCommand(analyzeCmd)
}

// runAnalysis loads the dataset and runs the full pipeline. Shared by the
// analyze and records commands so both see identical classifications.
func runAnalysis(input, format, bandsFile string, topN int) (*model.Report, []model.UrbanArea, error) {
	if input == "" {
		input = cfg.Dataset.Path
	}
	if format == "" {
		format = cfg.Dataset.Format
	}
	if bandsFile == "" {
		bandsFile = cfg.Analysis.BandsFile
	}
	if topN <= 0 {
		topN = cfg.Analysis.TopOutliers
	}

	result, err := dataset.Load(input, format)
	if err != nil {
		return nil, nil, err
	}
	if result.Skipped > 0 {
		zap.L().Warn("rows skipped during ingestion",
			zap.String("path", input),
			zap.Int("skipped", result.Skipped),
		)
		for _, re := range result.RowErrors {
			zap.L().Debug("rejected row", zap.Int("row", re.Row), zap.Error(re.Err))
		}
	}

	opts := analyze.Options{TopN: topN, SkippedRows: result.Skipped}
	if bandsFile != "" {
		bands, err := analyze.LoadBands(bandsFile)
		if err != nil {
			return nil, nil, err
		}
		opts.Bands = bands
	}

	report, err := analyze.Run(result.Records, opts)
	if err != nil {
		return nil, nil, eris.Wrap(err, "analyze dataset")
	}
	return report, result.Records, nil
}

// printReport renders the terminal report.
func printReport(r *model.Report) {
	fmt.Printf("Urban Areas: %d   Skipped rows: %d\n", r.RecordCount, r.SkippedRows)
	fmt.Printf("Total Land: %s km²   Total Water: %s km²\n",
		formatKM2(r.TotalLandKM2), formatKM2(r.TotalWaterKM2))
	for _, t := range model.AllUrbanTypes() {
		if th, ok := r.Thresholds[t]; ok {
			fmt.Printf("P99 threshold %-20s %s km²\n", t.Display()+":", formatKM2(th))
		}
	}

	fmt.Println("\nSummary by type")
	fmt.Printf("%-22s %7s %12s %12s %10s %12s %12s %8s\n",
		"Type", "Count", "Mean", "Median", "Min", "Max", "StdDev", "Water%")
	fmt.Println(strings.Repeat("-", 100))
	for _, t := range model.AllUrbanTypes() {
		s, ok := r.Summaries[t]
		if !ok {
			continue
		}
		fmt.Printf("%-22s %7d %12.1f %12.1f %10.1f %12.1f %12.1f %8.2f\n",
			t.Display(), s.Count, s.MeanKM2, s.MedianKM2,
			s.MinKM2, s.MaxKM2, s.StdDevKM2, s.MeanWaterSharePct)
	}

	fmt.Println("\nSize typology")
	fmt.Printf("%-24s %7s %8s\n", "Class", "Count", "Share%")
	fmt.Println(strings.Repeat("-", 42))
	for _, tc := range r.TypologyCounts {
		fmt.Printf("%-24s %7d %8.1f\n", tc.Label, tc.Count, tc.SharePct)
	}

	if len(r.TopOutliers) > 0 {
		fmt.Printf("\nTop %d outliers (>P99 land area within type)\n", len(r.TopOutliers))
		fmt.Printf("%4s %-7s %-32s %-22s %12s %8s\n",
			"#", "GEOID", "Name", "Type", "Land km²", "Land%")
		fmt.Println(strings.Repeat("-", 90))
		for i, o := range r.TopOutliers {
			fmt.Printf("%4d %-7s %-32s %-22s %12.1f %8.2f\n",
				i+1, o.GEOID, truncate(o.Name, 32), o.Type.Display(), o.LandKM2, o.LandSharePct)
		}
	} else {
		fmt.Println("\nNo outliers beyond the P99 thresholds")
	}

	fmt.Println("\nCCDF (land km² -> fraction of records at or above)")
	for i, p := range r.CCDF {
		if i >= ccdfPreviewPoints {
			fmt.Printf("  ... %d more points (use --json for the full curve)\n", len(r.CCDF)-i)
			break
		}
		fmt.Printf("  %12.1f  %.4f\n", p.ValueKM2, p.Fraction)
	}
}

func formatKM2(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

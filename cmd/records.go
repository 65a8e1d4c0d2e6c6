package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/urban-atlas/internal/export"
	"github.com/sells-group/urban-atlas/internal/filter"
	"github.com/sells-group/urban-atlas/internal/model"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List urban areas with their derived classification",
	Long: `Lists records that match the given filters, together with the size
typology and outlier flag from a full-dataset analysis. Filters narrow the
listing only; they never change thresholds or flags.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, _ := cmd.Flags().GetString("input")
		format, _ := cmd.Flags().GetString("format")
		bandsFile, _ := cmd.Flags().GetString("bands")

		typesStr, _ := cmd.Flags().GetString("types")
		funcStr, _ := cmd.Flags().GetString("funcstat")
		typologyStr, _ := cmd.Flags().GetString("typology")
		minLand, _ := cmd.Flags().GetFloat64("min-land")
		outliersOnly, _ := cmd.Flags().GetBool("outliers-only")
		name, _ := cmd.Flags().GetString("name")
		limit, _ := cmd.Flags().GetInt("limit")
		asCSV, _ := cmd.Flags().GetBool("csv")

		report, records, err := runAnalysis(input, format, bandsFile, 0)
		if err != nil {
			return err
		}
		classifications := report.ClassificationByGEOID()

		f := filter.Filter{
			Types:        parseTypes(typesStr),
			FuncStats:    splitAndTrim(funcStr),
			Typologies:   splitAndTrim(typologyStr),
			MinLandKM2:   minLand,
			OutliersOnly: outliersOnly,
			NameQuery:    name,
		}
		matched := f.Apply(records, classifications)
		if limit > 0 && len(matched) > limit {
			matched = matched[:limit]
		}

		if asCSV {
			return export.WriteRecordsCSV(os.Stdout, matched, classifications)
		}

		printRecords(matched, classifications)
		return nil
	},
}

func init() {
	recordsCmd.Flags().String("input", "", "dataset path (default from config)")
	recordsCmd.Flags().String("format", "", "input format: auto, csv, shapefile")
	recordsCmd.Flags().String("bands", "", "typology bands YAML file")
	recordsCmd.Flags().String("types", "", "comma-separated urban types (ua, uc)")
	recordsCmd.Flags().String("funcstat", "", "comma-separated functional status codes")
	recordsCmd.Flags().String("typology", "", "comma-separated size class labels")
	recordsCmd.Flags().Float64("min-land", 0, "minimum land area in km²")
	recordsCmd.Flags().Bool("outliers-only", false, "only extreme-scale records (top 1%)")
	recordsCmd.Flags().String("name", "", "substring name search (case- and accent-insensitive)")
	recordsCmd.Flags().Int("limit", 0, "maximum records to list (0 = all)")
	recordsCmd.Flags().Bool("csv", false, "write matching records as CSV to stdout")
	rootCmd.AddCommand(recordsCmd)
}

func printRecords(records []model.UrbanArea, classifications map[string]model.Classification) {
	if len(records) == 0 {
		fmt.Println("No records match the given filters")
		return
	}

	fmt.Printf("%-7s %-34s %-22s %12s %12s %-24s %s\n",
		"GEOID", "Name", "Type", "Land km²", "Water km²", "Typology", "Outlier")
	fmt.Println(strings.Repeat("-", 125))
	for _, r := range records {
		c := classifications[r.GEOID]
		outlier := ""
		if c.Outlier {
			outlier = "yes"
		}
		fmt.Printf("%-7s %-34s %-22s %12.1f %12.1f %-24s %s\n",
			r.GEOID, truncate(r.Name, 34), r.Type.Display(),
			r.LandKM2, r.WaterKM2, c.Typology, outlier)
	}
	fmt.Printf("\n%d record(s)\n", len(records))
}

// parseTypes maps the user-facing ua/uc shorthand onto the model types.
func parseTypes(s string) []model.UrbanType {
	var types []model.UrbanType
	for _, part := range splitAndTrim(s) {
		switch strings.ToLower(part) {
		case "ua", "urbanized_area":
			types = append(types, model.UrbanTypeUA)
		case "uc", "urban_cluster":
			types = append(types, model.UrbanTypeUC)
		}
	}
	return types
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

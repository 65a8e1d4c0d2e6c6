package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/urban-atlas/internal/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the Census urban-areas dataset",
	Long: `Downloads the TIGER/Line urban-areas archive(s) from the Census
Bureau and extracts them into the data directory. Archives already present
are skipped, so re-running is cheap.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		urls, _ := cmd.Flags().GetStringSlice("url")
		destDir, _ := cmd.Flags().GetString("dest")

		if len(urls) == 0 {
			urls = cfg.Fetch.URLs
		}
		if destDir == "" {
			destDir = cfg.Fetch.DestDir
		}
		if len(urls) == 0 {
			return eris.New("fetch: no source URLs configured")
		}

		log := zap.L().With(zap.String("command", "fetch"))
		log.Info("downloading dataset archives",
			zap.Strings("urls", urls),
			zap.String("dest", destDir),
		)

		client := fetch.NewClient(fetch.Options{
			UserAgent:   cfg.Fetch.UserAgent,
			Timeout:     time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			MaxRetries:  cfg.Fetch.MaxRetries,
			RatePerSec:  rate.Limit(cfg.Fetch.RatePerSec),
			Burst:       cfg.Fetch.Burst,
			Concurrency: cfg.Fetch.Concurrency,
		})

		archives, err := client.DownloadAll(ctx, urls, destDir)
		if err != nil {
			return eris.Wrap(err, "fetch: download archives")
		}

		for _, archive := range archives {
			extracted, err := fetch.ExtractZip(archive, destDir)
			if err != nil {
				return eris.Wrapf(err, "fetch: extract %s", archive)
			}
			log.Info("archive extracted",
				zap.String("archive", archive),
				zap.Int("files", len(extracted)),
			)
		}

		if shpPath, err := fetch.FindByExt(destDir, ".shp"); err == nil {
			fmt.Printf("Dataset ready: %s\n", shpPath)
			fmt.Printf("Run: urban-atlas analyze --input %s\n", shpPath)
		} else {
			fmt.Printf("Archives extracted under %s\n", destDir)
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringSlice("url", nil, "archive URL (repeatable; default from config)")
	fetchCmd.Flags().String("dest", "", "destination directory (default from config)")
	rootCmd.AddCommand(fetchCmd)
}

package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitfolio/gitfolio/core"
	"github.com/gitfolio/gitfolio/internal/contract"
	"github.com/gitfolio/gitfolio/internal/parquet"
)

// exportCmd exports ranking results to a Parquet file.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export ranking results to Parquet for analytics",
	Long: `Export the current project rankings to Parquet format.

Each row carries the ranked project, its top contributor, the score
components and the concentration label, plus an export timestamp.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all rankings
  gitfolio export --output-file rankings.parquet --limit 1000

  # Query with DuckDB
  duckdb -c "SELECT project, score FROM read_parquet('rankings.parquet') LIMIT 10"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := executeExport(viper.GetString("output-file")); err != nil {
			contract.LogFatal("Failed to export rankings", err)
		}
	},
}

// executeExport ranks the store's projects and writes them out as Parquet.
func executeExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for parquet export")
	}

	activities, err := db.ProjectActivities(rootCtx)
	if err != nil {
		return err
	}

	results := core.RankProjects(activities, cfg.Order, cfg.ResultLimit)
	records := parquet.ConvertRankingResults(results, time.Now().UTC())
	if err := parquet.WriteRankingsParquet(records, outputFile); err != nil {
		return err
	}

	fmt.Printf("Exported %d ranking rows to %s\n", len(records), outputFile)
	return nil
}

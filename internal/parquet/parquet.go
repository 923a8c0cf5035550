// Package parquet exports ranking results to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/gitfolio/gitfolio/internal/contract"
	"github.com/gitfolio/gitfolio/schema"
)

// RankingRecord represents one ranked project/contributor row for export.
type RankingRecord struct {
	// Rank is the 1-based position in the ranked output
	Rank int32 `parquet:"rank,snappy"`

	// Project is the ranked project name
	Project string `parquet:"project,snappy"`

	// Contributor is the canonical contributor the score applies to
	Contributor string `parquet:"contributor,snappy"`

	// TotalFiles is the project's current file inventory size
	TotalFiles int32 `parquet:"total_files,snappy"`

	// ContributorFiles is the number of files linked to the contributor
	ContributorFiles int32 `parquet:"contrib_files,snappy"`

	// ContributorsCount is the number of distinct contributors with links
	ContributorsCount int32 `parquet:"contributors_count,snappy"`

	// Coverage, DominanceGap and TeamFactor are the score components
	Coverage     float64 `parquet:"coverage,snappy"`
	DominanceGap float64 `parquet:"dominance_gap,snappy"`
	TeamFactor   float64 `parquet:"team_factor,snappy"`

	// Score is the composite score in [0, 1]
	Score float64 `parquet:"score,snappy"`

	// Label is the ownership-concentration label derived from the score
	Label string `parquet:"label,snappy"`

	// ExportedAt is when this export was produced (stored as TIMESTAMP with
	// nanosecond precision)
	ExportedAt time.Time `parquet:"exported_at,snappy"`
}

// ConvertRankingResults converts ranking results to RankingRecord rows for
// Parquet export.
func ConvertRankingResults(results []schema.RankingResult, exportedAt time.Time) []RankingRecord {
	records := make([]RankingRecord, len(results))
	for i, r := range results {
		records[i] = RankingRecord{
			Rank:              int32(i + 1),
			Project:           r.Project,
			Contributor:       r.Contributor,
			TotalFiles:        int32(r.TotalFiles),
			ContributorFiles:  int32(r.ContributorFiles),
			ContributorsCount: int32(r.ContributorsCount),
			Coverage:          r.Coverage,
			DominanceGap:      r.DominanceGap,
			TeamFactor:        r.TeamFactor,
			Score:             r.Score,
			Label:             contract.GetPlainLabel(r.Score),
			ExportedAt:        exportedAt,
		}
	}
	return records
}

// WriteRankingsParquet writes ranking records to a Parquet file. The schema
// is derived from the RankingRecord struct tags.
func WriteRankingsParquet(data []RankingRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[RankingRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

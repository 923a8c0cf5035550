package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitfolio/gitfolio/schema"
)

func TestConvertRankingResults(t *testing.T) {
	now := time.Now()
	results := []schema.RankingResult{
		{Project: "solo", Contributor: "Alice", TotalFiles: 10, ContributorFiles: 10,
			ContributorsCount: 1, Coverage: 1, DominanceGap: 1, TeamFactor: 1, Score: 1},
		{Project: "shared", Contributor: "Bob", TotalFiles: 10, ContributorFiles: 5,
			ContributorsCount: 2, Score: 0.3},
	}

	records := ConvertRankingResults(results, now)
	require.Len(t, records, 2)

	assert.Equal(t, int32(1), records[0].Rank)
	assert.Equal(t, "Dominant", records[0].Label)
	assert.Equal(t, int32(2), records[1].Rank)
	assert.Equal(t, "Collective", records[1].Label)
	assert.Equal(t, now, records[0].ExportedAt)
}

func TestWriteRankingsParquetRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "rankings.parquet")
	records := ConvertRankingResults([]schema.RankingResult{
		{Project: "demo", Contributor: "Alice", TotalFiles: 3, ContributorFiles: 2,
			ContributorsCount: 2, Coverage: 0.667, Score: 0.55},
	}, time.Now())

	require.NoError(t, WriteRankingsParquet(records, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	rows, err := parquet.ReadFile[RankingRecord](outputPath)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "demo", rows[0].Project)
	assert.Equal(t, "Alice", rows[0].Contributor)
	assert.InDelta(t, 0.55, rows[0].Score, 1e-9)
}

func TestWriteRankingsParquetEmpty(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteRankingsParquet(nil, outputPath))

	rows, err := parquet.ReadFile[RankingRecord](outputPath)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

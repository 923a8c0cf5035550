package outwriter

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitfolio/gitfolio/internal"
	"github.com/gitfolio/gitfolio/schema"
)

func sampleResults() []schema.RankingResult {
	return []schema.RankingResult{
		{Project: "solo", Contributor: "Alice", TotalFiles: 10, ContributorFiles: 10,
			ContributorsCount: 1, Coverage: 1, DominanceGap: 1, TeamFactor: 1, Score: 1},
		{Project: "shared", Contributor: "Bob", TotalFiles: 10, ContributorFiles: 6,
			ContributorsCount: 2, Coverage: 0.6, DominanceGap: 0.2, TeamFactor: 0.5, Score: 0.47},
	}
}

func TestWriteRankTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := &internal.Config{Output: "text", Backend: schema.SQLiteBackend}

	require.NoError(t, writeRankTable(&buf, sampleResults(), cfg, 5*time.Millisecond))
	out := buf.String()

	assert.Contains(t, out, "solo")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "10/10")
	assert.Contains(t, out, "6/10")
	assert.Contains(t, out, "Showing 2 projects")
	assert.Contains(t, out, "sqlite")
}

func TestWriteRankJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRankJSON(&buf, sampleResults()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, float64(1), decoded[0]["rank"])
	assert.Equal(t, "Dominant", decoded[0]["label"])
	assert.Equal(t, "solo", decoded[0]["project"])
	assert.Equal(t, "Shared", decoded[1]["label"])
	assert.Equal(t, float64(6), decoded[1]["contrib_files"])
}

func TestWriteRankJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRankJSON(&buf, nil))

	var decoded []any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Empty(t, decoded)
}

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitfolio/gitfolio/core"
	"github.com/gitfolio/gitfolio/schema"
)

func TestProjectActivities(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.IngestScan(ctx, &schema.ScanInput{
		Project: "solo",
		Files: []schema.FileInput{
			{Name: "a.go", Path: "a.go", Contributors: []string{"Alice"}},
			{Name: "b.go", Path: "b.go", Contributors: []string{"Alice"}},
		},
	})
	require.NoError(t, err)

	_, err = s.IngestScan(ctx, &schema.ScanInput{
		Project: "shared",
		Files: []schema.FileInput{
			{Name: "x.go", Path: "x.go", Contributors: []string{"Alice", "Bob"}},
			{Name: "y.go", Path: "y.go", Contributors: []string{"Bob"}},
			{Name: "z.md", Path: "z.md"},
		},
	})
	require.NoError(t, err)

	_, err = s.IngestScan(ctx, &schema.ScanInput{Project: "empty"})
	require.NoError(t, err)

	activities, err := s.ProjectActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 3)

	// Sorted by project name.
	assert.Equal(t, "empty", activities[0].Project)
	assert.Equal(t, 0, activities[0].TotalFiles)
	assert.Empty(t, activities[0].FilesByContributor)

	shared := activities[1]
	assert.Equal(t, "shared", shared.Project)
	assert.Equal(t, 3, shared.TotalFiles)
	assert.Equal(t, map[string]int{"Alice": 1, "Bob": 2}, shared.FilesByContributor)

	solo := activities[2]
	assert.Equal(t, 2, solo.TotalFiles)
	assert.Equal(t, map[string]int{"Alice": 2}, solo.FilesByContributor)
}

func TestProjectActivitiesFeedRanking(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.IngestScan(ctx, &schema.ScanInput{
		Project: "demo",
		Files: []schema.FileInput{
			{Name: "a.go", Path: "a.go", Contributors: []string{"Alice"}},
			{Name: "b.go", Path: "b.go", Contributors: []string{"Alice"}},
			{Name: "c.go", Path: "c.go", Contributors: []string{"Bob"}},
		},
	})
	require.NoError(t, err)

	activities, err := s.ProjectActivities(ctx)
	require.NoError(t, err)

	results := core.RankProjects(activities, schema.OrderDesc, 0)
	require.Len(t, results, 1)
	assert.Equal(t, "Alice", results[0].Contributor)
	assert.Equal(t, 3, results[0].TotalFiles)
	assert.Equal(t, 2, results[0].ContributorFiles)
	assert.InDelta(t, 2.0/3.0, results[0].Coverage, 1e-9)
}

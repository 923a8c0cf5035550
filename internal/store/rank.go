package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/gitfolio/gitfolio/schema"
)

// ProjectActivities returns the per-project aggregates the ranking engine
// consumes: total file count and distinct-file counts per contributor,
// computed over each project's current (post-prune) scan. Projects whose
// scans have zero files still appear, with empty contributor maps.
func (s *Store) ProjectActivities(ctx context.Context) ([]schema.ProjectActivity, error) {
	byProject := make(map[string]*schema.ProjectActivity)

	totals, err := s.db.QueryContext(ctx, `
		SELECT s.project, COUNT(f.id)
		FROM scans s
		LEFT JOIN files f ON f.scan_id = s.id
		GROUP BY s.project`)
	if err != nil {
		return nil, fmt.Errorf("failed to query project totals: %w", err)
	}
	defer func() { _ = totals.Close() }()

	for totals.Next() {
		var project string
		var count int
		if err := totals.Scan(&project, &count); err != nil {
			return nil, fmt.Errorf("failed to scan project total: %w", err)
		}
		byProject[project] = &schema.ProjectActivity{
			Project:            project,
			TotalFiles:         count,
			FilesByContributor: make(map[string]int),
		}
	}
	if err := totals.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project totals: %w", err)
	}

	links, err := s.db.QueryContext(ctx, `
		SELECT s.project, c.name, COUNT(DISTINCT f.id)
		FROM scans s
		JOIN files f ON f.scan_id = s.id
		JOIN file_contributors fc ON fc.file_id = f.id
		JOIN contributors c ON c.id = fc.contributor_id
		GROUP BY s.project, c.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributor links: %w", err)
	}
	defer func() { _ = links.Close() }()

	for links.Next() {
		var project, contributor string
		var count int
		if err := links.Scan(&project, &contributor, &count); err != nil {
			return nil, fmt.Errorf("failed to scan contributor link: %w", err)
		}
		if activity, ok := byProject[project]; ok {
			activity.FilesByContributor[contributor] = count
		}
	}
	if err := links.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contributor links: %w", err)
	}

	activities := make([]schema.ProjectActivity, 0, len(byProject))
	for _, activity := range byProject {
		activities = append(activities, *activity)
	}
	sort.Slice(activities, func(i, j int) bool { return activities[i].Project < activities[j].Project })
	return activities, nil
}

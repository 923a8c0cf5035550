package outwriter

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gitfolio/gitfolio/internal"
	"github.com/gitfolio/gitfolio/schema"
)

// weekBucketsShown bounds the trailing commits-per-week section.
const weekBucketsShown = 12

// WriteMetricsResults outputs the cached contribution metrics of one
// project, dispatching on the configured output format.
func WriteMetricsResults(project string, m *schema.ContributionMetrics, cfg *internal.Config, outputFile string) error {
	switch cfg.Output {
	case "json":
		return writeWithFile(outputFile, func(w io.Writer) error {
			return writeJSON(w, m)
		}, "Wrote JSON")
	default:
		return writeWithFile(outputFile, func(w io.Writer) error {
			return writeMetricsText(w, project, m)
		}, "Wrote metrics")
	}
}

// writeMetricsText renders the human-readable metrics report: a summary
// header, per-author table sorted by commits, category activity and the
// trailing week buckets.
func writeMetricsText(w io.Writer, project string, m *schema.ContributionMetrics) error {
	if _, err := fmt.Fprintf(w, "Project: %s\n", project); err != nil {
		return err
	}
	if m.RepoRoot != "" {
		if _, err := fmt.Fprintf(w, "Repository: %s\n", m.RepoRoot); err != nil {
			return err
		}
	}
	if m.ProjectStart != nil && m.ProjectEnd != nil && m.DurationDays != nil {
		if _, err := fmt.Fprintf(w, "History: %s to %s (%d days)\n",
			m.ProjectStart.Format("2006-01-02"), m.ProjectEnd.Format("2006-01-02"), *m.DurationDays); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Total commits: %d\n\n", m.TotalCommits); err != nil {
		return err
	}

	if err := writeAuthorTable(w, m); err != nil {
		return err
	}
	if err := writeCategoryActivity(w, m); err != nil {
		return err
	}
	return writeWeekBuckets(w, m)
}

func writeAuthorTable(w io.Writer, m *schema.ContributionMetrics) error {
	authors := make([]string, 0, len(m.CommitsPerAuthor))
	for author := range m.CommitsPerAuthor {
		authors = append(authors, author)
	}
	sort.Slice(authors, func(i, j int) bool {
		a, b := authors[i], authors[j]
		if m.CommitsPerAuthor[a] != m.CommitsPerAuthor[b] {
			return m.CommitsPerAuthor[a] > m.CommitsPerAuthor[b]
		}
		return a < b
	})

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Author", "Commits", "Added", "Removed", "Files"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, author := range authors {
		data = append(data, []string{
			author,
			strconv.Itoa(m.CommitsPerAuthor[author]),
			strconv.Itoa(m.LinesAddedPerAuthor[author]),
			strconv.Itoa(m.LinesRemovedPerAuthor[author]),
			strconv.Itoa(len(m.FilesChangedPerAuthor[author])),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeCategoryActivity(w io.Writer, m *schema.ContributionMetrics) error {
	if len(m.ActivityByCategory) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nActivity by category:"); err != nil {
		return err
	}
	// Fixed category order for stable output.
	order := []schema.Category{
		schema.CategoryCode, schema.CategoryTest, schema.CategoryDocs,
		schema.CategoryDesign, schema.CategoryOther,
	}
	for _, c := range order {
		if count, ok := m.ActivityByCategory[c]; ok {
			if _, err := fmt.Fprintf(w, "  %-7s %d\n", c, count); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeWeekBuckets(w io.Writer, m *schema.ContributionMetrics) error {
	if len(m.CommitsPerWeek) == 0 {
		return nil
	}
	weeks := make([]string, 0, len(m.CommitsPerWeek))
	for week := range m.CommitsPerWeek {
		weeks = append(weeks, week)
	}
	sort.Strings(weeks)
	if len(weeks) > weekBucketsShown {
		weeks = weeks[len(weeks)-weekBucketsShown:]
	}

	if _, err := fmt.Fprintln(w, "\nRecent weekly activity:"); err != nil {
		return err
	}
	for _, week := range weeks {
		if _, err := fmt.Fprintf(w, "  %s  %d\n", week, m.CommitsPerWeek[week]); err != nil {
			return err
		}
	}
	return nil
}

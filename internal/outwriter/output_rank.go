package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gitfolio/gitfolio/internal"
	"github.com/gitfolio/gitfolio/internal/contract"
	"github.com/gitfolio/gitfolio/schema"
)

// WriteRankResults outputs ranked projects, dispatching on the configured
// output format.
func WriteRankResults(results []schema.RankingResult, cfg *internal.Config, duration time.Duration, outputFile string) error {
	switch cfg.Output {
	case "json":
		return writeWithFile(outputFile, func(w io.Writer) error {
			return writeRankJSON(w, results)
		}, "Wrote JSON")
	default:
		return writeWithFile(outputFile, func(w io.Writer) error {
			return writeRankTable(w, results, cfg, duration)
		}, "Wrote table")
	}
}

// writeRankTable generates and writes the human-readable ranking table.
func writeRankTable(w io.Writer, results []schema.RankingResult, cfg *internal.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Project", "Contributor", "Files", "Coverage", "Gap", "Team", "Score", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := getMaxTablePathWidth()
	var data [][]string
	for i, r := range results {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(r.Project, maxWidth),
			r.Contributor,
			fmt.Sprintf("%d/%d", r.ContributorFiles, r.TotalFiles),
			fmtScore(r.Coverage),
			fmtScore(r.DominanceGap),
			fmtScore(r.TeamFactor),
			fmtScore(r.Score),
			contract.GetColorLabel(r.Score),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing %d projects. Ranked in %v. Store backend: %s\n",
		len(results), duration, cfg.Backend); err != nil {
		return err
	}
	return nil
}

// writeRankJSON writes the ranking results in JSON format with rank and
// label added.
func writeRankJSON(w io.Writer, results []schema.RankingResult) error {
	type jsonRankResult struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.RankingResult
	}

	output := make([]jsonRankResult, len(results))
	for i, r := range results {
		output[i] = jsonRankResult{
			Rank:          i + 1,
			Label:         contract.GetPlainLabel(r.Score),
			RankingResult: r,
		}
	}
	return writeJSON(w, output)
}

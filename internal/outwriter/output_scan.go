package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/gitfolio/gitfolio/schema"
)

// WriteScanSummary prints the outcome of one scan: counts, payload size and
// the pruning result.
func WriteScanSummary(w io.Writer, input *schema.ScanInput, result *schema.IngestResult, duration time.Duration) error {
	var totalBytes uint64
	for _, f := range input.Files {
		if f.SizeBytes > 0 {
			totalBytes += uint64(f.SizeBytes)
		}
	}

	if _, err := fmt.Fprintf(w, "Scan #%d recorded for project %q\n", result.ScanID, input.Project); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Files: %d (%s)\n", len(input.Files), humanize.Bytes(totalBytes)); err != nil {
		return err
	}
	if input.Metrics != nil {
		if _, err := fmt.Fprintf(w, "History: %s commits across %d authors\n",
			humanize.Comma(int64(input.Metrics.TotalCommits)), len(input.Metrics.CommitsPerAuthor)); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, "History: unavailable (file inventory only)"); err != nil {
			return err
		}
	}
	if result.PrunedScans > 0 {
		if _, err := fmt.Fprintf(w, "Pruned %d older scan(s)\n", result.PrunedScans); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

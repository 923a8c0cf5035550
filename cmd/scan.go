package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitfolio/gitfolio/core"
	"github.com/gitfolio/gitfolio/internal/contract"
	"github.com/gitfolio/gitfolio/internal/gitclient"
	"github.com/gitfolio/gitfolio/internal/outwriter"
	"github.com/gitfolio/gitfolio/internal/scanner"
	"github.com/gitfolio/gitfolio/schema"
)

// scanCmd records a scan of one repository into the store.
var scanCmd = &cobra.Command{
	Use:   "scan [repo-path]",
	Short: "Record a scan of a repository into the store.",
	Long: `Walk a repository, read its full Git history and record the result.

A scan captures:
- The current file inventory with sizes, timestamps and detected languages
- Per-author commit counts, line churn and changed-file sets
- Category activity (code, test, docs, design) and weekly commit buckets
- Repository metadata (remote URL, first commit time)

Recording a new scan replaces all older scans of the same project, so the
store always reflects the latest state of each project. Directories without
readable Git history are recorded as a plain file inventory.

Examples:
  # Scan the current directory
  gitfolio scan

  # Scan another checkout under an explicit project name
  gitfolio scan ~/src/payments --project payments

  # Skip generated trees and attach a note
  gitfolio scan --exclude "gen/,*.pb.go" --notes "post-release snapshot"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		contextPath := "."
		if len(args) == 1 {
			contextPath = args[0]
		}
		if err := executeScan(contextPath); err != nil {
			contract.LogFatal("Cannot record scan", err)
		}
	},
}

// executeScan runs the full scan pipeline: resolve the repository, parse its
// history, walk the tree and ingest the result.
func executeScan(contextPath string) error {
	start := time.Now()
	client := gitclient.NewLocalGitClient()

	root, err := client.GetRepoRoot(rootCtx, contextPath)
	if err != nil {
		// Plain directories are scanned without history.
		root, err = filepath.Abs(contextPath)
		if err != nil {
			return err
		}
	}

	project := cfg.Project
	if project == "" {
		project = filepath.Base(root)
	}

	input := &schema.ScanInput{
		Project: project,
		Notes:   cfg.Notes,
	}

	lines, histErr := client.GetContributionLog(rootCtx, root)
	switch {
	case histErr == nil:
		metrics := core.ParseContributionLog(lines)
		metrics.RepoRoot = root
		input.Metrics = metrics
	case errors.Is(histErr, gitclient.ErrHistoryUnavailable):
		contract.LogWarn("No readable history; recording file inventory only", histErr)
	default:
		return histErr
	}

	files, err := scanner.New(cfg.Excludes, cfg.Workers).Scan(rootCtx, root)
	if err != nil {
		return err
	}
	if input.Metrics != nil {
		attachContributors(files, input.Metrics)
	}
	input.Files = files
	input.Tech = techSummary(files)

	if input.Metrics != nil {
		if url, err := client.GetRemoteURL(rootCtx, root, "origin"); err == nil && url != "" {
			input.RepoURL = url
		}
		if first, err := client.GetFirstCommitTime(rootCtx, root); err == nil && !first.IsZero() {
			input.CreatedAt = &first
		}
	}

	result, err := db.IngestScan(rootCtx, input)
	if err != nil {
		return err
	}
	return outwriter.WriteScanSummary(os.Stdout, input, result, time.Since(start))
}

// attachContributors inverts the per-author changed-file sets from the
// history metrics into per-file contributor lists on the inventory.
func attachContributors(files []schema.FileInput, m *schema.ContributionMetrics) {
	authors := make([]string, 0, len(m.FilesChangedPerAuthor))
	for author := range m.FilesChangedPerAuthor {
		authors = append(authors, author)
	}
	sort.Strings(authors)

	byPath := make(map[string][]string)
	for _, author := range authors {
		for _, p := range m.FilesChangedPerAuthor[author] {
			byPath[p] = append(byPath[p], author)
		}
	}

	for i := range files {
		files[i].Contributors = byPath[files[i].Path]
	}
}

// techSummary builds the detected-language snapshot from the file inventory.
func techSummary(files []schema.FileInput) *schema.TechSummary {
	seen := make(map[string]bool)
	var langs []string
	for _, f := range files {
		for _, lang := range f.Languages {
			if !seen[lang] {
				seen[lang] = true
				langs = append(langs, lang)
			}
		}
	}
	if len(langs) == 0 {
		return nil
	}
	sort.Strings(langs)
	return &schema.TechSummary{Languages: langs}
}

package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitfolio/gitfolio/internal/contract"
	"github.com/gitfolio/gitfolio/internal/outwriter"
)

// metricsCmd shows the cached contribution metrics of one project.
var metricsCmd = &cobra.Command{
	Use:   "metrics [project]",
	Short: "Show the cached contribution metrics of a project.",
	Long: `Display the contribution metrics recorded by the latest scan of a project.

Shows:
- Project time span (first to last commit) and total commits
- Per-author commits, line churn and distinct changed files
- Activity per category (code, test, docs, design, other)
- Weekly commit buckets for the most recent weeks

Metrics come from the store, not from a fresh history read, so this works
anywhere the store is reachable.

Examples:
  # Metrics for one project
  gitfolio metrics payments

  # Same, as JSON for further processing
  gitfolio metrics payments --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		project := cfg.Project
		if len(args) == 1 {
			project = args[0]
		}
		if project == "" {
			contract.LogFatal("Cannot show metrics", errors.New("project name is required"))
		}

		m, err := db.GetMetrics(rootCtx, project)
		if err != nil {
			contract.LogFatal("Cannot show metrics", err)
		}
		if err := outwriter.WriteMetricsResults(project, m, cfg, viper.GetString("output-file")); err != nil {
			contract.LogFatal("Cannot write metrics", err)
		}
	},
}

package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitfolio/gitfolio/core"
	"github.com/gitfolio/gitfolio/internal/contract"
	"github.com/gitfolio/gitfolio/internal/outwriter"
	"github.com/gitfolio/gitfolio/schema"
)

// rankCmd ranks scanned projects by contribution concentration.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank scanned projects by contribution concentration.",
	Long: `Rank every scanned project by how concentrated its contributions are.

Each project is scored for its top contributor from three components:
- Coverage: share of files the contributor has touched
- Dominance gap: lead over the second-most-active contributor
- Team factor: how small the contributing group is

With --contributor, projects are instead scored for that one person across
all projects they have file links in. Any spelling variant of the name
resolves to the same contributor.

Examples:
  # Show the most single-handedly carried projects
  gitfolio rank

  # Show the most collectively owned projects first
  gitfolio rank --order asc

  # Where does one person carry the most weight?
  gitfolio rank --contributor "tanner-dyck"

  # Machine-readable output for scripting
  gitfolio rank --output json --output-file rankings.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := executeRank(); err != nil {
			contract.LogFatal("Cannot rank projects", err)
		}
	},
}

// executeRank aggregates the store's activity and scores it.
func executeRank() error {
	start := time.Now()

	activities, err := db.ProjectActivities(rootCtx)
	if err != nil {
		return err
	}

	var results []schema.RankingResult
	if cfg.Contributor != "" {
		results = core.RankByContributor(activities, cfg.Contributor, cfg.ResultLimit)
	} else {
		results = core.RankProjects(activities, cfg.Order, cfg.ResultLimit)
	}

	return outwriter.WriteRankResults(results, cfg, time.Since(start), viper.GetString("output-file"))
}

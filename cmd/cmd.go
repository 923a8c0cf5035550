// Package cmd defines the command-line interface for gitfolio.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitfolio/gitfolio/internal"
	"github.com/gitfolio/gitfolio/internal/contract"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("backend", internal.DefaultBackend, "Store backend: sqlite or mysql or postgres")
	rootCmd.PersistentFlags().String("conn", "", "Database connection string for mysql/postgres (defaults to ~/.gitfolio.db for sqlite)")
	rootCmd.PersistentFlags().IntP("limit", "l", internal.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("workers", internal.DefaultWorkers, "Number of concurrent scan workers")
	rootCmd.PersistentFlags().String("order", internal.DefaultOrder, "Ranking direction: asc or desc")
	rootCmd.PersistentFlags().String("output", "text", "Output format: text or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of path prefixes or patterns to ignore")
	rootCmd.PersistentFlags().StringP("contributor", "c", "", "Contributor to rank for (any spelling variant)")
	rootCmd.PersistentFlags().String("project", "", "Project name override (defaults to the repository directory name)")
	rootCmd.PersistentFlags().String("notes", "", "Free-form notes attached to the recorded scan")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of migrateCmd to Viper
	migrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(migrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding migrate flags", err)
	}
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitfolio/gitfolio/internal"
	"github.com/gitfolio/gitfolio/internal/store"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &internal.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &internal.ConfigRawInput{}

// db is the shared scan store handle, opened by sharedSetup.
var db *store.Store

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "gitfolio",
	Short:              "Record project scans and rank contribution concentration.",
	Long:               `Gitfolio reads Git history and file inventories to show who carries each of your projects.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".gitfolio") // Name of config file (without extension)
		viper.SetConfigType("yaml")      // We'll use YAML format
		viper.AddConfigPath(".")         // Look in the current directory
		viper.AddConfigPath("$HOME")     // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("GITFOLIO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("backend", internal.DefaultBackend)
	viper.SetDefault("limit", internal.DefaultResultLimit)
	viper.SetDefault("workers", internal.DefaultWorkers)
	viper.SetDefault("order", internal.DefaultOrder)
	viper.SetDefault("output", "text")
}

// resolveConfig merges the config file, unmarshals the raw input and runs
// validation to populate the global 'cfg'. It does not touch the store.
func resolveConfig() error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	return internal.ProcessAndValidate(cfg, input)
}

// sharedSetup resolves configuration and opens the scan store.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	if err := resolveConfig(); err != nil {
		return err
	}

	st, err := store.Open(cfg.Backend, cfg.Conn)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	db = st
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// migrateSetupWrapper resolves configuration without opening the store, so
// migrations can run against a fresh database.
func migrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return resolveConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

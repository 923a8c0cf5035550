// Package internal holds runtime configuration shared by all commands.
package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/gitfolio/gitfolio/internal/contract"
	"github.com/gitfolio/gitfolio/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 10
	MaxResultLimit     = 1000
	DefaultWorkers     = 4
	DefaultBackend     = string(schema.SQLiteBackend)
	DefaultOrder       = string(schema.OrderDesc)
)

// TimeFormat is the default time representation.
var TimeFormat = time.RFC3339

// Config holds the runtime configuration for scanning and ranking.
// Fields that are set directly by simple flags remain the same (e.g.,
// ResultLimit). Fields that require parsing (backend, order, excludes) are
// set by ProcessAndValidate after flags and config files are read.
type Config struct {
	Backend     schema.StoreBackend // Storage backend: sqlite, mysql or postgres
	Conn        string              // Connection string; SQLite file path when empty
	ResultLimit int                 // Maximum number of rows to show in results
	Workers     int                 // Number of concurrent workers for the file scan
	Order       schema.RankOrder    // Ranking direction: asc or desc
	Output      string              // Output format: text or json
	Excludes    []string            // Path patterns to skip while scanning (FINAL processed list)
	Contributor string              // Optional contributor focus for ranking
	Project     string              // Optional project name override for scans
	Notes       string              // Optional free-form notes attached to a scan
}

// ConfigRawInput holds the raw string inputs from flags and config files
// that require parsing or validation. These fields are bound directly to
// Cobra's flags and Viper keys in cmd.
type ConfigRawInput struct {
	Backend     string `mapstructure:"backend"`
	Conn        string `mapstructure:"conn"`
	ResultLimit int    `mapstructure:"limit"`
	Workers     int    `mapstructure:"workers"`
	Order       string `mapstructure:"order"`
	Output      string `mapstructure:"output"`
	ExcludeStr  string `mapstructure:"exclude"`
	Contributor string `mapstructure:"contributor"`
	Project     string `mapstructure:"project"`
	Notes       string `mapstructure:"notes"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. ResultLimit Validation ---
	if input.ResultLimit <= 0 || input.ResultLimit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.ResultLimit)
	}
	cfg.ResultLimit = input.ResultLimit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Backend Validation ---
	switch schema.StoreBackend(strings.ToLower(input.Backend)) {
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgresBackend:
		cfg.Backend = schema.StoreBackend(strings.ToLower(input.Backend))
	default:
		return fmt.Errorf("invalid backend '%s'. must be sqlite, mysql, postgres", input.Backend)
	}

	// --- 4. Connection String Resolution ---
	cfg.Conn = strings.TrimSpace(input.Conn)
	if cfg.Conn == "" {
		if cfg.Backend != schema.SQLiteBackend {
			return fmt.Errorf("backend '%s' requires a connection string", cfg.Backend)
		}
		cfg.Conn = contract.GetDBFilePath()
	}

	// --- 5. Order and Output Validation ---
	switch schema.RankOrder(strings.ToLower(input.Order)) {
	case schema.OrderAsc, schema.OrderDesc:
		cfg.Order = schema.RankOrder(strings.ToLower(input.Order))
	default:
		return fmt.Errorf("invalid order '%s'. must be asc, desc", input.Order)
	}

	cfg.Output = strings.ToLower(input.Output)
	validOutputs := map[string]bool{"text": true, "json": true}
	if _, ok := validOutputs[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json", cfg.Output)
	}

	// --- 6. Excludes Processing ---
	defaults := []string{
		// Version control and tooling state
		".git/",

		// Dependency lock files
		"Cargo.lock",        // Rust
		"go.sum",            // Go
		"package-lock.json", // JS/NPM
		"yarn.lock",         // JS/Yarn
		"pnpm-lock.yaml",    // JS/PNPM
		"composer.lock",     // PHP
		"uv.lock",           // Python

		// Generated assets
		".min.js", ".min.css",

		// Build output directories
		"dist/", "build/", "out/", "target/", "bin/",
		"node_modules/", "__pycache__/",
	}
	cfg.Excludes = defaults

	if input.ExcludeStr != "" {
		parts := strings.SplitSeq(input.ExcludeStr, ",")
		for p := range parts {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	// --- 7. Passthrough fields ---
	cfg.Contributor = strings.TrimSpace(input.Contributor)
	cfg.Project = strings.TrimSpace(input.Project)
	cfg.Notes = input.Notes

	return nil
}

// Package contract holds small shared helpers used across commands and
// output writers: score labels, path filtering and console logging.
package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Ownership label constants.
const (
	DominantValue   = "Dominant"   // Dominant ownership
	LeadingValue    = "Leading"    // Leading ownership
	SharedValue     = "Shared"     // Shared ownership
	CollectiveValue = "Collective" // Collective ownership
)

// Color variables for console output.
var (
	DominantColor   = color.New(color.FgRed, color.Bold)     // dominantColor flags single-owner projects.
	LeadingColor    = color.New(color.FgMagenta, color.Bold) // leadingColor flags a clear lead contributor.
	SharedColor     = color.New(color.FgYellow)              // sharedColor represents balanced ownership, not bold.
	CollectiveColor = color.New(color.FgCyan)                // collectiveColor represents broadly spread work.
)

// GetPlainLabel returns a plain text label describing how concentrated a
// project's ownership is, based on the composite score. This is the core
// logic used for JSON, parquet metadata, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 0.8:
		return DominantValue
	case score >= 0.6:
		return LeadingValue
	case score >= 0.4:
		return SharedValue
	default:
		return CollectiveValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case DominantValue:
		return DominantColor.Sprint(text)
	case LeadingValue:
		return LeadingColor.Sprint(text)
	case SharedValue:
		return SharedColor.Sprint(text)
	default: // "Collective"
		return CollectiveColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ShouldIgnore returns true if the given path matches any of the exclude
// patterns. It supports simple glob patterns (using filepath.Match) when the
// pattern contains wildcard characters (*, ?, [ ]). Patterns ending with '/'
// are treated as prefixes. Patterns starting with '.' are treated as suffix
// (extension) matches. A user can provide patterns like "vendor/",
// "node_modules/", "*.min.js".
func ShouldIgnore(path string, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		// If the pattern contains glob characters, try filepath.Match.
		if strings.ContainsAny(ex, "*?[") || strings.Contains(ex, "**") {
			pat := strings.ReplaceAll(ex, "**", "*")
			if ok, err := filepath.Match(pat, path); err == nil && ok {
				return true
			}
			// Also try matching against the base filename (e.g. *.min.js)
			if ok, err := filepath.Match(pat, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		// Handle prefix, suffix, or substring matches
		switch {
		case strings.HasSuffix(ex, "/"):
			if strings.HasPrefix(path, ex) {
				return true
			}
		case strings.HasPrefix(ex, "."):
			if strings.HasSuffix(path, ex) {
				return true
			}
		case strings.Contains(path, ex):
			return true
		}
	}
	return false
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the SQLite DB file used when no
// connection string is configured.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitfolio.db"
	}
	return filepath.Join(homeDir, ".gitfolio.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and
// at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

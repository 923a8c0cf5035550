// Package gitclient wraps the local git binary behind a small interface so
// that scan logic can be tested without a real repository.
package gitclient

import (
	"context"
	"errors"
	"time"
)

// ErrHistoryUnavailable marks repositories whose history cannot be read,
// e.g. the git binary is missing, the directory is not a git work tree or
// the repository has no commits. Callers are expected to treat it as a
// degraded scan, not a fatal failure.
var ErrHistoryUnavailable = errors.New("git history unavailable")

// GitClient defines the git operations needed for contribution analysis.
// This allows the scan pipeline to be tested without a git executable.
type GitClient interface {
	// Run executes a git command and returns its stdout output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the Git
	// repository containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetContributionLog returns the full-history commit log lines used by
	// the metrics parser: one marker line per commit, a hash|author|date
	// header, then numstat lines. It returns ErrHistoryUnavailable when the
	// path has no readable history.
	GetContributionLog(ctx context.Context, repoPath string) ([]string, error)

	// GetFirstCommitTime returns the author time of the repository's first
	// commit.
	GetFirstCommitTime(ctx context.Context, repoPath string) (time.Time, error)

	// GetRemoteURL returns the fetch URL of the named remote, usually
	// "origin". An unset remote yields an empty string and no error.
	GetRemoteURL(ctx context.Context, repoPath string, remote string) (string, error)
}

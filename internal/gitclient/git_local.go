package gitclient

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// logFormat produces the commit framing the metrics parser expects: a
// marker line, then "hash|author|date" with an iso date.
const logFormat = "--GIT-COMMIT--%n%H|%an|%ad"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, fmt.Errorf("git '%v' exit: %s", strings.Join(fullArgs, " "), strings.TrimSpace(string(exitErr.Stderr)))
	} else if err != nil {
		return nil, fmt.Errorf("git '%v' unknown: %w", strings.Join(fullArgs, " "), err)
	}
	return out, nil
}

// GetRepoRoot implements the GitClient interface by executing
// 'git rev-parse --show-toplevel'.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetContributionLog implements the GitClient interface. Merge commits are
// skipped so that contribution counts reflect authored work.
func (c *LocalGitClient) GetContributionLog(ctx context.Context, repoPath string) ([]string, error) {
	args := []string{
		"log",
		"--no-merges",
		"--pretty=format:" + logFormat,
		"--date=iso",
		"--numstat",
	}
	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return nil, historyError(err)
	}
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return []string{}, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// GetFirstCommitTime implements the GitClient interface.
func (c *LocalGitClient) GetFirstCommitTime(ctx context.Context, repoPath string) (time.Time, error) {
	args := []string{
		"log",
		"--reverse",
		"--pretty=format:%ct",
		"--max-parents=0",
	}
	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return time.Time{}, historyError(err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	timestampStr := strings.TrimSpace(lines[0])
	timestamp, err := strconv.ParseInt(timestampStr, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse commit time '%s': %w", timestampStr, err)
	}
	return time.Unix(timestamp, 0).UTC(), nil
}

// GetRemoteURL implements the GitClient interface. Repositories without the
// named remote return an empty URL rather than an error.
func (c *LocalGitClient) GetRemoteURL(ctx context.Context, repoPath string, remote string) (string, error) {
	out, err := c.Run(ctx, repoPath, "remote", "get-url", remote)
	if err != nil {
		if isMissingRemote(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// historyError folds any failed history read into the ErrHistoryUnavailable
// sentinel, preserving the original message. A missing git binary, a
// non-repository path and a corrupt repository all degrade the same way:
// callers keep the file inventory and skip the history.
func historyError(err error) error {
	return fmt.Errorf("%w: %v", ErrHistoryUnavailable, err)
}

// isMissingRemote reports whether a 'git remote get-url' failure means the
// remote simply is not configured.
func isMissingRemote(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "no such remote")
}

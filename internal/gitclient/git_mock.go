package gitclient

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock for the GitClient type.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	mockArgs := []interface{}{ctx, repoPath}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	root, _ := ret.Get(0).(string)
	return root, ret.Error(1)
}

// GetContributionLog implements the GitClient interface.
func (m *MockGitClient) GetContributionLog(ctx context.Context, repoPath string) ([]string, error) {
	ret := m.Called(ctx, repoPath)
	lines, _ := ret.Get(0).([]string)
	return lines, ret.Error(1)
}

// GetFirstCommitTime implements the GitClient interface.
func (m *MockGitClient) GetFirstCommitTime(ctx context.Context, repoPath string) (time.Time, error) {
	ret := m.Called(ctx, repoPath)
	t, _ := ret.Get(0).(time.Time)
	return t, ret.Error(1)
}

// GetRemoteURL implements the GitClient interface.
func (m *MockGitClient) GetRemoteURL(ctx context.Context, repoPath string, remote string) (string, error) {
	ret := m.Called(ctx, repoPath, remote)
	url, _ := ret.Get(0).(string)
	return url, ret.Error(1)
}

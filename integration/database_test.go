//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestGitfolioWithMySQL tests the gitfolio CLI with a MySQL backend.
func TestGitfolioWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "gitfolio",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/gitfolio?parseTime=true", host, port.Port())
	runGitfolioSuite(t, "mysql", connStr)
}

// TestGitfolioWithPostgres tests the gitfolio CLI with a PostgreSQL backend.
func TestGitfolioWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runGitfolioSuite(t, "postgres", connStr)
}

// runGitfolioSuite drives the CLI end to end against one backend: migrate
// the schema, record a scan of this repository, then read rankings and
// metrics back out of the store.
func runGitfolioSuite(t *testing.T, backend, connStr string) {
	// Set environment variables
	_ = os.Setenv("GITFOLIO_BACKEND", backend)
	_ = os.Setenv("GITFOLIO_CONN", connStr)
	defer func() { _ = os.Unsetenv("GITFOLIO_BACKEND") }()
	defer func() { _ = os.Unsetenv("GITFOLIO_CONN") }()

	// Run gitfolio migrate
	err := runGitfolioCommand(t, "migrate")
	require.NoError(t, err)

	// Run gitfolio scan (on project root)
	err = runGitfolioCommand(t, "scan", "--project", "gitfolio-it")
	require.NoError(t, err)

	// Run gitfolio rank
	err = runGitfolioCommand(t, "rank", "--limit", "5")
	require.NoError(t, err)

	// Run gitfolio metrics for the scanned project
	err = runGitfolioCommand(t, "metrics", "gitfolio-it")
	require.NoError(t, err)

	// Scan again: older scans of the project must be pruned, not accumulated
	err = runGitfolioCommand(t, "scan", "--project", "gitfolio-it")
	require.NoError(t, err)
}

func runGitfolioCommand(t *testing.T, args ...string) error {
	gitfolioPath := getGitfolioBinary()
	cmd := exec.Command(gitfolioPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}

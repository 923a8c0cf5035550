package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gitfolio/gitfolio/schema"
)

// ProjectRecord is one row of the projects table with its cached snapshots
// decoded.
type ProjectRecord struct {
	ID        int64
	Name      string
	RepoURL   string
	CreatedAt time.Time
	Thumbnail string
	Metrics   *schema.ContributionMetrics
	Tech      *schema.TechSummary
}

// GetProject loads one project row by name. Returns ErrProjectNotFound when
// no such project exists.
func (s *Store) GetProject(ctx context.Context, name string) (*ProjectRecord, error) {
	var (
		record      ProjectRecord
		repoURL     sql.NullString
		createdAt   any
		thumbnail   sql.NullString
		metricsJSON sql.NullString
		techJSON    sql.NullString
	)
	row := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, name, repo_url, created_at, thumbnail, metrics_json, tech_json
		FROM projects WHERE name = ?`), name)
	err := row.Scan(&record.ID, &record.Name, &repoURL, &createdAt, &thumbnail, &metricsJSON, &techJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project %q: %w", name, err)
	}

	record.RepoURL = repoURL.String
	record.Thumbnail = thumbnail.String
	if record.CreatedAt, err = s.scanTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to read created_at for project %q: %w", name, err)
	}

	if metricsJSON.Valid && metricsJSON.String != "" {
		var metrics schema.ContributionMetrics
		if err := json.Unmarshal([]byte(metricsJSON.String), &metrics); err != nil {
			return nil, fmt.Errorf("failed to decode metrics snapshot for %q: %w", name, err)
		}
		record.Metrics = &metrics
	}
	if techJSON.Valid && techJSON.String != "" {
		var tech schema.TechSummary
		if err := json.Unmarshal([]byte(techJSON.String), &tech); err != nil {
			return nil, fmt.Errorf("failed to decode tech snapshot for %q: %w", name, err)
		}
		record.Tech = &tech
	}
	return &record, nil
}

// GetMetrics returns the cached contribution metrics of a project. Returns
// ErrNoMetrics when the project exists but no scan has supplied metrics yet.
func (s *Store) GetMetrics(ctx context.Context, name string) (*schema.ContributionMetrics, error) {
	record, err := s.GetProject(ctx, name)
	if err != nil {
		return nil, err
	}
	if record.Metrics == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoMetrics, name)
	}
	return record.Metrics, nil
}

// ListScans returns all scan rows, newest first.
func (s *Store) ListScans(ctx context.Context) ([]schema.ScanRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scanned_at, project, notes FROM scans ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.ScanRecord
	for rows.Next() {
		var record schema.ScanRecord
		var scannedAt any
		var notes sql.NullString
		if err := rows.Scan(&record.ID, &scannedAt, &record.Project, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan scan row: %w", err)
		}
		if record.ScannedAt, err = s.scanTime(scannedAt); err != nil {
			return nil, fmt.Errorf("failed to read scanned_at: %w", err)
		}
		record.Notes = notes.String
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scans: %w", err)
	}
	return records, nil
}

// CountScanFiles returns the number of files recorded for one scan.
func (s *Store) CountScanFiles(ctx context.Context, scanID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT COUNT(*) FROM files WHERE scan_id = ?`), scanID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count scan files: %w", err)
	}
	return count, nil
}

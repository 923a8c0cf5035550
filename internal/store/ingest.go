package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gitfolio/gitfolio/core"
	"github.com/gitfolio/gitfolio/schema"
)

// IngestScan records one scan in a single transaction: merge the project
// row, insert the scan and its files with language/contributor links, then
// prune every older scan of the same project. Any failure rolls the whole
// transaction back, leaving prior state untouched.
func (s *Store) IngestScan(ctx context.Context, input *schema.ScanInput) (*schema.IngestResult, error) {
	if input == nil || strings.TrimSpace(input.Project) == "" {
		return nil, errors.New("scan input requires a project name")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin ingest transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.mergeProject(ctx, tx, input); err != nil {
		return nil, err
	}

	scanID, err := s.insertScan(ctx, tx, input)
	if err != nil {
		return nil, err
	}

	pruned, err := s.pruneOldScans(ctx, tx, input.Project, scanID)
	if err != nil {
		return nil, err
	}

	if err := s.insertFiles(ctx, tx, scanID, input); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ingest transaction: %w", err)
	}
	return &schema.IngestResult{ScanID: scanID, PrunedScans: pruned}, nil
}

// mergeProject creates or updates the long-lived project row. Identity
// fields (repo_url, created_at, thumbnail) only fill empty columns so that
// a re-scan never erases curated values; the metrics and tech snapshots
// always follow the newest scan that supplies them.
func (s *Store) mergeProject(ctx context.Context, tx *sql.Tx, input *schema.ScanInput) error {
	patch, err := buildProjectPatch(input)
	if err != nil {
		return err
	}

	var (
		id        int64
		repoURL   sql.NullString
		createdAt any
		thumbnail sql.NullString
	)
	row := tx.QueryRowContext(ctx,
		s.rebind(`SELECT id, repo_url, created_at, thumbnail FROM projects WHERE name = ?`),
		input.Project)
	err = row.Scan(&id, &repoURL, &createdAt, &thumbnail)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, s.rebind(`
			INSERT INTO projects (name, repo_url, created_at, thumbnail, metrics_json, tech_json)
			VALUES (?, ?, ?, ?, ?, ?)`),
			input.Project,
			nullString(patch.RepoURL),
			s.nullablePatchTime(patch.CreatedAt),
			nullString(patch.Thumbnail),
			nullString(patch.MetricsJSON),
			nullString(patch.TechJSON),
		)
		if err != nil {
			return fmt.Errorf("failed to insert project %q: %w", input.Project, err)
		}
		return nil

	case err != nil:
		return fmt.Errorf("failed to load project %q: %w", input.Project, err)
	}

	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if patch.RepoURL != nil && !repoURL.Valid {
		sets = append(sets, "repo_url = ?")
		args = append(args, *patch.RepoURL)
	}
	existingCreated, err := s.scanTime(createdAt)
	if err != nil {
		return fmt.Errorf("failed to read created_at for project %q: %w", input.Project, err)
	}
	if patch.CreatedAt != nil && existingCreated.IsZero() {
		sets = append(sets, "created_at = ?")
		args = append(args, s.formatTime(*patch.CreatedAt))
	}
	if patch.Thumbnail != nil && !thumbnail.Valid {
		sets = append(sets, "thumbnail = ?")
		args = append(args, *patch.Thumbnail)
	}
	if patch.MetricsJSON != nil {
		sets = append(sets, "metrics_json = ?")
		args = append(args, *patch.MetricsJSON)
	}
	if patch.TechJSON != nil {
		sets = append(sets, "tech_json = ?")
		args = append(args, *patch.TechJSON)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE projects SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := tx.ExecContext(ctx, s.rebind(query), args...); err != nil {
		return fmt.Errorf("failed to update project %q: %w", input.Project, err)
	}
	return nil
}

// buildProjectPatch turns the optional enrichment fields of a scan into a
// typed partial update.
func buildProjectPatch(input *schema.ScanInput) (*schema.ProjectPatch, error) {
	patch := &schema.ProjectPatch{CreatedAt: input.CreatedAt}
	if input.RepoURL != "" {
		patch.RepoURL = &input.RepoURL
	}
	if input.Metrics != nil {
		raw, err := json.Marshal(input.Metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metrics snapshot: %w", err)
		}
		str := string(raw)
		patch.MetricsJSON = &str
	}
	if input.Tech != nil {
		raw, err := json.Marshal(input.Tech)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tech snapshot: %w", err)
		}
		str := string(raw)
		patch.TechJSON = &str
	}
	return patch, nil
}

// insertScan inserts the scan row and returns its ID.
func (s *Store) insertScan(ctx context.Context, tx *sql.Tx, input *schema.ScanInput) (int64, error) {
	scannedAt := s.formatTime(time.Now())

	if s.backend == schema.PostgresBackend {
		var scanID int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO scans (scanned_at, project, notes) VALUES ($1, $2, $3) RETURNING id`,
			scannedAt, input.Project, input.Notes).Scan(&scanID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert scan: %w", err)
		}
		return scanID, nil
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO scans (scanned_at, project, notes) VALUES (?, ?, ?)`,
		scannedAt, input.Project, input.Notes)
	if err != nil {
		return 0, fmt.Errorf("failed to insert scan: %w", err)
	}
	scanID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read scan id: %w", err)
	}
	return scanID, nil
}

// pruneOldScans deletes every scan of the project except keepID, in
// dependency order: link rows first, then files, then the scans themselves.
// Contributors and languages are shared dimensions and are never pruned.
func (s *Store) pruneOldScans(ctx context.Context, tx *sql.Tx, project string, keepID int64) (int, error) {
	rows, err := tx.QueryContext(ctx,
		s.rebind(`SELECT id FROM scans WHERE project = ? AND id <> ?`),
		project, keepID)
	if err != nil {
		return 0, fmt.Errorf("failed to list old scans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var oldIDs []any
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to scan old scan id: %w", err)
		}
		oldIDs = append(oldIDs, id)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating old scans: %w", err)
	}
	if len(oldIDs) == 0 {
		return 0, nil
	}

	in := "(" + strings.TrimSuffix(strings.Repeat("?,", len(oldIDs)), ",") + ")"
	statements := []string{
		`DELETE FROM file_contributors WHERE file_id IN (SELECT id FROM files WHERE scan_id IN ` + in + `)`,
		`DELETE FROM file_languages WHERE file_id IN (SELECT id FROM files WHERE scan_id IN ` + in + `)`,
		`DELETE FROM files WHERE scan_id IN ` + in,
		`DELETE FROM scans WHERE id IN ` + in,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, s.rebind(stmt), oldIDs...); err != nil {
			return 0, fmt.Errorf("failed to prune old scans: %w", err)
		}
	}
	return len(oldIDs), nil
}

// insertFiles writes the file inventory plus its language and contributor
// links. Files without their own languages or contributors inherit the
// whole-scan defaults. Contributor names are canonicalized before linking,
// which may merge several raw spellings into one link.
func (s *Store) insertFiles(ctx context.Context, tx *sql.Tx, scanID int64, input *schema.ScanInput) error {
	contribIDs := make(map[string]int64)
	langIDs := make(map[string]int64)

	for _, file := range input.Files {
		fileID, err := s.insertFile(ctx, tx, scanID, file)
		if err != nil {
			return err
		}

		languages := file.Languages
		if len(languages) == 0 {
			languages = input.DefaultLanguages
		}
		linkedLangs := make(map[int64]bool)
		for _, lang := range languages {
			if lang == "" {
				continue
			}
			langID, err := s.dimensionID(ctx, tx, "languages", lang, langIDs)
			if err != nil {
				return err
			}
			if linkedLangs[langID] {
				continue
			}
			linkedLangs[langID] = true
			if _, err := tx.ExecContext(ctx,
				s.rebind(`INSERT INTO file_languages (file_id, language_id) VALUES (?, ?)`),
				fileID, langID); err != nil {
				return fmt.Errorf("failed to link language %q: %w", lang, err)
			}
		}

		contributors := file.Contributors
		if len(contributors) == 0 {
			contributors = input.DefaultContributors
		}
		linkedContribs := make(map[int64]bool)
		for _, raw := range contributors {
			name := core.CanonicalName(raw)
			if name == "" {
				continue
			}
			contribID, err := s.dimensionID(ctx, tx, "contributors", name, contribIDs)
			if err != nil {
				return err
			}
			if linkedContribs[contribID] {
				continue
			}
			linkedContribs[contribID] = true
			if _, err := tx.ExecContext(ctx,
				s.rebind(`INSERT INTO file_contributors (file_id, contributor_id) VALUES (?, ?)`),
				fileID, contribID); err != nil {
				return fmt.Errorf("failed to link contributor %q: %w", name, err)
			}
		}
	}
	return nil
}

// insertFile writes one file row and returns its ID.
func (s *Store) insertFile(ctx context.Context, tx *sql.Tx, scanID int64, file schema.FileInput) (int64, error) {
	var metadata any
	if len(file.Metadata) > 0 {
		raw, err := json.Marshal(file.Metadata)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal metadata for %q: %w", file.Path, err)
		}
		metadata = string(raw)
	}

	args := []any{
		scanID, file.Name, file.Path, file.Extension, file.SizeBytes,
		s.nullableTime(file.CreatedAt), s.nullableTime(file.ModifiedAt),
		nullIfEmpty(file.Owner), metadata,
	}

	if s.backend == schema.PostgresBackend {
		var fileID int64
		err := tx.QueryRowContext(ctx, s.rebind(`
			INSERT INTO files (scan_id, name, path, extension, size_bytes, created_at, modified_at, owner, metadata)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`), args...).Scan(&fileID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert file %q: %w", file.Path, err)
		}
		return fileID, nil
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO files (scan_id, name, path, extension, size_bytes, created_at, modified_at, owner, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert file %q: %w", file.Path, err)
	}
	fileID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read file id: %w", err)
	}
	return fileID, nil
}

// dimensionID gets or creates a row in a name dimension table
// (contributors or languages), caching IDs for the transaction.
func (s *Store) dimensionID(ctx context.Context, tx *sql.Tx, table, name string, cache map[string]int64) (int64, error) {
	if id, ok := cache[name]; ok {
		return id, nil
	}

	var id int64
	err := tx.QueryRowContext(ctx,
		s.rebind(fmt.Sprintf(`SELECT id FROM %s WHERE name = ?`, table)),
		name).Scan(&id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if s.backend == schema.PostgresBackend {
			err = tx.QueryRowContext(ctx,
				fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) RETURNING id`, table),
				name).Scan(&id)
			if err != nil {
				return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
			}
		} else {
			result, execErr := tx.ExecContext(ctx,
				fmt.Sprintf(`INSERT INTO %s (name) VALUES (?)`, table), name)
			if execErr != nil {
				return 0, fmt.Errorf("failed to insert into %s: %w", table, execErr)
			}
			id, err = result.LastInsertId()
			if err != nil {
				return 0, fmt.Errorf("failed to read %s id: %w", table, err)
			}
		}
	case err != nil:
		return 0, fmt.Errorf("failed to look up %s %q: %w", table, name, err)
	}

	cache[name] = id
	return id, nil
}

// nullableTime maps the zero time to NULL.
func (s *Store) nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return s.formatTime(t)
}

// nullablePatchTime maps a nil patch time to NULL.
func (s *Store) nullablePatchTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return s.formatTime(*t)
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

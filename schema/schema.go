// Package schema has the shared data structures and constants that flow
// between the scanner, the metrics parser, the store and the ranking engine.
package schema

import "time"

// Category is the activity bucket a file path falls into.
type Category string

// Activity categories.
const (
	CategoryCode   Category = "code"
	CategoryTest   Category = "test"
	CategoryDocs   Category = "docs"
	CategoryDesign Category = "design"
	CategoryOther  Category = "other"
)

// StoreBackend identifies the relational backend for the scan store.
type StoreBackend string

// Supported store backends.
const (
	SQLiteBackend   StoreBackend = "sqlite"
	MySQLBackend    StoreBackend = "mysql"
	PostgresBackend StoreBackend = "postgres"
)

// RankOrder controls the direction of the composite-score sort.
type RankOrder string

// Supported rank orders.
const (
	OrderDesc RankOrder = "desc"
	OrderAsc  RankOrder = "asc"
)

// ContributionMetrics is the per-repository aggregate computed from the
// version-control log. All author keys are canonical names. Zero commits is
// a valid state: every map is empty and the time bounds are nil.
type ContributionMetrics struct {
	RepoRoot              string              `json:"repo_root,omitempty"`
	ProjectStart          *time.Time          `json:"project_start,omitempty"`
	ProjectEnd            *time.Time          `json:"project_end,omitempty"`
	DurationDays          *int                `json:"duration_days,omitempty"`
	TotalCommits          int                 `json:"total_commits"`
	CommitsPerAuthor      map[string]int      `json:"commits_per_author"`
	LinesAddedPerAuthor   map[string]int      `json:"lines_added_per_author"`
	LinesRemovedPerAuthor map[string]int      `json:"lines_removed_per_author"`
	FilesChangedPerAuthor map[string][]string `json:"files_changed_per_author"`
	ActivityByCategory    map[Category]int    `json:"activity_counts_per_category"`
	CommitsPerWeek        map[string]int      `json:"commits_per_week"`
}

// FileInput describes one file of a scan as supplied to ingestion.
// Languages and Contributors may be empty; ingestion then falls back to the
// whole-scan defaults on ScanInput.
type FileInput struct {
	Name         string
	Path         string
	Extension    string
	SizeBytes    int64
	CreatedAt    time.Time
	ModifiedAt   time.Time
	Owner        string
	Metadata     map[string]string
	Languages    []string
	Contributors []string
}

// ScanInput is the full payload for one ingestion transaction.
type ScanInput struct {
	Project string
	Notes   string
	Files   []FileInput

	// Whole-scan fallbacks applied to files without per-file metadata.
	DefaultLanguages    []string
	DefaultContributors []string

	// Optional project-level enrichment, merged non-destructively into the
	// long-lived project row.
	RepoURL   string
	CreatedAt *time.Time
	Metrics   *ContributionMetrics
	Tech      *TechSummary
}

// TechSummary is the detected-technology snapshot cached on the project row.
type TechSummary struct {
	Languages []string `json:"languages"`
}

// IngestResult reports the outcome of one ingestion transaction.
type IngestResult struct {
	ScanID      int64
	PrunedScans int
}

// ProjectPatch is a typed partial update for the long-lived project row.
// Nil fields are left untouched. Merge fields only fill columns that are
// still empty; the JSON snapshots always replace the previous value since
// they describe the newest scan.
type ProjectPatch struct {
	RepoURL     *string
	CreatedAt   *time.Time
	Thumbnail   *string
	MetricsJSON *string
	TechJSON    *string
}

// ScanRecord is one row of the scans table.
type ScanRecord struct {
	ID        int64
	ScannedAt time.Time
	Project   string
	Notes     string
}

// ProjectActivity is the per-project aggregation the ranking engine works
// from: total file count plus distinct-file counts per canonical
// contributor. It is derived from the current scan's file/contributor links.
type ProjectActivity struct {
	Project            string
	TotalFiles         int
	FilesByContributor map[string]int
}

// RankingResult is one row of ranked output, either project-mode (the top
// contributor of each project) or contributor-mode (one named contributor
// across projects). Never persisted; recomputed on demand.
type RankingResult struct {
	Project           string  `json:"project"`
	Contributor       string  `json:"contributor"`
	TotalFiles        int     `json:"total_files"`
	ContributorFiles  int     `json:"contrib_files"`
	ContributorsCount int     `json:"contributors_count"`
	Coverage          float64 `json:"coverage"`
	DominanceGap      float64 `json:"dominance_gap"`
	TeamFactor        float64 `json:"team_factor"`
	Score             float64 `json:"score"`
}

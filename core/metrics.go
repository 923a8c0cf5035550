package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gitfolio/gitfolio/schema"
)

// CommitMarker is the line that separates commits in the contribution log.
// It must match the --pretty format requested by the history extractor.
const CommitMarker = "--GIT-COMMIT--"

// headerDateFormat is the fallback layout for commit dates that are not
// strict RFC3339, e.g. git's "--date=iso" output with a space-separated
// offset. Only the first 19 characters are considered.
const headerDateFormat = "2006-01-02 15:04:05"

// ParseContributionLog runs a single pass over the contribution log lines
// and aggregates per-author and per-category metrics. Author keys are
// canonical names (CanonicalName). Malformed header dates and numstat lines
// are skipped without error; an empty log yields a valid zero-commit result
// with empty maps and nil time bounds.
func ParseContributionLog(lines []string) *schema.ContributionMetrics {
	m := &schema.ContributionMetrics{
		CommitsPerAuthor:      make(map[string]int),
		LinesAddedPerAuthor:   make(map[string]int),
		LinesRemovedPerAuthor: make(map[string]int),
		FilesChangedPerAuthor: make(map[string][]string),
		ActivityByCategory:    make(map[schema.Category]int),
		CommitsPerWeek:        make(map[string]int),
	}

	filesChanged := make(map[string]map[string]struct{})
	touched := make(map[schema.Category]struct{})
	var currentAuthor string
	awaitingHeader := false

	flush := func() {
		if currentAuthor == "" {
			return
		}
		// Once per category per commit, regardless of how many files of
		// that category the commit touched.
		for c := range touched {
			m.ActivityByCategory[c]++
		}
	}

	for _, line := range lines {
		if strings.HasPrefix(line, CommitMarker) {
			flush()
			touched = make(map[schema.Category]struct{})
			awaitingHeader = true
			continue
		}

		if awaitingHeader && strings.Count(line, "|") >= 2 {
			parts := strings.SplitN(line, "|", 3)
			author := strings.TrimSpace(parts[1])
			dateStr := strings.TrimSpace(parts[2])

			when, err := parseHeaderDate(dateStr)
			if err != nil {
				// Unparseable date: drop the whole commit, including any
				// numstat lines that follow it.
				currentAuthor = ""
				awaitingHeader = false
				continue
			}

			if m.ProjectStart == nil || when.Before(*m.ProjectStart) {
				t := when
				m.ProjectStart = &t
			}
			if m.ProjectEnd == nil || when.After(*m.ProjectEnd) {
				t := when
				m.ProjectEnd = &t
			}

			currentAuthor = CanonicalName(author)
			m.TotalCommits++
			m.CommitsPerAuthor[currentAuthor]++
			m.CommitsPerWeek[weekKey(when)]++
			awaitingHeader = false
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) == 3 && currentAuthor != "" {
			added := parseChangeCount(parts[0])
			removed := parseChangeCount(parts[1])
			filePath := parts[2]

			m.LinesAddedPerAuthor[currentAuthor] += added
			m.LinesRemovedPerAuthor[currentAuthor] += removed

			if filesChanged[currentAuthor] == nil {
				filesChanged[currentAuthor] = make(map[string]struct{})
			}
			filesChanged[currentAuthor][filePath] = struct{}{}

			touched[Classify(filePath)] = struct{}{}
		}
		// Anything else (blank lines, noise) is ignored without error.
	}
	flush()

	for author, files := range filesChanged {
		sorted := make([]string, 0, len(files))
		for f := range files {
			sorted = append(sorted, f)
		}
		sort.Strings(sorted)
		m.FilesChangedPerAuthor[author] = sorted
	}

	if m.ProjectStart != nil && m.ProjectEnd != nil {
		days := int(m.ProjectEnd.Sub(*m.ProjectStart).Hours() / 24)
		m.DurationDays = &days
	}

	return m
}

// parseHeaderDate parses a commit header date, first as strict RFC3339 and
// then as "YYYY-MM-DD HH:MM:SS" truncated to 19 characters.
func parseHeaderDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if len(s) >= 19 {
		s = s[:19]
	}
	return time.Parse(headerDateFormat, s)
}

// parseChangeCount converts a numstat count to an int. The "-" sentinel
// emitted for binary files maps to 0, as does anything unparseable.
func parseChangeCount(s string) int {
	if s == "-" {
		return 0
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return 0
}

// weekKey returns the ISO-year/week bucket for a commit time, e.g.
// "2026-W07".
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

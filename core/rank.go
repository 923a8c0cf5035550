package core

import (
	"sort"

	"github.com/gitfolio/gitfolio/schema"
)

// Composite score weights. They sum to 1.0, so every score lands in [0,1].
const (
	weightCoverage     = 0.6
	weightDominanceGap = 0.3
	weightTeamFactor   = 0.1
)

// RankProjects produces one row per project carrying its top contributor
// and that contributor's composite score. Projects with no files or no
// contributor links rank with score 0.0 rather than erroring out.
// Rows are ordered by score in the requested direction; ties fall back to
// raw file count (descending) and then project name (ascending). A limit
// of zero or less returns all rows.
func RankProjects(activities []schema.ProjectActivity, order schema.RankOrder, limit int) []schema.RankingResult {
	results := make([]schema.RankingResult, 0, len(activities))
	for _, a := range activities {
		top, second := topContributors(a.FilesByContributor)
		results = append(results, scoreContributor(a, top, second, top))
	}
	sortResults(results, order)
	return clipResults(results, limit)
}

// RankByContributor produces one row per project the named contributor has
// file links in, scored for that contributor. The dominance-gap term uses
// the project's global top and runner-up, so a non-top contributor always
// gets a zero gap; that asymmetry rewards leadership and is intentional.
func RankByContributor(activities []schema.ProjectActivity, contributor string, limit int) []schema.RankingResult {
	name := CanonicalName(contributor)

	var results []schema.RankingResult
	for _, a := range activities {
		if a.FilesByContributor[name] == 0 {
			continue
		}
		top, second := topContributors(a.FilesByContributor)
		results = append(results, scoreContributor(a, name, second, top))
	}
	sortResults(results, schema.OrderDesc)
	return clipResults(results, limit)
}

// topContributors picks the leading and runner-up contributors of a
// project. The leader is chosen deterministically: highest distinct-file
// count, ties broken by canonical name. The runner-up is the highest count
// among everyone else (not a name), which is all the dominance gap needs.
func topContributors(files map[string]int) (top, second string) {
	topCount, secondCount := -1, 0
	for name, count := range files {
		switch {
		case count > topCount || (count == topCount && name < top):
			if topCount >= 0 {
				secondCount, second = topCount, top
			}
			topCount, top = count, name
		case count > secondCount:
			secondCount, second = count, name
		}
	}
	if topCount < 0 {
		return "", ""
	}
	return top, second
}

// scoreContributor computes one ranking row for the named contributor
// within a project. The dominance-gap term is only awarded when the
// contributor is the project's top contributor.
func scoreContributor(a schema.ProjectActivity, contributor, second, top string) schema.RankingResult {
	r := schema.RankingResult{
		Project:           a.Project,
		Contributor:       contributor,
		TotalFiles:        a.TotalFiles,
		ContributorsCount: len(a.FilesByContributor),
		ContributorFiles:  a.FilesByContributor[contributor],
	}
	if r.TotalFiles == 0 || r.ContributorsCount == 0 {
		return r
	}

	total := float64(r.TotalFiles)
	r.Coverage = float64(r.ContributorFiles) / total
	if contributor == top {
		r.DominanceGap = float64(r.ContributorFiles-a.FilesByContributor[second]) / total
	}
	r.TeamFactor = 1.0 / float64(r.ContributorsCount)
	r.Score = weightCoverage*r.Coverage +
		weightDominanceGap*r.DominanceGap +
		weightTeamFactor*r.TeamFactor
	return r
}

// sortResults orders rows by composite score in the requested direction,
// then raw contributor file count descending, then project name ascending.
// The secondary tie-breaks are fixed regardless of order so that equal
// scores always list in a stable, predictable sequence.
func sortResults(results []schema.RankingResult, order schema.RankOrder) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			if order == schema.OrderAsc {
				return a.Score < b.Score
			}
			return a.Score > b.Score
		}
		if a.ContributorFiles != b.ContributorFiles {
			return a.ContributorFiles > b.ContributorFiles
		}
		return a.Project < b.Project
	})
}

func clipResults(results []schema.RankingResult, limit int) []schema.RankingResult {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

package engine

import (
	"sort"

	"logsift/analysis"
)

// mergeSummaries folds partial per-batch result sets into one canonical
// sequence. Categories are deduplicated by summing their match counts and
// keeping the numerically lowest first-match position, then the sequence is
// ordered by severity rank ascending. Ties within a severity tier go to the
// category appearing earlier in the dictionary; ordering on the dictionary
// rather than on fold order keeps the output identical no matter how the
// patterns were partitioned, which unit finished first, or whether the
// single threaded fallback produced the input.
func mergeSummaries(dictionary []analysis.PatternRecord, partials [][]analysis.CategoryMatchSummary) []analysis.CategoryMatchSummary {
	rank := make(map[string]int, len(dictionary))
	for i, rec := range dictionary {
		if _, ok := rank[rec.Category]; !ok {
			rank[rec.Category] = i
		}
	}

	merged := []analysis.CategoryMatchSummary{}
	byCategory := make(map[string]int)
	for _, partial := range partials {
		for _, s := range partial {
			idx, ok := byCategory[s.Pattern.Category]
			if !ok {
				byCategory[s.Pattern.Category] = len(merged)
				merged = append(merged, s)
				continue
			}
			merged[idx].TotalMatches += s.TotalMatches
			if s.FirstMatch.Position < merged[idx].FirstMatch.Position {
				merged[idx].FirstMatch = s.FirstMatch
			}
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		si, sj := merged[i].Pattern.Severity, merged[j].Pattern.Severity
		if si != sj {
			return si < sj
		}
		return rank[merged[i].Pattern.Category] < rank[merged[j].Pattern.Category]
	})

	return merged
}

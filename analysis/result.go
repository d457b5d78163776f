package analysis

// CategoryMatchSummary aggregates every hit of one pattern category across
// the corpus. FirstMatch is the matching entry with the lowest position;
// TotalMatches is the count of entries whose text matched, not the count of
// occurrences within entries.
type CategoryMatchSummary struct {
	Pattern      PatternRecord
	FirstMatch   LogEntry
	TotalMatches int
}

package testutils

import (
	"fmt"

	"logsift/analysis"
)

// SyntheticCorpus builds n log entries with deterministic filler text,
// positions starting at 1. Lines given in overrides replace the filler at the
// given position, which makes it easy to plant known matches inside a large
// corpus.
func SyntheticCorpus(n int, overrides map[int]string) []analysis.LogEntry {
	entries := make([]analysis.LogEntry, 0, n)
	for i := 1; i <= n; i++ {
		text := fmt.Sprintf("2026-01-02T15:04:05Z INFO service heartbeat ok seq=%d", i)
		if o, ok := overrides[i]; ok {
			text = o
		}
		entries = append(entries, analysis.LogEntry{Text: text, Position: i})
	}
	return entries
}

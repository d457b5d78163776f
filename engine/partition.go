package engine

import "logsift/analysis"

// Bounds on the number of concurrent match units. One unit defeats the point
// of partitioning, and more than five has shown no benefit regardless of host
// size.
const (
	minUnits = 2
	maxUnits = 5
)

// clampUnitCount bounds a parallelism hint to the number of match units the
// coordinator will run.
func clampUnitCount(hint int) int {
	if hint < minUnits {
		return minUnits
	}
	if hint > maxUnits {
		return maxUnits
	}
	return hint
}

// partitionPatterns splits the dictionary into at most n contiguous,
// non-overlapping batches covering every record exactly once. Every batch
// holds ceil(len/n) records except the last, which takes the remainder. Fewer
// than n batches come back when the dictionary is smaller than that.
func partitionPatterns(records []analysis.PatternRecord, n int) (batches [][]analysis.PatternRecord) {
	if len(records) == 0 || n < 1 {
		return
	}

	batchSize := (len(records) + n - 1) / n
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, records[start:end])
	}

	return
}

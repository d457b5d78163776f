package analysis

// Severity ranks how serious a matched pattern is. Lower values sort first in
// the merged result.
type Severity int

const (
	// High severity patterns indicate the log contains a real problem.
	High Severity = iota

	// Medium severity patterns are worth looking at but not necessarily the root cause.
	Medium

	// Low severity patterns are informational.
	Low
)

func (s Severity) String() string {
	switch s {
	case High:
		return "High"
	case Medium:
		return "Medium"
	case Low:
		return "Low"
	}
	return "Unknown"
}

// PatternRecord is one rule of the pattern dictionary. Category is the unique
// key that match counts are merged under. Two records sharing a category
// within one dictionary is not rejected; the later record wins at compile
// time and matches still merge under the one category key.
type PatternRecord struct {
	Category    string
	RegexSource string
	Severity    Severity
	Cause       string
	Suggestions []string
}

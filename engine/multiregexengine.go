package engine

// MultiRegexEngineFactory is an interface to a factory that can create regex
// engines that scan for multiple regexes at once, such as Hyperscan or the
// built in Go engine.
type MultiRegexEngineFactory interface {
	NewMultiRegexEngine(mm []MultiRegexEnginePattern) (m MultiRegexEngine, err error)
}

// MultiRegexEngine is an interface to a regex engine that scans one input for
// multiple regexes at once. Implementations must match case-insensitively and
// report each pattern at most once per input. Implementations may be
// prefilters: every real match must be reported, but reported matches can be
// false positives, so callers verify candidates with the pattern's own
// compiled regexp.
type MultiRegexEngine interface {
	Scan(input []byte) (matches []MultiRegexEngineMatch, err error)
	Close()
}

// MultiRegexEnginePattern is used by the MultiRegexEngineFactory to tell it
// what to scan for.
type MultiRegexEnginePattern struct {
	ID   int
	Expr string
}

// MultiRegexEngineMatch is used by the MultiRegexEngine interface to
// communicate back which patterns were found.
type MultiRegexEngineMatch struct {
	ID     int
	EndPos int
}

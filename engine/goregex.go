package engine

import "regexp"

// NewGoMultiRegexEngineFactory creates a MultiRegexEngineFactory backed by
// the built in Go regexp engine. It is exact rather than a prefilter, so
// verifying its candidates never rejects anything. It is the engine of last
// resort: always available, no native dependencies.
func NewGoMultiRegexEngineFactory() MultiRegexEngineFactory {
	return &goEngineFactory{}
}

type goEngineFactory struct{}

type goEnginePattern struct {
	id int
	rx *regexp.Regexp
}

type goEngine struct {
	patterns []goEnginePattern
}

// NewMultiRegexEngine creates a MultiRegexEngine that tests each pattern in
// turn on every scan.
func (f *goEngineFactory) NewMultiRegexEngine(mm []MultiRegexEnginePattern) (m MultiRegexEngine, err error) {
	e := &goEngine{}
	for _, p := range mm {
		var rx *regexp.Regexp
		rx, err = regexp.Compile("(?i)" + p.Expr)
		if err != nil {
			return
		}
		e.patterns = append(e.patterns, goEnginePattern{id: p.ID, rx: rx})
	}
	m = e
	return
}

// Scan scans the given input for all expressions this engine was initialized
// with, reporting each pattern at most once.
func (e *goEngine) Scan(input []byte) (matches []MultiRegexEngineMatch, err error) {
	matches = []MultiRegexEngineMatch{}
	for _, p := range e.patterns {
		if loc := p.rx.FindIndex(input); loc != nil {
			matches = append(matches, MultiRegexEngineMatch{ID: p.id, EndPos: loc[1]})
		}
	}
	return
}

func (e *goEngine) Close() {}

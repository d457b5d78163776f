package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"logsift/analysis"
	"logsift/testutils"
)

type mockMultiRegexEngineFactory struct {
	newMultiRegexEngineMockFunc func(mm []MultiRegexEnginePattern) (MultiRegexEngine, error)
}

func (f *mockMultiRegexEngineFactory) NewMultiRegexEngine(mm []MultiRegexEnginePattern) (m MultiRegexEngine, err error) {
	return f.newMultiRegexEngineMockFunc(mm)
}

type mockMultiRegexEngine struct {
	scanMockFunc func(input []byte) ([]MultiRegexEngineMatch, error)
	closed       bool
}

func (m *mockMultiRegexEngine) Scan(input []byte) (matches []MultiRegexEngineMatch, err error) {
	return m.scanMockFunc(input)
}

func (m *mockMultiRegexEngine) Close() {
	m.closed = true
}

func patternSetContains(mm []MultiRegexEnginePattern, marker string) bool {
	for _, p := range mm {
		if strings.Contains(p.Expr, marker) {
			return true
		}
	}
	return false
}

// newPanickingEngineFactory returns engines that panic on Scan when their
// pattern set contains marker and holds at most maxPatterns patterns, and
// otherwise delegate to the built in Go engine. The size bound lets a test
// crash one match unit while leaving the whole-dictionary fallback run alone.
func newPanickingEngineFactory(marker string, maxPatterns int) MultiRegexEngineFactory {
	return &mockMultiRegexEngineFactory{
		newMultiRegexEngineMockFunc: func(mm []MultiRegexEnginePattern) (MultiRegexEngine, error) {
			inner, err := NewGoMultiRegexEngineFactory().NewMultiRegexEngine(mm)
			if err != nil {
				return nil, err
			}
			if !patternSetContains(mm, marker) || len(mm) > maxPatterns {
				return inner, nil
			}
			return &mockMultiRegexEngine{
				scanMockFunc: func(input []byte) ([]MultiRegexEngineMatch, error) {
					panic("injected crash")
				},
			}, nil
		},
	}
}

// newSlowEngineFactory returns engines that sleep on every Scan when their
// pattern set contains marker, and otherwise delegate to the built in Go
// engine.
func newSlowEngineFactory(marker string, delay time.Duration) MultiRegexEngineFactory {
	return &mockMultiRegexEngineFactory{
		newMultiRegexEngineMockFunc: func(mm []MultiRegexEnginePattern) (MultiRegexEngine, error) {
			inner, err := NewGoMultiRegexEngineFactory().NewMultiRegexEngine(mm)
			if err != nil {
				return nil, err
			}
			if !patternSetContains(mm, marker) {
				return inner, nil
			}
			return &mockMultiRegexEngine{
				scanMockFunc: func(input []byte) ([]MultiRegexEngineMatch, error) {
					time.Sleep(delay)
					return inner.Scan(input)
				},
			}, nil
		},
	}
}

type mockProgressSink struct {
	reports []int
}

func (m *mockProgressSink) Progress(pct int) {
	m.reports = append(m.reports, pct)
}

type mockResultSink struct {
	results [][]analysis.CategoryMatchSummary
	fatals  []string
}

func (m *mockResultSink) Result(summaries []analysis.CategoryMatchSummary) {
	m.results = append(m.results, summaries)
}

func (m *mockResultSink) Fatal(reason string) {
	m.fatals = append(m.fatals, reason)
}

func newTestPattern(category string, regex string, severity analysis.Severity) analysis.PatternRecord {
	return analysis.PatternRecord{
		Category:    category,
		RegexSource: regex,
		Severity:    severity,
		Cause:       "cause of " + category,
		Suggestions: []string{"fix " + category},
	}
}

// testTokens are the distinct words the test dictionary patterns look for.
var testTokens = []string{
	"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
	"golf", "hotel", "india", "juliett", "kilo", "lima",
}

// newTestDictionary builds one pattern per test token with severities cycling
// High, Medium, Low in dictionary order.
func newTestDictionary() []analysis.PatternRecord {
	dictionary := make([]analysis.PatternRecord, 0, len(testTokens))
	for i, tok := range testTokens {
		dictionary = append(dictionary, newTestPattern("Category "+tok, tok, analysis.Severity(i%3)))
	}
	return dictionary
}

// newTestCorpus plants test tokens in a filler corpus of n entries. Every
// token appears at positions tokenIdx+1, tokenIdx+101 and tokenIdx+201, and
// entry 50 contains the first two tokens at once.
func newTestCorpus(n int) []analysis.LogEntry {
	overrides := make(map[int]string)
	for i, tok := range testTokens {
		for _, base := range []int{1, 101, 201} {
			overrides[base+i] = "2026-01-02T15:04:05Z ERROR saw " + tok + " in the payload"
		}
	}
	overrides[50] = "2026-01-02T15:04:05Z ERROR saw alpha and bravo together"
	return testutils.SyntheticCorpus(n, overrides)
}

func runEngine(t *testing.T, factory MultiRegexEngineFactory, options Options, entries []analysis.LogEntry, dictionary []analysis.PatternRecord) (*mockProgressSink, *mockResultSink) {
	t.Helper()
	progress := &mockProgressSink{}
	result := &mockResultSink{}
	e := NewCoordinator(testutils.NewTestLogger(t), factory, progress, result, options)
	e.Run(context.Background(), entries, dictionary)
	return progress, result
}

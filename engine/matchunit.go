package engine

import (
	"context"
	"fmt"

	"logsift/analysis"

	"github.com/rs/zerolog"
)

// progressReportStep is the minimum advance, in percentage points, between
// two progress reports from the same unit.
const progressReportStep = 5

type unitProgress struct {
	unit int
	pct  int
}

type unitResult struct {
	unit      int
	summaries []analysis.CategoryMatchSummary
}

type matchUnit struct {
	id       int
	logger   zerolog.Logger
	patterns []CompiledPattern
	rxEngine MultiRegexEngine
}

// newMatchUnit compiles one batch of the dictionary and prepares a scan
// engine for it. Records that fail to compile are dropped here, so the unit's
// pair count only covers patterns that will actually be evaluated.
func newMatchUnit(logger zerolog.Logger, factory MultiRegexEngineFactory, id int, batch []analysis.PatternRecord) *matchUnit {
	u := &matchUnit{
		id:       id,
		logger:   logger,
		patterns: compilePatterns(logger, batch),
	}
	u.rxEngine = newScanEngine(logger, factory, u.patterns)
	return u
}

// newScanEngine builds a multi-regex engine over the compiled patterns,
// degrading to the built in Go engine when the preferred backend cannot
// handle the set. The expressions already compiled as Go regexps once, so the
// Go engine cannot reject them.
func newScanEngine(logger zerolog.Logger, factory MultiRegexEngineFactory, compiled []CompiledPattern) MultiRegexEngine {
	mm := make([]MultiRegexEnginePattern, 0, len(compiled))
	for i, p := range compiled {
		mm = append(mm, MultiRegexEnginePattern{ID: i, Expr: p.expr})
	}

	if factory != nil {
		e, err := factory.NewMultiRegexEngine(mm)
		if err == nil {
			return e
		}
		logger.Warn().Err(err).Msg("Multi-regex engine construction failed, using the built in Go engine")
	}

	e, err := NewGoMultiRegexEngineFactory().NewMultiRegexEngine(mm)
	if err != nil {
		logger.Error().Err(err).Msg("Built in Go multi-regex engine rejected already-compiled expressions")
		return &goEngine{}
	}
	return e
}

// run evaluates every (entry, pattern) pair of this unit's batch, streaming
// progress checkpoints and finally the unit's summary collection over the
// given channels. A panic anywhere in the loop comes back as an error so the
// coordinator can tell a crashed unit from a completed one.
func (u *matchUnit) run(ctx context.Context, entries []analysis.LogEntry, progressCh chan<- unitProgress, resultCh chan<- unitResult) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("match unit %v crashed: %v", u.id, r)
		}
	}()
	defer u.rxEngine.Close()

	summaries, err := u.matchCorpus(ctx, entries, func(pct int) error {
		select {
		case progressCh <- unitProgress{unit: u.id, pct: pct}:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err != nil {
		return
	}

	select {
	case resultCh <- unitResult{unit: u.id, summaries: summaries}:
	case <-ctx.Done():
		err = ctx.Err()
	}
	return
}

// matchCorpus scans every entry against every compiled pattern of the batch,
// folding hits into per-category summaries in first-hit order. Entries are
// visited in corpus order, so the first hit of a category is the lowest
// position this unit will ever see for it. onProgress may be nil; the
// fallback path reports no fine grained progress.
func (u *matchUnit) matchCorpus(ctx context.Context, entries []analysis.LogEntry, onProgress func(pct int) error) (summaries []analysis.CategoryMatchSummary, err error) {
	summaries = []analysis.CategoryMatchSummary{}

	totalPairs := len(entries) * len(u.patterns)
	if totalPairs == 0 {
		if onProgress != nil {
			err = onProgress(100)
		}
		return
	}

	byCategory := make(map[string]int)
	completedPairs := 0
	lastReported := 0

	for i := range entries {
		if err = ctx.Err(); err != nil {
			return
		}
		entry := &entries[i]

		matches, scanErr := u.rxEngine.Scan([]byte(entry.Text))
		if scanErr != nil {
			// A single failed evaluation must not take the whole unit down.
			u.logger.Debug().Err(scanErr).Int("position", entry.Position).Msg("Skipping entry that failed to scan")
			matches = nil
		}

		for _, m := range matches {
			p := &u.patterns[m.ID]

			// The scan engine may be a prefilter, so confirm the hit with
			// the pattern's own regexp before counting it.
			if !p.rx.MatchString(entry.Text) {
				continue
			}

			if idx, ok := byCategory[p.Record.Category]; ok {
				summaries[idx].TotalMatches++
				continue
			}
			byCategory[p.Record.Category] = len(summaries)
			summaries = append(summaries, analysis.CategoryMatchSummary{
				Pattern:      p.Record,
				FirstMatch:   *entry,
				TotalMatches: 1,
			})
		}

		completedPairs += len(u.patterns)
		if onProgress == nil {
			continue
		}
		pct := completedPairs * 100 / totalPairs
		if pct-lastReported >= progressReportStep {
			if err = onProgress(pct); err != nil {
				return
			}
			lastReported = pct
		}
	}

	if onProgress != nil {
		err = onProgress(100)
	}
	return
}

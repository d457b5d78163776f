package engine

import (
	"context"
	"fmt"

	"logsift/analysis"

	"github.com/rs/zerolog"
)

// runFallback executes the whole dictionary as one batch on the calling
// goroutine and delivers through the same sinks as the concurrent path. A
// failure here is non-recoverable and surfaces as Fatal.
func (c *coordinatorImpl) runFallback(ctx context.Context, logger zerolog.Logger, entries []analysis.LogEntry, dictionary []analysis.PatternRecord) {
	summaries, err := fallbackMatch(ctx, logger, c.factory, entries, dictionary)
	if err != nil {
		logger.Error().Err(err).Msg("Fallback run failed")
		c.resultSink.Fatal(fmt.Sprintf("fallback analysis failed: %v", err))
		return
	}

	c.progressSink.Progress(100)
	c.resultSink.Result(mergeSummaries(dictionary, [][]analysis.CategoryMatchSummary{summaries}))
}

// fallbackMatch is the single threaded equivalent of one match unit over the
// entire, unpartitioned dictionary: same compile-and-skip semantics, same
// summary construction, no fine grained progress.
func fallbackMatch(ctx context.Context, logger zerolog.Logger, factory MultiRegexEngineFactory, entries []analysis.LogEntry, dictionary []analysis.PatternRecord) (summaries []analysis.CategoryMatchSummary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fallback runner crashed: %v", r)
		}
	}()

	u := newMatchUnit(logger.With().Str("unit", "fallback").Logger(), factory, 0, dictionary)
	defer u.rxEngine.Close()

	summaries, err = u.matchCorpus(ctx, entries, nil)
	return
}

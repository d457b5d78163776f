package engine

import (
	"context"
	"errors"
	"runtime"
	"time"

	"logsift/analysis"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds one analysis run end to end.
const DefaultTimeout = 120 * time.Second

// Options tunes a coordinator. The zero value picks the defaults.
type Options struct {
	// Timeout bounds one analysis run; DefaultTimeout when zero.
	Timeout time.Duration

	// Concurrency is the desired number of match units. Zero means one per
	// CPU, bounded to the engine's unit limits; 1 routes every run straight
	// to the single threaded fallback path.
	Concurrency int
}

// NewCoordinator creates the analysis.Engine that runs the concurrent
// matching pipeline. The factory may be nil, in which case the built in Go
// regex engine scans every batch.
func NewCoordinator(logger zerolog.Logger, factory MultiRegexEngineFactory, progressSink analysis.ProgressSink, resultSink analysis.ResultSink, options Options) analysis.Engine {
	c := &coordinatorImpl{
		logger:       logger,
		factory:      factory,
		progressSink: progressSink,
		resultSink:   resultSink,
		timeout:      options.Timeout,
		concurrency:  options.Concurrency,
	}
	if c.timeout == 0 {
		c.timeout = DefaultTimeout
	}
	return c
}

type coordinatorImpl struct {
	logger       zerolog.Logger
	factory      MultiRegexEngineFactory
	progressSink analysis.ProgressSink
	resultSink   analysis.ResultSink
	timeout      time.Duration
	concurrency  int
}

// Run orchestrates one analysis run end to end: partition the dictionary,
// spawn one match unit per batch, aggregate their progress, merge their
// partial results, and degrade to the fallback path on unit crash or to a
// best-effort result on timeout.
func (c *coordinatorImpl) Run(ctx context.Context, entries []analysis.LogEntry, dictionary []analysis.PatternRecord) {
	logger := c.logger.With().Str("runID", uuid.New().String()).Logger()

	if logger.Info() != nil {
		logger.Info().Int("entries", len(entries)).Int("patterns", len(dictionary)).Msg("Analysis run starting")
		startTime := time.Now()
		defer func() {
			logger.Info().Dur("timeTaken", time.Since(startTime)).Msg("Analysis run done")
		}()
	}

	if len(entries) == 0 || len(dictionary) == 0 {
		c.progressSink.Progress(100)
		c.resultSink.Result([]analysis.CategoryMatchSummary{})
		return
	}

	if c.concurrency == 1 {
		// Concurrent execution disabled or unavailable. Not an error.
		logger.Info().Msg("Running the single threaded fallback path directly")
		c.runFallback(ctx, logger, entries, dictionary)
		return
	}

	hint := c.concurrency
	if hint == 0 {
		hint = runtime.NumCPU()
	}
	batches := partitionPatterns(dictionary, clampUnitCount(hint))

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	g, unitCtx := errgroup.WithContext(runCtx)
	progressCh := make(chan unitProgress)
	resultCh := make(chan unitResult)
	for i, batch := range batches {
		u := newMatchUnit(logger.With().Int("unit", i).Logger(), c.factory, i, batch)
		g.Go(func() error {
			return u.run(unitCtx, entries, progressCh, resultCh)
		})
	}

	waitCh := make(chan error, 1)
	go func() { waitCh <- g.Wait() }()

	// The coordinator goroutine is the single owner of all progress and
	// partial-result state; units only ever talk to it over the channels.
	partials := make([][]analysis.CategoryMatchSummary, len(batches))
	collected := 0
	unitPcts := make([]int, len(batches))
	lastSent := 0

	for {
		select {
		case p := <-progressCh:
			unitPcts[p.unit] = p.pct
			overall := 0
			for _, pct := range unitPcts {
				overall += pct
			}
			overall /= len(unitPcts)
			if overall > lastSent {
				c.progressSink.Progress(overall)
				lastSent = overall
			}

		case r := <-resultCh:
			partials[r.unit] = r.summaries
			collected++

		case err := <-waitCh:
			if err == nil {
				c.progressSink.Progress(100)
				c.resultSink.Result(mergeSummaries(dictionary, partials))
				return
			}

			cancel()

			if errors.Is(err, context.DeadlineExceeded) {
				if collected > 0 {
					logger.Warn().Err(err).Int("unitsCollected", collected).Msg("Analysis run timed out, delivering best-effort result from collected partials")
					c.progressSink.Progress(100)
					c.resultSink.Result(mergeSummaries(dictionary, partials))
					return
				}
				logger.Error().Err(err).Msg("Analysis run timed out before any match unit completed")
				c.resultSink.Fatal("analysis timed out before any match unit completed")
				return
			}

			// A crashed unit poisons the whole concurrent run: partials from
			// the surviving units are discarded and the full dictionary is
			// re-run single threaded, never merged with them.
			logger.Warn().Err(err).Msg("Match unit crashed, discarding partial results and restarting on the fallback path")
			c.runFallback(ctx, logger, entries, dictionary)
			return
		}
	}
}

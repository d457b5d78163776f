package logging

import (
	"encoding/json"

	"logsift/analysis"

	"github.com/rs/zerolog"
)

// NewZerologResultsLogger creates progress and result sinks that render the
// analysis outcome to Zerolog, in the shape the surrounding tool shows to the
// user.
func NewZerologResultsLogger(logger zerolog.Logger) (analysis.ProgressSink, analysis.ResultSink) {
	r := &zerologResultsLogger{logger: logger}
	return r, r
}

type zerologResultsLogger struct {
	logger zerolog.Logger
}

func (l *zerologResultsLogger) Progress(pct int) {
	l.logger.Debug().Int("progress", pct).Msg("Analysis progress")
}

func (l *zerologResultsLogger) Result(summaries []analysis.CategoryMatchSummary) {
	for i := range summaries {
		c := newMatchLogEntry(&summaries[i])

		bb, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			l.logger.Error().Err(err).Msg("Error while marshaling JSON results log")
			continue
		}

		l.logger.Info().Msgf("Matched category:\n%s\n", bb)
	}

	l.logger.Info().Int("categories", len(summaries)).Msg("Analysis result delivered")
}

func (l *zerologResultsLogger) Fatal(reason string) {
	l.logger.Error().Str("reason", reason).Msg("Analysis failed without a result")
}

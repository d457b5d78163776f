package analysis

import "context"

// Engine matches a log corpus against a pattern dictionary and delivers the
// outcome through the sinks it was constructed with.
type Engine interface {
	Run(ctx context.Context, entries []LogEntry, dictionary []PatternRecord)
}

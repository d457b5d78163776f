package analysis

// ProgressSink receives integer percentage updates for UI display. Values are
// in [0,100] and non-decreasing within one run, with a final 100 on every
// path that produces a result.
type ProgressSink interface {
	Progress(pct int)
}

// ResultSink receives the outcome of an analysis run. Exactly one of Result
// or Fatal is called per run.
type ResultSink interface {
	// Result delivers the merged, severity-ordered match list. It is also
	// called on a best-effort timeout, with whatever partial data was
	// collected.
	Result(summaries []CategoryMatchSummary)

	// Fatal is called instead of Result when no result of any kind could be
	// produced.
	Fatal(reason string)
}

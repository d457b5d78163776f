package analysis

// LogEntry is one line of the log corpus under analysis, together with the
// neighboring lines shown next to a match. Entries are
// fully materialized before a run starts and are never mutated by the engine.
type LogEntry struct {
	Text          string
	Position      int
	ContextBefore []string
	ContextAfter  []string
}

package logging

import "logsift/analysis"

type matchLogEntry struct {
	OperationName string                `json:"operationName"`
	Category      string                `json:"category"`
	Properties    matchLogEntryProperty `json:"properties"`
}

type matchLogEntryProperty struct {
	Severity     string             `json:"severity"`
	Cause        string             `json:"cause"`
	Suggestions  []string           `json:"suggestions"`
	TotalMatches int                `json:"totalMatches"`
	FirstMatch   matchLogFirstMatch `json:"firstMatch"`
}

type matchLogFirstMatch struct {
	Position      int      `json:"position"`
	Text          string   `json:"text"`
	ContextBefore []string `json:"contextBefore"`
	ContextAfter  []string `json:"contextAfter"`
}

type fatalLogEntry struct {
	OperationName string `json:"operationName"`
	Reason        string `json:"reason"`
}

const operationName = "LogsiftAnalysis"

func newMatchLogEntry(s *analysis.CategoryMatchSummary) matchLogEntry {
	return matchLogEntry{
		OperationName: operationName,
		Category:      s.Pattern.Category,
		Properties: matchLogEntryProperty{
			Severity:     s.Pattern.Severity.String(),
			Cause:        s.Pattern.Cause,
			Suggestions:  s.Pattern.Suggestions,
			TotalMatches: s.TotalMatches,
			FirstMatch: matchLogFirstMatch{
				Position:      s.FirstMatch.Position,
				Text:          s.FirstMatch.Text,
				ContextBefore: s.FirstMatch.ContextBefore,
				ContextAfter:  s.FirstMatch.ContextAfter,
			},
		},
	}
}

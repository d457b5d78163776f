package engine

import (
	"regexp"
	"strings"

	"logsift/analysis"

	"github.com/rs/zerolog"
)

// CompiledPattern is a dictionary record together with its executable
// matcher. The expr field is the preprocessed regex source handed to
// multi-regex backends; rx is the case-insensitive Go regexp used to verify
// their candidates.
type CompiledPattern struct {
	Record analysis.PatternRecord
	expr   string
	rx     *regexp.Regexp
}

var removePcrePlusPossessiveQuantifierRegex = regexp.MustCompile(`((^|[^\\])(\\\\)*)\+\+`)
var removePcreStarPossessiveQuantifierRegex = regexp.MustCompile(`((^|[^\\])(\\\\)*)\*\+`)
var removePcreQuestionmarkPossessiveQuantifierRegex = regexp.MustCompile(`((^|[^\\])(\\\\)*)\?\+`)
var removePcreRangePossessiveQuantifierRegex = regexp.MustCompile(`((^|[^\\])(\\\\)*)({\d+(,(\d+)?)?})\+`)

// Pattern dictionaries are commonly written in PCRE dialect. PCRE has the
// possessive quantifier "++", which is just a hint to not backtrack. Go
// regexp never backtracks anyway, and the syntax is invalid in Go regexp, so
// this function removes it from a regex.
func removePcrePossessiveQuantifier(r string) string {
	if strings.Contains(r, "++") {
		r = removePcrePlusPossessiveQuantifierRegex.ReplaceAllString(r, "${1}+")
	}

	if strings.Contains(r, "*+") {
		r = removePcreStarPossessiveQuantifierRegex.ReplaceAllString(r, "${1}*")
	}

	if strings.Contains(r, "?+") {
		r = removePcreQuestionmarkPossessiveQuantifierRegex.ReplaceAllString(r, "${1}?")
	}

	if strings.Contains(r, "}+") {
		r = removePcreRangePossessiveQuantifierRegex.ReplaceAllString(r, "${1}${4}")
	}

	return r
}

// compilePatterns compiles raw dictionary records into executable
// case-insensitive matchers. A record whose regex does not compile is dropped
// with a diagnostic rather than failing the run. A later record reusing an
// earlier record's category replaces it.
func compilePatterns(logger zerolog.Logger, records []analysis.PatternRecord) []CompiledPattern {
	compiled := make([]CompiledPattern, 0, len(records))
	byCategory := make(map[string]int)

	for _, rec := range records {
		expr := removePcrePossessiveQuantifier(rec.RegexSource)
		rx, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			logger.Warn().Err(err).Str("category", rec.Category).Str("regex", rec.RegexSource).Msg("Skipping pattern that failed to compile")
			continue
		}

		p := CompiledPattern{Record: rec, expr: expr, rx: rx}
		if prev, ok := byCategory[rec.Category]; ok {
			compiled[prev] = p
			continue
		}
		byCategory[rec.Category] = len(compiled)
		compiled = append(compiled, p)
	}

	return compiled
}

package config

import (
	"fmt"
	"os"
	"strings"

	"logsift/analysis"

	yaml "gopkg.in/yaml.v2"
)

// YAML parsing requires exporting of struct fields
type dictionaryFile struct {
	Patterns []dictionaryPattern `yaml:"patterns"`
}

type dictionaryPattern struct {
	Category    string   `yaml:"category"`
	Regex       string   `yaml:"regex"`
	Severity    string   `yaml:"severity"`
	Cause       string   `yaml:"cause"`
	Suggestions []string `yaml:"suggestions"`
}

// LoadDictionary reads ordered pattern records from a YAML dictionary file.
// Record order is significant: it decides result ordering within a severity
// tier.
func LoadDictionary(filename string) (records []analysis.PatternRecord, err error) {
	bb, err := os.ReadFile(filename)
	if err != nil {
		err = fmt.Errorf("failed to read dictionary file %v: %v", filename, err)
		return
	}

	var f dictionaryFile
	err = yaml.Unmarshal(bb, &f)
	if err != nil {
		err = fmt.Errorf("failed to parse dictionary file %v: %v", filename, err)
		return
	}

	for _, p := range f.Patterns {
		var severity analysis.Severity
		severity, err = parseSeverity(p.Severity)
		if err != nil {
			err = fmt.Errorf("dictionary pattern %v: %v", p.Category, err)
			return
		}

		records = append(records, analysis.PatternRecord{
			Category:    p.Category,
			RegexSource: p.Regex,
			Severity:    severity,
			Cause:       p.Cause,
			Suggestions: p.Suggestions,
		})
	}

	return
}

func parseSeverity(s string) (analysis.Severity, error) {
	switch strings.ToLower(s) {
	case "high":
		return analysis.High, nil
	case "medium":
		return analysis.Medium, nil
	case "low":
		return analysis.Low, nil
	}
	return analysis.Low, fmt.Errorf("unknown severity %q", s)
}

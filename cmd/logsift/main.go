package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"logsift/analysis"
	"logsift/config"
	"logsift/engine"
	"logsift/hyperscan"
	"logsift/logging"

	"github.com/rs/zerolog"
)

// contextLines is how many surrounding lines each entry carries for display.
const contextLines = 2

// Dependency injection composition root
func main() {
	logLevel := flag.String("loglevel", "error", "sets log level. Can be one of: debug, info, warn, error, fatal, panic.")
	configFile := flag.String("config", "", "if set, load engine tuning from the given YAML config file")
	dictionaryFile := flag.String("dictionary", "", "YAML pattern dictionary file to match the log against")
	concurrencyArg := flag.Int("concurrency", 0, "desired number of match units. 0 means one per CPU (bounded by the engine); 1 disables concurrent execution.")
	fileLog := flag.Bool("filelog", false, fmt.Sprintf("whether to also append results as JSON lines to %v%v", logging.Path, logging.FileName))
	flag.Parse()

	loglevel, _ := zerolog.ParseLevel(*logLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(loglevel).With().Timestamp().Caller().Logger()

	if *dictionaryFile == "" {
		logger.Fatal().Msg("The -dictionary arg is required")
	}

	options := engine.Options{Concurrency: *concurrencyArg}
	if *configFile != "" {
		c, err := config.Load(*configFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("Error while loading config file")
		}
		options.Timeout = time.Duration(c.Engine.TimeoutSeconds) * time.Second
		if options.Concurrency == 0 {
			options.Concurrency = c.Engine.Concurrency
		}
	}

	dictionary, err := config.LoadDictionary(*dictionaryFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error while loading pattern dictionary")
	}

	entries := readEntries(os.Stdin)

	hsfs := hyperscan.NewCacheFileSystem()
	hscache := hyperscan.NewDbCache(hsfs)
	mref := hyperscan.NewMultiRegexEngineFactory(hscache)

	progressSink, resultSink := logging.NewZerologResultsLogger(logger)
	if *fileLog {
		fileSink, err := logging.NewFileResultsLogger(&logging.LogFileSystemImpl{}, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Error while creating file results logger")
		}
		resultSink = teeResultSink{resultSink, fileSink}
	}

	e := engine.NewCoordinator(logger, mref, progressSink, resultSink, options)
	logger.Info().Int("entries", len(entries)).Int("patterns", len(dictionary)).Msg("Starting log analysis")
	e.Run(context.Background(), entries, dictionary)
}

// readEntries materializes stdin into log entries, attaching the surrounding
// lines as display context.
func readEntries(f *os.File) []analysis.LogEntry {
	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	entries := make([]analysis.LogEntry, 0, len(lines))
	for i, line := range lines {
		before := i - contextLines
		if before < 0 {
			before = 0
		}
		after := i + 1 + contextLines
		if after > len(lines) {
			after = len(lines)
		}
		entries = append(entries, analysis.LogEntry{
			Text:          line,
			Position:      i + 1,
			ContextBefore: lines[before:i],
			ContextAfter:  lines[i+1 : after],
		})
	}
	return entries
}

// teeResultSink fans a result out to two sinks.
type teeResultSink struct {
	first  analysis.ResultSink
	second analysis.ResultSink
}

func (t teeResultSink) Result(summaries []analysis.CategoryMatchSummary) {
	t.first.Result(summaries)
	t.second.Result(summaries)
}

func (t teeResultSink) Fatal(reason string) {
	t.first.Fatal(reason)
	t.second.Fatal(reason)
}

package logging

import (
	"encoding/json"

	"logsift/analysis"

	"github.com/rs/zerolog"
)

// Path is the default logsift result log directory.
const Path = "/var/log/logsift/"

// FileName is the default logsift result log file name.
const FileName = "matches_json.log"

type filelogResultsLogger struct {
	fileSystem   LogFileSystem
	file         LogFile
	logger       zerolog.Logger
	writelogline chan []byte
	writeDone    chan bool
}

// NewFileResultsLogger creates a result sink that appends one JSON line per
// matched category to the result log file.
func NewFileResultsLogger(fileSystem LogFileSystem, logger zerolog.Logger) (analysis.ResultSink, error) {
	r := &filelogResultsLogger{fileSystem: fileSystem, logger: logger}

	err := fileSystem.MkDir(Path)
	if err != nil {
		logger.Error().Err(err).Str("path", Path).Msg("Failed to create the directory while initializing")
		return nil, err
	}

	r.file, err = fileSystem.Open(Path + FileName)
	if err != nil {
		logger.Error().Err(err).Str("file", Path+FileName).Msg("Failed to open the file at initiation")
		return nil, err
	}

	r.writelogline = make(chan []byte)
	r.writeDone = make(chan bool)
	go func() {
		for v := range r.writelogline {
			r.file.Append(v)
			r.file.Append([]byte("\n"))
			r.writeDone <- true
		}
	}()

	return r, nil
}

func (l *filelogResultsLogger) Result(summaries []analysis.CategoryMatchSummary) {
	for i := range summaries {
		c := newMatchLogEntry(&summaries[i])

		bb, err := json.Marshal(c)
		if err != nil {
			l.logger.Error().Err(err).Msg("Error while marshaling JSON results log")
			continue
		}

		l.writelogline <- bb
		<-l.writeDone
	}
}

func (l *filelogResultsLogger) Fatal(reason string) {
	bb, err := json.Marshal(fatalLogEntry{OperationName: operationName, Reason: reason})
	if err != nil {
		l.logger.Error().Err(err).Msg("Error while marshaling JSON fatal log")
		return
	}

	l.writelogline <- bb
	<-l.writeDone
}

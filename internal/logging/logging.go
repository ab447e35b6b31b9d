// Package logging builds the process logger and holds the field names every
// component logs with.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Standard field names for structured logging.
const (
	FieldRequestID = "request_id"
	FieldJobID     = "job_id"
	FieldStage     = "stage"
	FieldStrategy  = "strategy"
	FieldProvider  = "provider"
	FieldModel     = "model"
	FieldDuration  = "duration_ms"
	FieldBytes     = "bytes"
	FieldPages     = "pages"
	FieldFile      = "file"
	FieldStatus    = "status"
	FieldError     = "error"
)

// New returns a logger for the given level and format ("text" or "json").
// An unparsable level falls back to info.
func New(level, format string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	if out != nil {
		logger.SetOutput(out)
	}

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", level)
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// OrDefault returns l, or a fresh logrus logger when l is nil.
func OrDefault(l *logrus.Logger) *logrus.Logger {
	if l == nil {
		return logrus.New()
	}
	return l
}

// Package logger builds charmbracelet/log loggers for the docid binaries and packages.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a default charm logger on stderr. Stdout carries ID output and
// the IPC protocol, so logging never goes there.
func New(prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, prefix)
}

// NewWithWriter creates a default charm logger on w.
func NewWithWriter(w io.Writer, prefix string) *log.Logger {
	return NewWithConfig(w, prefix, log.GetLevel(), false, log.TextFormatter)
}

// NewWithConfig creates a charm logger on w at level. Below info level
// timestamps are reported too, so trace lines of long batches can be timed.
func NewWithConfig(w io.Writer, prefix string, level log.Level, caller bool, f log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: level < log.InfoLevel,
		Formatter:       f,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return NewWithConfig(io.Discard, "", log.FatalLevel, false, log.TextFormatter)
}

package loom

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger handles the toolkit's diagnostics. Everything recoverable
// (structural misuse, impossible layout sizes, routing misses) is logged
// here and degraded locally; nothing in the dispatch protocol panics or
// returns an error.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "loom",
})

// SetLogger replaces the package logger, e.g. to redirect diagnostics into
// an application's own sink. A nil logger is ignored.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Logger returns the current package logger.
func Logger() *log.Logger {
	return logger
}

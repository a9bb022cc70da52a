package common

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger returns the process logger. debug lowers the level so per-frame
// events (jumps, landings) are shown.
func NewLogger(w io.Writer, prefix string, debug bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

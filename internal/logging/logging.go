// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const prefix = "taskks"

// New returns a logger at the given level. With an empty file it writes styled
// text to w; otherwise it appends logfmt lines to file and the returned closer
// releases it.
func New(level, file string, w io.Writer) (*log.Logger, func() error, error) {
	closer := func() error { return nil }

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, closer, fmt.Errorf("parse logging level %q: %w", level, err)
	}
	if w == nil {
		w = io.Discard
	}

	if file == "" {
		return log.NewWithOptions(w, log.Options{
			Level:     lvl,
			Prefix:    prefix,
			Formatter: log.TextFormatter,
		}), closer, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, closer, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, closer, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           lvl,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.LogfmtFormatter,
	})
	return logger, f.Close, nil
}

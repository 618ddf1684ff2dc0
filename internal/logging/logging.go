// Package logging configures the application logger.
package logging

import (
	"io"

	gokitlog "github.com/go-kit/log"
)

// New creates a logfmt logger writing to w with a UTC timestamp.
func New(w io.Writer) gokitlog.Logger {
	logger := gokitlog.NewLogfmtLogger(gokitlog.NewSyncWriter(w))
	return gokitlog.With(logger, "ts", gokitlog.DefaultTimestampUTC)
}

// Warn logs a warning message with optional key-value context.
func Warn(logger gokitlog.Logger, msg string, keyvals ...any) {
	kvs := append([]any{"level", "warn", "msg", msg}, keyvals...)
	if err := logger.Log(kvs...); err != nil {
		// Best-effort logging.
		_ = err
	}
}

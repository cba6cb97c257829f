package sketch

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// quietHandler is installed until main asks for output.  A sketch logs per
// frame, so Enabled reports false and the attrs are never built.
type quietHandler struct{}

func (quietHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (quietHandler) Handle(context.Context, slog.Record) error { return nil }
func (h quietHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h quietHandler) WithGroup(string) slog.Handler           { return h }

var quiet = slog.New(quietHandler{})

// current is read from the frame goroutines and the preview server.
var current atomic.Pointer[slog.Logger]

// SetLogger configures logging for the sketch and the preview server.  By
// default nothing is logged.  Pass nil to go quiet again.
//
// Levels used:
//   - [slog.LevelDebug]: per-frame detail (cells skipped, timings)
//   - [slog.LevelInfo]: lifecycle (sketch created, server listening)
//   - [slog.LevelWarn]: frames that could not be encoded
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = quiet
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger, or a silent one.
func Logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return quiet
}

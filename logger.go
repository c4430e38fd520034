package papercut

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"

	"github.com/gogpu/papercut/internal/raster"
)

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for papercut, its rasteriser and the gg
// renderer underneath. By default nothing is logged. Pass nil to restore
// the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: layer rebuilds, discarded gestures and points
//   - [slog.LevelInfo]: Initialize, Clear, SetCommands
//   - [slog.LevelWarn]: a path could not be rasterised
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	raster.SetLogger(l)
	gg.SetLogger(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

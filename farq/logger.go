package farq

import (
	"log/slog"

	"github.com/farqproto/farq/internal"
)

// logger is embedded in Engine. A nil *slog.Logger means logging is off, and
// the level check happens before any attrs are built so a disabled
// trace/debug line costs nothing beyond the Enabled() call.
type logger struct {
	log *slog.Logger
}

func (l logger) enabled(lvl slog.Level) bool {
	return internal.LogEnabled(l.log, lvl)
}

func (l logger) logAttrs(lvl slog.Level, msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, lvl, msg, attrs...)
}

func (l logger) trace(msg string, attrs ...slog.Attr) {
	if l.enabled(internal.LevelTrace) {
		l.logAttrs(internal.LevelTrace, msg, attrs...)
	}
}

func (l logger) debug(msg string, attrs ...slog.Attr) {
	if l.enabled(slog.LevelDebug) {
		l.logAttrs(slog.LevelDebug, msg, attrs...)
	}
}

func (l logger) warn(msg string, attrs ...slog.Attr) {
	if l.enabled(slog.LevelWarn) {
		l.logAttrs(slog.LevelWarn, msg, attrs...)
	}
}

func errAttr(err error) slog.Attr {
	return slog.String("error", err.Error())
}

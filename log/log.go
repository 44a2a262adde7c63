// Package log adapts github.com/rs/zerolog to vtmux.Logger, the structured
// log sink spec.md §7 calls for (SPEC_FULL.md §3 Ambient stack).
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/vtmux-core/vtmux"
)

// Logger wraps a zerolog.Logger to satisfy vtmux.Logger.
type Logger struct {
	zl zerolog.Logger
}

var _ vtmux.Logger = Logger{}

// New builds a Logger writing to w (os.Stderr if nil) at the given level.
func New(w io.Writer, level zerolog.Level) Logger {
	if w == nil {
		w = os.Stderr
	}
	zl := zerolog.New(w).With().Timestamp().Logger().Level(level)
	return Logger{zl: zl}
}

func (l Logger) Debugf(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

func (l Logger) Warnf(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

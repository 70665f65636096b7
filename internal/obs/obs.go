// Package obs wraps zerolog for the structured logging every other package
// threads through as an optional collaborator: OSTIA ingestion progress,
// REPL command timing, and pipeline external-stage failures (spec §5, §6,
// §4.4). Grounded on the teacher's preference for a plain struct with no
// log fields forcing a concrete sink — components take a Logger value, and
// the zero value discards silently.
package obs

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the thin facade every package depends on instead of importing
// zerolog directly, so the logging library stays swappable at one seam.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger writing structured JSON lines to w at the given
// minimum level.
func New(w io.Writer, level zerolog.Level) Logger {
	return Logger{z: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

// Nop returns the discarding logger used as the zero value for library
// callers who never configured a sink.
func Nop() Logger {
	return Logger{z: zerolog.Nop()}
}

func (l Logger) Debug(msg string, fields map[string]any) { l.event(l.z.Debug(), msg, fields) }
func (l Logger) Info(msg string, fields map[string]any)  { l.event(l.z.Info(), msg, fields) }
func (l Logger) Warn(msg string, fields map[string]any)  { l.event(l.z.Warn(), msg, fields) }
func (l Logger) Error(msg string, err error, fields map[string]any) {
	l.event(l.z.Error().Err(err), msg, fields)
}

func (l Logger) event(e *zerolog.Event, msg string, fields map[string]any) {
	if e == nil {
		return
	}
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	e.Msg(msg)
}

// WithLevel returns a copy of l filtering at the given minimum level, used
// by the REPL's `/verbose` command (spec §6, §9) to flip between debug and
// info output without replacing the underlying writer.
func (l Logger) WithLevel(level zerolog.Level) Logger {
	return Logger{z: l.z.Level(level)}
}

// Duration reports a command's wall-clock duration at debug level (spec
// §6: "each command reports its wall-clock duration via the debug
// logger").
func (l Logger) Duration(command string, d time.Duration) {
	l.Debug("command completed", map[string]any{"command": command, "duration_ms": d.Milliseconds()})
}

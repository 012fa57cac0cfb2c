// Package diag is the ambient diagnostic logger. It wraps
// github.com/rs/zerolog (grounded on other_examples/badu-term, the one
// example in the pack that depends on zerolog for a low-level input tool)
// with the handful of event-path helpers the hook adapter and engine need,
// shaped after the original tool's debug trace: one line per input event,
// one per synthesized output, one per block/pass decision.
package diag

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/andrieee44/dualkey/rule"
)

// Logger is a thin, leveled wrapper around a zerolog.Logger. All event-path
// methods are no-ops when debug logging is off, so the hot path never pays
// for formatting it will discard.
type Logger struct {
	zl    zerolog.Logger
	debug bool
}

// New builds a Logger. jsonOutput selects a JSON writer (for log
// shipping, (expansion) DUALKEY_LOG_JSON=1); otherwise a
// zerolog.ConsoleWriter is used, matching the original tool's allocated
// debug console.
func New(debug, jsonOutput bool) *Logger {
	var w io.Writer

	if jsonOutput {
		w = os.Stdout
	} else {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return &Logger{
		zl:    zerolog.New(w).With().Timestamp().Logger().Level(level),
		debug: debug,
	}
}

// Raw exposes the underlying zerolog.Logger for components outside the
// event path (config loader, hook registration) that want structured,
// non-hot-path logging.
func (l *Logger) Raw() *zerolog.Logger {
	return &l.zl
}

// Input logs an inbound normalized event.
func (l *Logger) Input(ev rule.InputEvent) {
	if !l.debug {
		return
	}

	l.zl.Debug().
		Uint16("virtual_code", ev.VirtualCode).
		Str("direction", ev.Direction.String()).
		Uint32("time_ms", ev.TimeMS).
		Bool("injected", ev.IsInjected).
		Msg("input")
}

// Output logs one synthesized event about to be sent to the OS.
func (l *Logger) Output(se rule.SyntheticEvent) {
	if !l.debug {
		return
	}

	l.zl.Debug().
		Str("key", se.Descriptor.Name).
		Str("direction", se.Direction.String()).
		Uint8("rule_id", se.RuleID).
		Msg("output")
}

// Decision logs the final block/pass decision for one hook callback.
func (l *Logger) Decision(block bool) {
	if !l.debug {
		return
	}

	l.zl.Debug().Bool("block", block).Msg("decision")
}

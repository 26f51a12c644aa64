// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"fmt"
	"io"
	"os"
	"runtime"
)

// Verbosity is the four-level logging verbosity enum.
type Verbosity int

const (
	// LogNone disables the event log entirely.
	LogNone Verbosity = iota

	// LogEvents logs one column-aligned line per event: direction, entity,
	// socket, event label.
	LogEvents

	// LogEventsData additionally includes message contents (e.g. bytes
	// transferred, HTTP status).
	LogEventsData

	// LogEventsSource additionally includes the source file:line of the
	// emitting statement.
	LogEventsSource
)

// direction glyphs used by [EventLogger.Log]. Matches the three directions
// an event can flow relative to the engine: inbound (kernel to us),
// outbound (us to kernel), and internal (no I/O, e.g. a dispatch error).
const (
	glyphIn       = "<-"
	glyphOut      = "->"
	glyphInternal = "--"
)

// EventLogger formats one fixed-width, column-aligned line per engine event.
// It is independent of [SLogger]: [SLogger] carries general
// structured diagnostics (lifecycle events and per-I/O completions) in the
// teacher's slog-compatible style, while EventLogger is the dedicated
// per-tick event trace a caller enables for debugging the state machine.
type EventLogger struct {
	// Verbosity controls how much detail is included.
	Verbosity Verbosity

	// Writer is where formatted lines are written. Defaults to os.Stderr
	// if nil when [EventLogger.Log] is first called.
	Writer io.Writer
}

// NewEventLogger returns an [*EventLogger] at the given verbosity, writing
// to os.Stderr.
func NewEventLogger(verbosity Verbosity) *EventLogger {
	return &EventLogger{Verbosity: verbosity, Writer: os.Stderr}
}

// Log emits one line for an event on the given entity/socket, at the given
// glyph, with a short event label. spanID, if non-empty, is rendered so every
// line belonging to one connection's lifetime can be grepped together across
// the accept/receive/send/connect handlers that share it. data is only
// rendered at [LogEventsData] or above; it is otherwise ignored. The
// caller's source location is only rendered at [LogEventsSource].
func (l *EventLogger) Log(glyph string, entity EntityID, socket uintptr, spanID string, label string, data string) {
	if l == nil || l.Verbosity == LogNone {
		return
	}
	w := l.Writer
	if w == nil {
		w = os.Stderr
	}

	line := fmt.Sprintf("%-2s entity=%-10d socket=%-10d %-20s", glyph, entity, socket, label)
	if spanID != "" {
		line += " span=" + spanID
	}
	if l.Verbosity >= LogEventsData && data != "" {
		line += " " + data
	}
	if l.Verbosity >= LogEventsSource {
		if _, file, lineNo, ok := runtime.Caller(1); ok {
			line += fmt.Sprintf(" (%s:%d)", file, lineNo)
		}
	}
	fmt.Fprintln(w, line)
}

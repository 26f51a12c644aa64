// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import "time"

// Config holds common configuration for the transport engine.
//
// Pass this to constructor functions to pre-wire dependencies. All fields
// have sensible defaults set by [NewConfig] and are safe to modify after
// construction but before the engine's first [Pump.Tick].
type Config struct {
	// DefaultReadBufferSize is the receive buffer size used when a
	// [ReceiveRecord] does not override it.
	//
	// Set by [NewConfig] to 4096.
	DefaultReadBufferSize int

	// EventLimit bounds how many completions [Pump.Tick] drains per call.
	// Zero means unlimited.
	//
	// Set by [NewConfig] to 0.
	EventLimit int

	// ErrClassifier classifies errors deposited into an entity's [Errors]
	// record and decides which receive failures are benign.
	//
	// Set by [NewConfig] from [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use for general structured logging
	// (lifecycle events and per-I/O completions; see [SLogger]).
	//
	// Set by [NewConfig] to [DefaultSLogger].
	Logger SLogger

	// Verbosity names a level for the dedicated column-aligned event log.
	// The engine does not read this field: the level in effect is
	// EventLog's own [EventLogger.Verbosity].
	//
	// Set by [NewConfig] to [LogNone].
	Verbosity Verbosity

	// EventLog is the dedicated per-tick event trace the pump writes to at
	// Verbosity above [LogNone]. Set by [NewConfig] from Verbosity; replace
	// it after construction to redirect output or raise/lower verbosity.
	EventLog *EventLogger

	// DebugFatal, when set, additionally prints a stack trace and aborts
	// on any entity-surfaced error. This is a runtime concern rather than
	// a compile-time one, so it is a config flag instead of a build tag.
	//
	// Set by [NewConfig] to false.
	DebugFatal bool

	// CORS is a CORS header set carried on the configuration. The HTTP
	// lifecycle does not read it: preflight responses and merged CORS
	// headers come from each entity's [ProcessHttp].CORS.
	//
	// Set by [NewConfig] to the zero value (all headers empty).
	CORS CORSConfig

	// TimeNow returns the current time.
	//
	// Set by [NewConfig] to [time.Now].
	TimeNow func() time.Time
}

// NewConfig creates a [*Config] with sensible defaults.
func NewConfig() *Config {
	return &Config{
		DefaultReadBufferSize: 4096,
		EventLimit:            0,
		ErrClassifier:         DefaultErrClassifier,
		Logger:                DefaultSLogger(),
		Verbosity:             LogNone,
		EventLog:              NewEventLogger(LogNone),
		DebugFatal:            false,
		TimeNow:               time.Now,
	}
}

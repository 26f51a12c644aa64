// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"fmt"
	"runtime/debug"
)

// Errors accumulates human-readable failure messages for an entity. Any
// non-zero OS error from an operation owned by a live entity is appended
// as a string message to that entity's Errors record (created if absent).
type Errors struct {
	messages []string
}

// Append adds msg to the record.
func (e *Errors) Append(msg string) {
	e.messages = append(e.messages, msg)
}

// Messages returns the accumulated messages without clearing them.
func (e *Errors) Messages() []string {
	return e.messages
}

// Drain returns the accumulated messages and clears the record. Without a
// drain the record would grow without bound across ticks.
func (e *Errors) Drain() []string {
	msgs := e.messages
	e.messages = nil
	return msgs
}

// appendError appends a classified error message to id's Errors record,
// creating the record if it is absent. Used by [Pump.Tick] to surface
// entity-owned operation failures.
//
// When cfg.DebugFatal is set, it panics with the message and a stack trace
// instead of returning quietly, turning every entity-surfaced error into a
// hard stop for local debugging.
func appendError(w *World, id EntityID, cfg *Config, err error) {
	rec, ok := Get[Errors](w, id)
	if !ok {
		rec = Add(w, id, Errors{})
	}
	msg := err.Error()
	if cls := cfg.ErrClassifier.Classify(err); cls != "" {
		msg = cls + ": " + msg
	}
	rec.Append(msg)
	if cfg.DebugFatal {
		panic(fmt.Sprintf("asynctcp: entity %d: %s\n%s", id, msg, debug.Stack()))
	}
}

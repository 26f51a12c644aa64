//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// ConnectionRecord owns a connected socket and its address strings.
//
// Attached manually for outbound connections (alongside a [SendRecord]) or
// by the accept dispatcher for inbound connections.
type ConnectionRecord struct {
	// Port is the [*CompletionPort] this connection's socket is (or will
	// be) registered with. Copied at attach time.
	Port *CompletionPort

	// Socket is the raw connected socket. Zero until a [SendRecord]
	// initiates the connect (outbound), or immediately populated (inbound,
	// via accept).
	Socket windows.Handle

	LocalAddr  string
	RemoteAddr string
	LocalPort  uint16
	RemotePort uint16

	// SpanID correlates this connection's log lines end to end.
	SpanID string
}

var _ attachHook = (*ConnectionRecord)(nil)
var _ removeHook = (*ConnectionRecord)(nil)

// OnAttach implements [attachHook]. It only stamps a span id; actual socket
// setup for outbound connections is driven by [SendRecord.OnAttach] once
// both records are present: adding a SendRecord alongside a
// ConnectionRecord with a zero socket triggers a connect.
func (c *ConnectionRecord) OnAttach(w *World, id EntityID) {
	if c.SpanID == "" {
		c.SpanID = NewSpanID()
	}
}

// OnRemove implements [removeHook]. It shuts down both directions, closes
// the socket, and releases the address strings.
func (c *ConnectionRecord) OnRemove(w *World, id EntityID) {
	engineCtx(w).Config.Logger.Info("close", "entity", id, "span", c.SpanID)
	if c.Socket != 0 && c.Socket != windows.InvalidHandle {
		_ = windows.Shutdown(c.Socket, windows.SHUT_RDWR)
		_ = windows.CloseHandle(c.Socket)
		c.Socket = 0
	}
	c.LocalAddr = ""
	c.RemoteAddr = ""
}

// String renders the connection for event logging.
func (c *ConnectionRecord) String() string {
	return fmt.Sprintf("%s:%d -> %s:%d", c.LocalAddr, c.LocalPort, c.RemoteAddr, c.RemotePort)
}

// connSpanID returns id's [ConnectionRecord.SpanID], or "" if id has no
// connection record (e.g. a listener entity). Used by [Pump]'s completion
// handlers to tag every [EventLogger] line with the span correlating that
// connection's lifetime.
func connSpanID(w *World, id EntityID) string {
	conn, ok := Get[ConnectionRecord](w, id)
	if !ok {
		return ""
	}
	return conn.SpanID
}

//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConnWorld() *World {
	w := NewWorld()
	w.Ctx = &engineContext{Port: &CompletionPort{}, Config: NewConfig()}
	return w
}

func TestConnectionRecordOnAttachStampsSpanID(t *testing.T) {
	w := newTestConnWorld()
	id := w.NewEntity()

	conn := Add(w, id, ConnectionRecord{})
	assert.NotEmpty(t, conn.SpanID)
}

func TestConnectionRecordOnAttachKeepsExistingSpanID(t *testing.T) {
	w := newTestConnWorld()
	id := w.NewEntity()

	conn := Add(w, id, ConnectionRecord{SpanID: "fixed-span"})
	assert.Equal(t, "fixed-span", conn.SpanID)
}

func TestConnectionRecordOnRemoveClearsAddresses(t *testing.T) {
	w := newTestConnWorld()
	id := w.NewEntity()

	conn := Add(w, id, ConnectionRecord{LocalAddr: "127.0.0.1", LocalPort: 80, RemoteAddr: "10.0.0.1", RemotePort: 443})
	require.True(t, Remove[ConnectionRecord](w, id))

	// OnRemove ran on the stored record and cleared its address strings.
	assert.Empty(t, conn.LocalAddr)
	assert.Empty(t, conn.RemoteAddr)
}

func TestConnectionRecordString(t *testing.T) {
	conn := &ConnectionRecord{LocalAddr: "127.0.0.1", LocalPort: 1234, RemoteAddr: "10.0.0.1", RemotePort: 443}
	assert.Equal(t, "127.0.0.1:1234 -> 10.0.0.1:443", conn.String())
}

func TestConnSpanID(t *testing.T) {
	w := newTestConnWorld()
	id := w.NewEntity()

	assert.Empty(t, connSpanID(w, id))

	conn := Add(w, id, ConnectionRecord{SpanID: "abc"})
	assert.Equal(t, conn.SpanID, connSpanID(w, id))
}

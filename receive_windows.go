//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import "golang.org/x/sys/windows"

// ReceiveRecord owns a receive buffer and a pending receive operation.
type ReceiveRecord struct {
	// ListenSocket is non-zero only for listener-spawned receives.
	ListenSocket windows.Handle

	// Data accumulates bytes across kernel deliveries for the current
	// receive cycle.
	Data ByteBuffer

	// BufferSize overrides [Config.DefaultReadBufferSize] when non-zero.
	BufferSize int

	// MaxReadLength, if non-zero, is a ceiling on accumulated Data after
	// which [ReceiveComplete] is published and the receive is not
	// restarted.
	MaxReadLength int

	// SingleRead publishes [ReceiveComplete] after the first kernel
	// delivery, regardless of whether the connection half-closed, and does
	// not arm another receive beyond the first.
	SingleRead bool

	op AcceptReceiveOp
}

var _ attachHook = (*ReceiveRecord)(nil)
var _ removeHook = (*ReceiveRecord)(nil)

// OnAttach implements [attachHook]: allocates a fresh receive buffer and
// submits an asynchronous receive.
//
// Adding a ReceiveRecord without a sibling [ConnectionRecord] already
// attached is a programmer error and panics.
func (r *ReceiveRecord) OnAttach(w *World, id EntityID) {
	conn, ok := Get[ConnectionRecord](w, id)
	if !ok {
		panic("asynctcp: ReceiveRecord attached without a ConnectionRecord")
	}
	ectx := engineCtx(w)

	size := r.BufferSize
	if size == 0 {
		size = ectx.Config.DefaultReadBufferSize
	}
	r.op.Buffer.SetLength(size)
	r.op.SingleRead = r.SingleRead

	armReceive(w, id, r, conn.Socket, ectx)
}

// OnRemove implements [removeHook]: shuts down the receive side and
// releases both buffers.
func (r *ReceiveRecord) OnRemove(w *World, id EntityID) {
	if r.op.Socket != 0 && r.op.Socket != windows.InvalidHandle {
		_ = windows.Shutdown(r.op.Socket, windows.SHUT_RD)
	}
	r.Data = ByteBuffer{}
	r.op.Buffer = ByteBuffer{}
}

// armReceive submits a fresh WSARecv on socket. Invariant: must not be
// called while r.op.State is already [OpReceiving].
func armReceive(w *World, id EntityID, r *ReceiveRecord, socket windows.Handle, ectx *engineContext) {
	if r.op.State == OpReceiving {
		panic("asynctcp: receive already outstanding on this ReceiveRecord")
	}

	r.op.OperationRecord = OperationRecord{
		Entity: id,
		Socket: socket,
		State:  OpReceiving,
	}

	bytes := r.op.Buffer.Bytes()
	if len(bytes) == 0 {
		r.op.Buffer.SetLength(ectx.Config.DefaultReadBufferSize)
		bytes = r.op.Buffer.Bytes()
	}
	wsabuf := windows.WSABuf{Len: uint32(len(bytes)), Buf: &bytes[0]}
	var flags uint32
	err := windows.WSARecv(socket, &wsabuf, 1, &r.op.BytesReceived, &flags, &r.op.Overlapped, nil)
	if err != nil && !isPendingErr(err) {
		appendError(w, id, ectx.Config, err)
	}
}

//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import "golang.org/x/sys/windows"

// ListenRecord owns a listening socket and a pre-allocated accept
// operation.
type ListenRecord struct {
	// LocalPort is the TCP port to listen on.
	LocalPort uint16

	// OnAccept is applied, in order, to every entity created for an
	// accepted connection.
	OnAccept []Template

	// SingleRead is the listener-wide default propagated, once, to each
	// spawned [ReceiveRecord] at accept time.
	SingleRead bool

	// Socket is the listening socket, non-zero once attached.
	Socket windows.Handle

	op AcceptReceiveOp
}

var _ attachHook = (*ListenRecord)(nil)
var _ removeHook = (*ListenRecord)(nil)

// OnAttach implements [attachHook]. It creates an IPv4 TCP socket, binds
// it to LocalPort, begins listening, registers it with the completion
// port, and arms the first accept. The socket is left in the default
// blocking mode; accepts on it are issued as overlapped operations.
func (l *ListenRecord) OnAttach(w *World, id EntityID) {
	ectx := engineCtx(w)

	s, err := windows.Socket(windows.AF_INET, windows.SOCK_STREAM, windows.IPPROTO_TCP)
	if err != nil {
		appendError(w, id, ectx.Config, err)
		return
	}

	addr := windows.SockaddrInet4{Port: int(l.LocalPort)}
	if err := windows.Bind(s, &addr); err != nil {
		_ = windows.CloseHandle(s)
		appendError(w, id, ectx.Config, err)
		return
	}
	if err := windows.Listen(s, windows.SOMAXCONN); err != nil {
		_ = windows.CloseHandle(s)
		appendError(w, id, ectx.Config, err)
		return
	}
	if err := ectx.Port.Register(s); err != nil {
		_ = windows.CloseHandle(s)
		appendError(w, id, ectx.Config, err)
		return
	}

	l.Socket = s
	l.op.Entity = id
	l.op.State = OpAccepting

	ectx.Config.Logger.Info("listen", "entity", id, "port", l.LocalPort)
	armAccept(w, id, l, ectx)
}

// OnRemove implements [removeHook]. Closing the socket handle causes any
// outstanding overlapped operation to complete with an error on the next
// pump iteration.
func (l *ListenRecord) OnRemove(w *World, id EntityID) {
	if l.Socket != 0 && l.Socket != windows.InvalidHandle {
		_ = windows.CloseHandle(l.Socket)
		l.Socket = 0
	}
}

// armAccept submits a fresh AcceptEx on l.Socket, re-arming the accept on
// the listening record. Invariant: no other accept may be outstanding on
// l.op when this is called.
func armAccept(w *World, id EntityID, l *ListenRecord, ectx *engineContext) {
	acceptSocket, err := windows.Socket(windows.AF_INET, windows.SOCK_STREAM, windows.IPPROTO_TCP)
	if err != nil {
		appendError(w, id, ectx.Config, err)
		return
	}

	l.op.OperationRecord = OperationRecord{
		Entity: id,
		Socket: acceptSocket,
		State:  OpAccepting,
	}
	l.op.ListenSocket = l.Socket

	var bytesReceived uint32
	sockaddrSize := uint32(unsafeSockaddrMax + 16)
	err = callAcceptEx(l.Socket, acceptSocket, &l.op.AddressBuffer[0], sockaddrSize, &bytesReceived, &l.op.Overlapped)
	if err != nil && !isPendingErr(err) {
		_ = windows.CloseHandle(acceptSocket)
		appendError(w, id, ectx.Config, err)
	}
}

func isPendingErr(err error) bool {
	errno, ok := err.(windows.Errno)
	return ok && errno == windows.ERROR_IO_PENDING
}

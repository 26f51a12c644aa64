//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/rlipsc/asynctcp/errclass"
	"golang.org/x/sys/windows"
)

// solSocket and soUpdateAcceptContext are the level/option pair needed to
// make an AcceptEx-created socket behave as if created by accept():
// getsockname/getpeername and socket options inherited from the listening
// socket only work after applying SO_UPDATE_ACCEPT_CONTEXT.
const (
	solSocket              = 0xffff
	soUpdateAcceptContext  = 0x700b
	soUpdateConnectContext = 0x7000
)

// Pump drains the completion port and dispatches each completion to the
// record that owns it.
type Pump struct {
	Port   *CompletionPort
	Config *Config
}

// Tick drains up to [Config.EventLimit] completions (0 means unlimited),
// dispatching each by the owning [OperationRecord]'s State.
func (p *Pump) Tick(ctx context.Context, w *World) error {
	ectx := engineCtx(w)
	drained := 0
	for {
		if p.Config.EventLimit > 0 && drained >= p.Config.EventLimit {
			return nil
		}
		bytes, _, overlapped, ok, err := p.Port.poll()
		if !ok {
			if err != nil {
				return err
			}
			return nil
		}
		drained++
		p.dispatch(ctx, w, ectx, bytes, overlapped, err)
	}
}

// dispatch recovers the owning entity and operation kind from overlapped
// (the [OperationRecord.Overlapped] field, which is always the first field
// of the first field of the owning op, and so shares its address) and
// routes to the matching handler.
func (p *Pump) dispatch(ctx context.Context, w *World, ectx *engineContext, bytes uint32, overlapped *windows.Overlapped, ioErr error) {
	opRec := (*OperationRecord)(unsafe.Pointer(overlapped))
	id := opRec.Entity
	state := opRec.State

	if !w.Alive(id) {
		// The entity was deleted while this operation was outstanding;
		// discard the completion.
		return
	}

	switch state {
	case OpAccepting:
		if l, ok := Get[ListenRecord](w, id); ok {
			p.handleAccept(ctx, w, ectx, id, l, bytes, ioErr)
		}
	case OpReceiving:
		if r, ok := Get[ReceiveRecord](w, id); ok {
			p.handleReceive(w, ectx, id, r, bytes, ioErr)
		}
	case OpConnecting:
		if s, ok := Get[SendRecord](w, id); ok {
			p.handleConnect(w, ectx, id, s, bytes, ioErr)
		}
	case OpSending:
		if s, ok := Get[SendRecord](w, id); ok {
			p.handleSend(w, ectx, id, s, bytes, ioErr)
		}
	}
}

// handleAccept finalizes a completed AcceptEx, spawns a connection entity
// with the listener's on-accept templates applied, and re-arms the next
// accept.
func (p *Pump) handleAccept(ctx context.Context, w *World, ectx *engineContext, listenID EntityID, l *ListenRecord, _ uint32, ioErr error) {
	acceptSocket := l.op.Socket
	l.op.State = OpInvalid

	if ioErr != nil {
		_ = windows.CloseHandle(acceptSocket)
		appendError(w, listenID, ectx.Config, ioErr)
		armAccept(w, listenID, l, ectx)
		return
	}

	_ = windows.Setsockopt(acceptSocket, solSocket, soUpdateAcceptContext,
		(*byte)(unsafe.Pointer(&l.Socket)), int32(unsafe.Sizeof(l.Socket)))

	if err := ectx.Port.Register(acceptSocket); err != nil {
		_ = windows.CloseHandle(acceptSocket)
		appendError(w, listenID, ectx.Config, err)
		armAccept(w, listenID, l, ectx)
		return
	}

	local, remote := callGetAcceptExSockaddrs(&l.op.AddressBuffer[0], uint32(unsafeSockaddrMax+16))
	localIP, localPort := sockaddrToIPPort(local)
	remoteIP, remotePort := sockaddrToIPPort(remote)

	connID := w.NewEntity()
	Add(w, connID, ConnectionRecord{
		Port:       ectx.Port,
		Socket:     acceptSocket,
		LocalAddr:  localIP,
		LocalPort:  localPort,
		RemoteAddr: remoteIP,
		RemotePort: remotePort,
	})
	Add(w, connID, Connected{})
	Add(w, connID, ReceiveRecord{ListenSocket: l.Socket, SingleRead: l.SingleRead})
	applyTemplates(ctx, l.OnAccept, w, connID, ectx.Config)

	ectx.Config.EventLog.Log(glyphIn, connID, uintptr(acceptSocket), connSpanID(w, connID), "accept",
		fmt.Sprintf("%s:%d", remoteIP, remotePort))
	ectx.Config.Logger.Info("accept", "entity", connID, "remote", fmt.Sprintf("%s:%d", remoteIP, remotePort))

	armAccept(w, listenID, l, ectx)
}

// handleReceive accumulates a completed receive, decides whether to restart
// it, and publishes [ReceiveComplete] when the cycle ends.
func (p *Pump) handleReceive(w *World, ectx *engineContext, id EntityID, r *ReceiveRecord, bytes uint32, ioErr error) {
	r.op.State = OpInvalid

	if ioErr != nil {
		if !isBenignReceiveError(ectx.Config.ErrClassifier.Classify(ioErr)) {
			appendError(w, id, ectx.Config, ioErr)
		}
		finishReceive(w, id, r)
		return
	}

	r.Data.Append(r.op.Buffer.Bytes()[:bytes])
	ectx.Config.EventLog.Log(glyphIn, id, uintptr(r.op.Socket), connSpanID(w, id), "receive", fmt.Sprintf("%d bytes", bytes))
	ectx.Config.Logger.Debug("receive", "entity", id, "bytes", bytes)

	switch {
	case bytes == 0:
		// Graceful half-close: the peer sent FIN.
		finishReceive(w, id, r)
	case r.op.SingleRead:
		finishReceive(w, id, r)
	case r.MaxReadLength > 0 && r.Data.Len() >= r.MaxReadLength:
		finishReceive(w, id, r)
	default:
		armReceive(w, id, r, r.op.Socket, ectx)
	}
}

func finishReceive(w *World, id EntityID, r *ReceiveRecord) {
	data := append([]byte(nil), r.Data.Bytes()...)
	Add(w, id, ReceiveComplete{Data: data})
}

// handleConnect finalizes a completed ConnectEx: marks the connection
// connected and, if the connect carried payload bytes, treats it as an
// already-completed send.
func (p *Pump) handleConnect(w *World, ectx *engineContext, id EntityID, s *SendRecord, bytes uint32, ioErr error) {
	s.op.State = OpInvalid
	s.op.ResolvedAddress = nil

	if ioErr != nil {
		appendError(w, id, ectx.Config, ioErr)
		return
	}

	if conn, ok := Get[ConnectionRecord](w, id); ok {
		_ = windows.Setsockopt(conn.Socket, solSocket, soUpdateConnectContext, nil, 0)
	}
	Add(w, id, Connected{})
	ectx.Config.EventLog.Log(glyphOut, id, 0, connSpanID(w, id), "connect", "")
	ectx.Config.Logger.Info("connect", "entity", id)

	if int(bytes) >= s.op.Buffer.Len() {
		Add(w, id, SendComplete{})
		return
	}
	// Partial send carried by ConnectEx: finish it with an ordinary send.
	remaining := append([]byte(nil), s.op.Buffer.Bytes()[bytes:]...)
	s.op.Buffer.Assign(remaining)
	if conn, ok := Get[ConnectionRecord](w, id); ok {
		armSend(w, id, s, conn.Socket, ectx)
	}
}

// handleSend finalizes a completed WSASend.
func (p *Pump) handleSend(w *World, ectx *engineContext, id EntityID, s *SendRecord, _ uint32, ioErr error) {
	s.op.State = OpInvalid
	if ioErr != nil {
		appendError(w, id, ectx.Config, ioErr)
		return
	}
	ectx.Config.EventLog.Log(glyphOut, id, uintptr(s.op.Socket), connSpanID(w, id), "send", fmt.Sprintf("%d bytes", s.op.BytesSent))
	ectx.Config.Logger.Debug("send", "entity", id, "bytes", s.op.BytesSent)
	Add(w, id, SendComplete{})
}

// isBenignReceiveError reports whether a classified receive failure is a
// routine connection teardown (peer reset, abort, or an already-closed
// socket) rather than a condition worth surfacing on the entity's [Errors]
// record. The data accumulated so far is still published via
// [ReceiveComplete] either way.
func isBenignReceiveError(label string) bool {
	switch label {
	case errclass.ECONNRESET, errclass.ECONNABORTED, errclass.ENOTCONN:
		return true
	}
	return false
}

// sockaddrToIPPort converts an AcceptEx-filled raw sockaddr into a
// dotted-quad string and port. A nil or unrecognized address yields ("", 0).
func sockaddrToIPPort(raw *windows.RawSockaddrAny) (string, uint16) {
	if raw == nil {
		return "", 0
	}
	sa, err := raw.Sockaddr()
	if err != nil {
		return "", 0
	}
	in4, ok := sa.(*windows.SockaddrInet4)
	if !ok {
		return "", 0
	}
	return fmt.Sprintf("%d.%d.%d.%d", in4.Addr[0], in4.Addr[1], in4.Addr[2], in4.Addr[3]), uint16(in4.Port)
}


//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import "golang.org/x/sys/windows"

// SendRecord owns outbound data and a pending send (or connect-with-send)
// operation.
//
// Adding a SendRecord alongside a [ConnectionRecord] with a zero socket
// triggers an asynchronous connect (optionally carrying the first bytes of
// Data via ConnectEx); adding it alongside an already-connected socket
// triggers an immediate send.
type SendRecord struct {
	// RemoteAddr and RemotePort address the peer to connect to. Only
	// consulted when the sibling ConnectionRecord's socket is zero.
	RemoteAddr string
	RemotePort uint16

	// Data is the outbound payload. OnAttach takes ownership of it via
	// [Transfer]; callers should not retain a reference after attaching.
	Data ByteBuffer

	op SendOp
}

var _ attachHook = (*SendRecord)(nil)
var _ removeHook = (*SendRecord)(nil)

// OnAttach implements [attachHook].
func (s *SendRecord) OnAttach(w *World, id EntityID) {
	conn, ok := Get[ConnectionRecord](w, id)
	if !ok {
		panic("asynctcp: SendRecord attached without a ConnectionRecord")
	}
	ectx := engineCtx(w)

	Transfer(&s.Data, &s.op.Buffer)

	if conn.Socket == 0 {
		armConnect(w, id, s, conn, ectx)
		return
	}
	armSend(w, id, s, conn.Socket, ectx)
}

// OnRemove implements [removeHook]: releases the outbound buffer and any
// resolved address still held for an in-flight connect.
func (s *SendRecord) OnRemove(w *World, id EntityID) {
	s.op.Buffer = ByteBuffer{}
	s.op.ResolvedAddress = nil
}

// armConnect creates the socket, binds it to the wildcard address (required
// before ConnectEx), registers it with the completion port, and submits an
// asynchronous connect that carries s.op.Buffer as the first bytes sent: the
// outbound connect carries the first write's bytes, if any, as part of the
// connect operation itself.
func armConnect(w *World, id EntityID, s *SendRecord, conn *ConnectionRecord, ectx *engineContext) {
	sock, err := windows.Socket(windows.AF_INET, windows.SOCK_STREAM, windows.IPPROTO_TCP)
	if err != nil {
		appendError(w, id, ectx.Config, err)
		return
	}
	if err := windows.Bind(sock, &windows.SockaddrInet4{}); err != nil {
		_ = windows.CloseHandle(sock)
		appendError(w, id, ectx.Config, err)
		return
	}
	if err := ectx.Port.Register(sock); err != nil {
		_ = windows.CloseHandle(sock)
		appendError(w, id, ectx.Config, err)
		return
	}

	conn.Socket = sock
	conn.Port = ectx.Port

	s.op.OperationRecord = OperationRecord{Entity: id, Socket: sock, State: OpConnecting}
	s.op.ResolvedAddress = &windows.SockaddrInet4{Port: int(s.RemotePort)}
	copy(s.op.ResolvedAddress.Addr[:], resolveIPv4(s.RemoteAddr))

	var bytesSent uint32
	err = callConnectEx(sock, s.op.ResolvedAddress, s.op.Buffer.Bytes(), &bytesSent, &s.op.Overlapped)
	if err != nil && !isPendingErr(err) {
		appendError(w, id, ectx.Config, err)
	}
}

// armSend submits a fresh WSASend on socket. Invariant: must not be called
// while s.op.State is already [OpSending].
func armSend(w *World, id EntityID, s *SendRecord, socket windows.Handle, ectx *engineContext) {
	if s.op.State == OpSending {
		panic("asynctcp: send already outstanding on this SendRecord")
	}

	s.op.OperationRecord = OperationRecord{Entity: id, Socket: socket, State: OpSending}

	bytes := s.op.Buffer.Bytes()
	var wsabuf windows.WSABuf
	if len(bytes) > 0 {
		wsabuf = windows.WSABuf{Len: uint32(len(bytes)), Buf: &bytes[0]}
	}
	err := windows.WSASend(socket, &wsabuf, 1, &s.op.BytesSent, 0, &s.op.Overlapped, nil)
	if err != nil && !isPendingErr(err) {
		appendError(w, id, ectx.Config, err)
	}
}

// resolveIPv4 parses a dotted-quad string into four address bytes. Hostname
// resolution is out of scope here; this only ever runs over already-addressed
// sockets, and DNS belongs to a caller.
func resolveIPv4(addr string) [4]byte {
	var out [4]byte
	var octet, idx int
	for i := 0; i <= len(addr); i++ {
		if i == len(addr) || addr[i] == '.' {
			if idx < 4 {
				out[idx] = byte(octet)
			}
			idx++
			octet = 0
			continue
		}
		c := addr[i]
		if c >= '0' && c <= '9' {
			octet = octet*10 + int(c-'0')
		}
	}
	return out
}

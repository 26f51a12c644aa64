//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import "golang.org/x/sys/windows"

// OperationState is the kind of I/O operation outstanding on an
// [OperationRecord].
type OperationState int

const (
	OpInvalid OperationState = iota
	OpAccepting
	OpReceiving
	OpConnecting
	OpSending
)

func (s OperationState) String() string {
	switch s {
	case OpAccepting:
		return "accepting"
	case OpReceiving:
		return "receiving"
	case OpConnecting:
		return "connecting"
	case OpSending:
		return "sending"
	default:
		return "invalid"
	}
}

// OperationRecord is the header of every outstanding I/O operation.
//
// Its memory must not move while an operation is outstanding: it is
// embedded inline in [AcceptReceiveOp]/[SendOp], which are in turn embedded
// inline in the owning [ListenRecord]/[ReceiveRecord]/[SendRecord], so the
// record's address is also the operation's address. [World] never
// relocates an attached record's backing allocation (each is a
// freshly-made *T handed to the kernel and kept for the lifetime of the
// attachment), which is what makes this safe.
//
// OperationRecord carries only weak identifiers back to its owner — never
// a raw pointer — so the ownership graph is never violated by the
// kernel's view of in-flight operations.
type OperationRecord struct {
	// Overlapped is the OS-opaque overlapped header, zero-initialized
	// before each use.
	Overlapped windows.Overlapped

	// Entity is the identifier of the owning entity.
	Entity EntityID

	// Socket is the raw socket this operation was submitted against.
	Socket windows.Handle

	// State is the kind of operation outstanding.
	State OperationState
}

// AcceptReceiveOp extends [OperationRecord] for accept and receive
// operations.
type AcceptReceiveOp struct {
	OperationRecord

	// ListenSocket is non-zero only for listener-spawned receives, i.e.
	// when this op is a [ListenRecord]'s inline accept operation.
	ListenSocket windows.Handle

	// AddressBuffer holds the OS-provided layout for accept-result address
	// tuples. Sized per Windows' AcceptEx contract: local and remote
	// sockaddr, each padded by 16 bytes, doubled to leave room for both.
	AddressBuffer [2 * (unsafeSockaddrMax + 16)]byte

	// BytesReceived is the kernel-reported transfer count for the
	// completion currently being processed.
	BytesReceived uint32

	// Buffer is the receive buffer descriptor handed to the kernel.
	Buffer ByteBuffer

	// SingleRead publishes [ReceiveComplete] after the first delivery and
	// does not restart the receive, regardless of whether the peer closed
	// gracefully. Lives only on the per-receive operation, not inherited
	// indefinitely from a listener.
	SingleRead bool
}

// unsafeSockaddrMax is large enough to hold a sockaddr_in6, the largest
// address structure AcceptEx's address buffer must accommodate.
const unsafeSockaddrMax = 28

// SendOp extends [OperationRecord] for send (and send-carrying connect)
// operations.
type SendOp struct {
	OperationRecord

	// ResolvedAddress is the remote address resolved for a pending
	// connect, released once the connect completes or fails.
	ResolvedAddress *windows.SockaddrInet4

	// Buffer is the outbound data descriptor handed to the kernel.
	Buffer ByteBuffer

	// BytesSent is the kernel-reported transfer count for the completion
	// currently being processed.
	BytesSent uint32
}

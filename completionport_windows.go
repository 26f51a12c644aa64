//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import "golang.org/x/sys/windows"

// completionKeyTCP is the single completion key this engine registers every
// socket under: associated sockets register under a single completion key
// denoting "TCP operation".
const completionKeyTCP uintptr = 1

// CompletionPort wraps the OS completion facility. Its lifetime is the
// process's: create one with [NewCompletionPort] during startup and
// [CompletionPort.Close] it on shutdown.
type CompletionPort struct {
	handle windows.Handle
}

// NewCompletionPort creates a new, unassociated I/O completion port.
func NewCompletionPort() (*CompletionPort, error) {
	if err := initExtensionFunctions(); err != nil {
		return nil, err
	}
	h, err := windows.CreateIoCompletionPort(windows.InvalidHandle, 0, 0, 0)
	if err != nil {
		return nil, err
	}
	return &CompletionPort{handle: h}, nil
}

// Register associates socket with the port under [completionKeyTCP].
func (p *CompletionPort) Register(socket windows.Handle) error {
	_, err := windows.CreateIoCompletionPort(socket, p.handle, completionKeyTCP, 0)
	return err
}

// Close releases the underlying handle. Pending operations on sockets that
// were registered with this port fail on their next completion; the pump
// classifies and discards completions for entities that no longer exist.
func (p *CompletionPort) Close() error {
	return windows.CloseHandle(p.handle)
}

// poll retrieves up to one completed operation with a zero timeout
// (drain-only, never blocks); the only syscall that could block is the
// completion wait, invoked here with a zero timeout.
//
// It returns ok=false when no completion is immediately available.
func (p *CompletionPort) poll() (bytes uint32, key uintptr, overlapped *windows.Overlapped, ok bool, err error) {
	err = windows.GetQueuedCompletionStatus(p.handle, &bytes, &key, &overlapped, 0)
	if err != nil {
		if err == windows.WAIT_TIMEOUT { //nolint:errorlint // GetQueuedCompletionStatus sentinel
			return 0, 0, nil, false, nil
		}
		// A non-nil overlapped with an error means the operation itself
		// failed (not the dequeue); still report it so the dispatcher can
		// classify the failure against the right entity.
		if overlapped != nil {
			return bytes, key, overlapped, true, err
		}
		return 0, 0, nil, false, err
	}
	return bytes, key, overlapped, true, nil
}

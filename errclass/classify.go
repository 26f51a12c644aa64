//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/rbmk-project/rbmk/blob/v0.17.0/pkg/common/errclass/errclass.go
//

// Package errclass classifies raw OS errors into short, stable labels
// suitable for structured logging and for the engine's Pending/Would-block/
// benign/entity-surfaced taxonomy.
package errclass

import (
	"context"
	"errors"
	"net"
	"os"
)

// Exported classification labels. These are the same short, uppercase,
// POSIX-style names regardless of the host OS, so log consumers never see
// WSA-prefixed strings on Windows and errno names on Unix for the same
// condition.
const (
	EGENERIC      = "EGENERIC"
	EADDRNOTAVAIL = "EADDRNOTAVAIL"
	EADDRINUSE    = "EADDRINUSE"
	ECONNABORTED  = "ECONNABORTED"
	ECONNREFUSED  = "ECONNREFUSED"
	ECONNRESET    = "ECONNRESET"
	EHOSTUNREACH  = "EHOSTUNREACH"
	EINVAL        = "EINVAL"
	EINTR         = "EINTR"
	ENETDOWN      = "ENETDOWN"
	ENETUNREACH   = "ENETUNREACH"
	ENOBUFS       = "ENOBUFS"
	ENOTCONN      = "ENOTCONN"
	ETIMEDOUT     = "ETIMEDOUT"
	EPENDING      = "EPENDING"
	EWOULDBLOCK   = "EWOULDBLOCK"
)

// New classifies err into one of this package's constant labels, or the
// empty string if err is nil.
//
// New always returns a non-empty label for a non-nil error: unrecognized
// errors classify as [EGENERIC]. This matches
// every entity-surfaced error carry a classification suitable for the
// Errors record and for structured logging.
func New(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return ETIMEDOUT
	}

	var errno Errno
	if errors.As(err, &errno) {
		switch errno {
		case errEADDRNOTAVAIL:
			return EADDRNOTAVAIL
		case errEADDRINUSE:
			return EADDRINUSE
		case errECONNABORTED:
			return ECONNABORTED
		case errECONNREFUSED:
			return ECONNREFUSED
		case errECONNRESET:
			return ECONNRESET
		case errEHOSTUNREACH:
			return EHOSTUNREACH
		case errEINVAL:
			return EINVAL
		case errEINTR:
			return EINTR
		case errENETDOWN:
			return ENETDOWN
		case errENETUNREACH:
			return ENETUNREACH
		case errENOBUFS:
			return ENOBUFS
		case errENOTCONN:
			return ENOTCONN
		case errETIMEDOUT:
			return ETIMEDOUT
		case errEPENDING:
			return EPENDING
		case errEWOULDBLOCK:
			return EWOULDBLOCK
		}
		return EGENERIC
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ETIMEDOUT
	}

	return EGENERIC
}

// IsPending reports whether err is the platform's "operation queued
// asynchronously" status, not an error.
func IsPending(err error) bool {
	return New(err) == EPENDING
}

// IsWouldBlock reports whether err is the platform's non-blocking-socket
// "try again" status, also not an error.
func IsWouldBlock(err error) bool {
	return New(err) == EWOULDBLOCK
}

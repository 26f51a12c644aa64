// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import "github.com/google/uuid"

// NewSpanID returns a UUIDv7 string correlating the log lines of one
// connection's lifetime (accept/connect through close).
//
// A span is a sequence of operations that can fail in a single, specific
// way — here, one [ConnectionRecord]'s lifetime. The span terminology is
// borrowed from OTel.
//
// This function panics if the system random number generator fails, which
// should only happen under extraordinary circumstances.
func NewSpanID() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return id.String()
}

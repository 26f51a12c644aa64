// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

// Markers are zero-byte records whose presence signals a state transition.
// A marker is added by the producing step and removed (consumed) by the
// first downstream step that reacts to it.
//
// Connected is added when a [ConnectionRecord]'s socket successfully
// completes an accept or a connect.
type Connected struct{}

// ReceiveComplete is added when a [ReceiveRecord] finishes accumulating
// data for the current receive cycle: the peer closed gracefully, the
// configured max-read-length was reached, or the record is single-read.
// Its payload is the data accumulated so far, for the consumer's
// convenience (the same bytes remain readable from the ReceiveRecord's
// buffer until the consumer clears it).
type ReceiveComplete struct {
	Data []byte
}

// SendComplete is added when a [SendRecord]'s outstanding send finishes.
type SendComplete struct{}

// ResponseSent is added when an HTTP [Response] has been fully serialized
// and its [SendComplete] observed.
type ResponseSent struct{}

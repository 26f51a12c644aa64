// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import "fmt"

// ByteBuffer is a manually-managed byte buffer with explicit capacity,
// length, and transfer-of-ownership semantics.
//
// Every I/O buffer handed to the completion port in this engine is a
// [ByteBuffer]. The zero value is an empty, unallocated buffer and is
// ready to use.
//
// Invariant: capacity >= length >= 0. Every allocation zero-initializes
// one extra trailing byte so that code treating the region as
// null-terminated stays safe; that extra byte is included in
// [ByteBuffer.Cap] but never counted in length.
type ByteBuffer struct {
	data   []byte
	length int
}

// Len returns the buffer's current length.
func (b *ByteBuffer) Len() int {
	return b.length
}

// Cap returns the buffer's current capacity.
func (b *ByteBuffer) Cap() int {
	return len(b.data)
}

// Bytes returns the buffer's contents as a slice aliasing the buffer's
// internal storage, valid until the next mutating call.
func (b *ByteBuffer) Bytes() []byte {
	return b.data[:b.length]
}

// Assign copies the bytes of value into the buffer. Capacity becomes at
// least len(value)+1 (for the trailing zero byte); the final length
// equals len(value).
func (b *ByteBuffer) Assign(value []byte) {
	b.Reserve(len(value))
	copy(b.data, value)
	b.length = len(value)
}

// AssignString is [ByteBuffer.Assign] for a string, without requiring the
// caller to convert it to []byte first.
func (b *ByteBuffer) AssignString(value string) {
	b.Assign([]byte(value))
}

// Reserve grows the buffer's capacity to at least newCapacity, preserving
// the first min(length, newCapacity) bytes and releasing the old region.
// If newCapacity <= current capacity, Reserve is a no-op.
func (b *ByteBuffer) Reserve(newCapacity int) {
	if newCapacity < 0 {
		panic("asynctcp: ByteBuffer.Reserve: negative capacity")
	}
	if newCapacity <= len(b.data) {
		return
	}
	next := make([]byte, newCapacity+1)
	n := b.length
	if n > newCapacity {
		n = newCapacity
	}
	copy(next, b.data[:n])
	b.data = next
	b.length = n
}

// SetLength grows the buffer (reserving if needed) and sets its length to
// n. When growing past the capacity, the new bytes are zero. Within the
// existing capacity, bytes beyond the previous length keep whatever they
// last held: they are zero only if nothing was written there since
// allocation (Reset or a shorter SetLength do not clear them).
func (b *ByteBuffer) SetLength(n int) {
	if n < 0 {
		panic("asynctcp: ByteBuffer.SetLength: negative length")
	}
	if n > len(b.data) {
		b.Reserve(n)
	}
	b.length = n
}

// Overwrite writes min(len(value), length-offset) bytes of value starting
// at offset and returns offset+bytes-written. It panics if the write would
// extend past the current length; grow with SetLength first.
func (b *ByteBuffer) Overwrite(offset int, value []byte) int {
	if offset < 0 || offset > b.length {
		panic(fmt.Sprintf("asynctcp: ByteBuffer.Overwrite: offset %d out of range [0,%d]", offset, b.length))
	}
	if offset+len(value) > b.length {
		panic(fmt.Sprintf("asynctcp: ByteBuffer.Overwrite: write of %d bytes at offset %d exceeds length %d",
			len(value), offset, b.length))
	}
	n := copy(b.data[offset:], value)
	return offset + n
}

// Append grows the buffer by len(value) and copies value to the end,
// returning the offset at which it was written. This is the common case
// used by the receive path, layered on top of SetLength+Overwrite.
func (b *ByteBuffer) Append(value []byte) int {
	offset := b.length
	b.SetLength(offset + len(value))
	b.Overwrite(offset, value)
	return offset
}

// Reset empties the buffer without releasing its backing storage, so a
// subsequent Assign/Append can reuse the allocation.
func (b *ByteBuffer) Reset() {
	b.length = 0
}

// Transfer moves ownership of src's region into dst. dst releases any
// prior region first; src becomes empty (no region, length 0, capacity
// 0). src must be non-empty.
func Transfer(src, dst *ByteBuffer) {
	if src.length == 0 && len(src.data) == 0 {
		panic("asynctcp: Transfer: source buffer is empty")
	}
	dst.data = src.data
	dst.length = src.length
	src.data = nil
	src.length = 0
}

// String returns a copy of the buffer's contents as a string.
func (b *ByteBuffer) String() string {
	return string(b.Bytes())
}

// Line is one line yielded by [ByteBuffer.Lines]: the bytes between CR-LF
// terminators (or the final unterminated segment).
type Line struct {
	// NextOffset is where scanning should resume for the following line.
	NextOffset int
	// Text is the line's content, excluding the CR-LF terminator.
	Text []byte
}

// Lines splits the buffer's content from startOffset on CR-LF boundaries.
// A lone CR not immediately followed by LF is treated as
// ordinary content (buffered, not a terminator). The final, unterminated
// segment is yielded with NextOffset equal to the buffer's length.
func (b *ByteBuffer) Lines(startOffset int) []Line {
	var lines []Line
	data := b.Bytes()
	start := startOffset
	for i := startOffset; i < len(data); i++ {
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			lines = append(lines, Line{NextOffset: i + 2, Text: data[start:i]})
			start = i + 2
		}
	}
	if start < len(data) {
		lines = append(lines, Line{NextOffset: len(data), Text: data[start:]})
	}
	return lines
}

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBufferAssign(t *testing.T) {
	var b ByteBuffer
	b.AssignString("hello")
	assert.Equal(t, 5, b.Len())
	assert.GreaterOrEqual(t, b.Cap(), 6)
	assert.Equal(t, "hello", b.String())
}

func TestByteBufferReserveGrows(t *testing.T) {
	var b ByteBuffer
	b.AssignString("ab")
	b.Reserve(100)
	assert.GreaterOrEqual(t, b.Cap(), 100)
	assert.Equal(t, "ab", b.String())

	// Reserve with a smaller capacity is a no-op.
	capBefore := b.Cap()
	b.Reserve(10)
	assert.Equal(t, capBefore, b.Cap())
}

func TestByteBufferSetLengthGrowsAndZeroes(t *testing.T) {
	var b ByteBuffer
	b.AssignString("hi")
	b.SetLength(5)
	assert.Equal(t, 5, b.Len())
	assert.Equal(t, []byte{'h', 'i', 0, 0, 0}, b.Bytes())
}

func TestByteBufferOverwrite(t *testing.T) {
	var b ByteBuffer
	b.SetLength(5)
	next := b.Overwrite(1, []byte("XY"))
	assert.Equal(t, 3, next)
	assert.Equal(t, []byte{0, 'X', 'Y', 0, 0}, b.Bytes())
}

func TestByteBufferOverwritePastLengthPanics(t *testing.T) {
	var b ByteBuffer
	b.SetLength(2)
	assert.Panics(t, func() {
		b.Overwrite(1, []byte("XYZ"))
	})
}

func TestByteBufferAppend(t *testing.T) {
	var b ByteBuffer
	b.AssignString("ab")
	offset := b.Append([]byte("cd"))
	assert.Equal(t, 2, offset)
	assert.Equal(t, "abcd", b.String())
}

func TestTransfer(t *testing.T) {
	var src, dst ByteBuffer
	src.AssignString("payload")
	dst.AssignString("stale")

	Transfer(&src, &dst)

	assert.Equal(t, "payload", dst.String())
	assert.Equal(t, 0, src.Len())
	assert.Equal(t, 0, src.Cap())
}

func TestTransferFromEmptyPanics(t *testing.T) {
	var src, dst ByteBuffer
	assert.Panics(t, func() {
		Transfer(&src, &dst)
	})
}

func TestByteBufferLines(t *testing.T) {
	var b ByteBuffer
	b.AssignString("GET / HTTP/1.0\r\nHost: x\r\n\r\nbody")

	lines := b.Lines(0)
	require.Len(t, lines, 4)
	assert.Equal(t, "GET / HTTP/1.0", string(lines[0].Text))
	assert.Equal(t, "Host: x", string(lines[1].Text))
	assert.Equal(t, "", string(lines[2].Text))
	assert.Equal(t, "body", string(lines[3].Text))
	assert.Equal(t, b.Len(), lines[3].NextOffset)
}

func TestByteBufferLinesLoneCRIsContent(t *testing.T) {
	var b ByteBuffer
	b.AssignString("a\rb\r\n")

	lines := b.Lines(0)
	require.Len(t, lines, 1)
	assert.Equal(t, "a\rb", string(lines[0].Text))
}

func TestByteBufferReset(t *testing.T) {
	var b ByteBuffer
	b.AssignString("hello")
	capBefore := b.Cap()
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, capBefore, b.Cap())
}

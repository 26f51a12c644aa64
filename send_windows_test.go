//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveIPv4(t *testing.T) {
	assert.Equal(t, [4]byte{127, 0, 0, 1}, resolveIPv4("127.0.0.1"))
	assert.Equal(t, [4]byte{10, 20, 30, 40}, resolveIPv4("10.20.30.40"))
	assert.Equal(t, [4]byte{0, 0, 0, 0}, resolveIPv4("0.0.0.0"))
}

func TestResolveIPv4TruncatesExtraOctets(t *testing.T) {
	assert.Equal(t, [4]byte{1, 2, 3, 4}, resolveIPv4("1.2.3.4.5"))
}

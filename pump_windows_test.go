//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"testing"

	"github.com/rlipsc/asynctcp/errclass"
	"github.com/stretchr/testify/assert"
)

func TestIsBenignReceiveError(t *testing.T) {
	assert.True(t, isBenignReceiveError(errclass.ECONNRESET))
	assert.True(t, isBenignReceiveError(errclass.ECONNABORTED))
	assert.True(t, isBenignReceiveError(errclass.ENOTCONN))
	assert.False(t, isBenignReceiveError(errclass.EGENERIC))
}

func TestSockaddrToIPPortNil(t *testing.T) {
	ip, port := sockaddrToIPPort(nil)
	assert.Empty(t, ip)
	assert.Zero(t, port)
}

//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import "fmt"

// LocalAddr and RemoteAddr format a [ConnectionRecord]'s endpoints without
// panicking on a record that hasn't connected yet (zero port, empty
// address strings).

// LocalAddr formats conn's local endpoint, or "" if conn is nil.
func LocalAddr(conn *ConnectionRecord) string {
	if conn == nil || conn.LocalAddr == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", conn.LocalAddr, conn.LocalPort)
}

// RemoteAddr formats conn's remote endpoint, or "" if conn is nil.
func RemoteAddr(conn *ConnectionRecord) string {
	if conn == nil || conn.RemoteAddr == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", conn.RemoteAddr, conn.RemotePort)
}

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedTime() time.Time {
	return time.Date(2026, time.July, 30, 12, 0, 0, 0, time.UTC)
}

func TestSerializeResponseAppliesDefaultHeaders(t *testing.T) {
	resp := &Response{Status: 200, Body: "hi"}
	var buf ByteBuffer
	SerializeResponse(resp, fixedTime(), &buf)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "HTTP/1.0 200 OK\r\n"))
	assert.Contains(t, out, "Content-Length: 2\r\n")
	assert.Contains(t, out, "Connection: keep-alive\r\n")
	assert.Contains(t, out, "Date: Thu, 30 Jul 2026 12:00:00 GMT\r\n")
	assert.True(t, strings.HasSuffix(out, "\r\n\r\nhi"))
}

func TestSerializeResponseEmptyBodyHasTrailingBlankLine(t *testing.T) {
	resp := &Response{Status: 404}
	var buf ByteBuffer
	SerializeResponse(resp, fixedTime(), &buf)

	assert.True(t, strings.HasSuffix(buf.String(), "\r\n\r\n"))
	assert.Contains(t, buf.String(), "Content-Length: 0\r\n")
}

func TestSerializeResponseHonorsExplicitHeaders(t *testing.T) {
	resp := &Response{Status: 200, Header: map[string]string{"connection": "close"}}
	var buf ByteBuffer
	SerializeResponse(resp, fixedTime(), &buf)

	assert.Contains(t, buf.String(), "Connection: close\r\n")
	assert.NotContains(t, buf.String(), "Connection: keep-alive")
}

func TestParseResponseRoundTrip(t *testing.T) {
	resp := &Response{Status: 301, Header: map[string]string{"location": "/a"}, Body: ""}
	var buf ByteBuffer
	SerializeResponse(resp, fixedTime(), &buf)

	parsed, err := ParseResponse(&buf)
	require.NoError(t, err)
	assert.Equal(t, 301, parsed.Status)
	assert.Equal(t, "/a", parsed.Header["location"])
}

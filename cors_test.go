// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCORS() CORSConfig {
	return CORSConfig{
		AllowOrigin:  "*",
		AllowMethods: "POST, OPTIONS",
		AllowHeaders: "*",
		ContentType:  "application/json",
	}
}

func TestPreflightResponse(t *testing.T) {
	resp := preflightResponse(testCORS())
	assert.Equal(t, 204, resp.Status)
	assert.Equal(t, "*", resp.Header["access-control-allow-origin"])
	assert.Equal(t, "POST, OPTIONS", resp.Header["access-control-allow-methods"])
	assert.Equal(t, "*", resp.Header["access-control-allow-headers"])
	assert.Equal(t, "application/json", resp.Header["content-type"])
}

func TestMergeCORSHeadersDoesNotOverwrite(t *testing.T) {
	resp := &Response{Header: map[string]string{"access-control-allow-origin": "https://set-already.example"}}
	mergeCORSHeaders(resp, testCORS())

	assert.Equal(t, "https://set-already.example", resp.Header["access-control-allow-origin"])
	assert.Equal(t, "POST, OPTIONS", resp.Header["access-control-allow-methods"])
}

func TestMergeCORSHeadersSkipsEmptyFields(t *testing.T) {
	resp := &Response{Header: map[string]string{}}
	mergeCORSHeaders(resp, CORSConfig{AllowOrigin: "*"})

	assert.Equal(t, "*", resp.Header["access-control-allow-origin"])
	_, hasMethods := resp.Header["access-control-allow-methods"]
	assert.False(t, hasMethods)
}

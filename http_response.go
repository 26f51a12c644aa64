// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"fmt"
	"net/textproto"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Response is a parsed or about-to-be-serialized HTTP response. Header
// values are single-valued, unlike [Request.Header].
type Response struct {
	Version string
	Header  map[string]string
	Status  int
	Body    string
}

// statusReasons covers the status codes this engine itself emits; anything
// else serializes with an empty reason phrase.
var statusReasons = map[int]string{
	200: "OK",
	204: "No Content",
	301: "Moved Permanently",
	404: "Not Found",
	500: "Internal Server Error",
}

func statusReason(code int) string {
	return statusReasons[code]
}

// ParseResponse parses an HTTP response out of buf, the mirror of
// [ParseRequest] for the client side of a connection (redirect tracking
// reads a received Response's status and Location header).
func ParseResponse(buf *ByteBuffer) (*Response, error) {
	lines := buf.Lines(0)
	if len(lines) == 0 {
		return nil, fmt.Errorf("asynctcp: empty response")
	}

	fields := strings.Fields(string(lines[0].Text))
	if len(fields) < 2 {
		return nil, fmt.Errorf("asynctcp: malformed status line %q", lines[0].Text)
	}
	status, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("asynctcp: malformed status code %q: %w", fields[1], err)
	}

	resp := &Response{
		Version: fields[0],
		Status:  status,
		Header:  make(map[string]string),
	}

	bodyStart := lines[0].NextOffset
	for _, line := range lines[1:] {
		bodyStart = line.NextOffset
		if len(line.Text) == 0 {
			break
		}
		name, value, ok := strings.Cut(string(line.Text), ":")
		if !ok {
			continue
		}
		resp.Header[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
	}
	resp.Body = string(buf.Bytes()[bodyStart:])
	return resp, nil
}

// SerializeResponse writes resp into buf as an HTTP/1.0 response. Missing
// Date/Content-Length/Connection headers are filled in from now before
// serializing; resp.Header is mutated in place.
func SerializeResponse(resp *Response, now time.Time, buf *ByteBuffer) {
	applyDefaultHeaders(resp, now)

	version := resp.Version
	if version == "" {
		version = "HTTP/1.0"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d %s\r\n", version, resp.Status, statusReason(resp.Status))

	names := make([]string, 0, len(resp.Header))
	for name := range resp.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "%s: %s\r\n", textproto.CanonicalMIMEHeaderKey(name), resp.Header[name])
	}
	sb.WriteString("\r\n")
	sb.WriteString(resp.Body)

	buf.AssignString(sb.String())
}

func applyDefaultHeaders(resp *Response, now time.Time) {
	if resp.Header == nil {
		resp.Header = make(map[string]string)
	}
	if _, ok := resp.Header["date"]; !ok {
		resp.Header["date"] = now.UTC().Format("Mon, 02 Jan 2006 15:04:05") + " GMT"
	}
	if _, ok := resp.Header["content-length"]; !ok {
		resp.Header["content-length"] = strconv.Itoa(len(resp.Body))
	}
	if _, ok := resp.Header["connection"]; !ok {
		resp.Header["connection"] = "keep-alive"
	}
}

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"fmt"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// Method classifies an HTTP request's method verb.
type Method int

const (
	MethodUnknown Method = iota
	MethodGet
	MethodHead
	MethodPost
	MethodPut
	MethodDelete
	MethodConnect
	MethodOptions
	MethodTrace
	MethodPatch
)

func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodHead:
		return "HEAD"
	case MethodPost:
		return "POST"
	case MethodPut:
		return "PUT"
	case MethodDelete:
		return "DELETE"
	case MethodConnect:
		return "CONNECT"
	case MethodOptions:
		return "OPTIONS"
	case MethodTrace:
		return "TRACE"
	case MethodPatch:
		return "PATCH"
	default:
		return "UNKNOWN"
	}
}

func parseMethod(s string) Method {
	switch strings.ToUpper(s) {
	case "GET":
		return MethodGet
	case "HEAD":
		return MethodHead
	case "POST":
		return MethodPost
	case "PUT":
		return MethodPut
	case "DELETE":
		return MethodDelete
	case "CONNECT":
		return MethodConnect
	case "OPTIONS":
		return MethodOptions
	case "TRACE":
		return MethodTrace
	case "PATCH":
		return MethodPatch
	default:
		return MethodUnknown
	}
}

// Request is a parsed HTTP request.
type Request struct {
	// Method classifies RawMethod; MethodUnknown for anything nonstandard.
	// Unknown methods are still preserved verbatim in RawMethod.
	Method    Method
	RawMethod string

	Version string
	URL     string

	// Header maps lowercased header names to their comma-split values.
	Header map[string][]string

	Body string
}

// ParseRequest parses an HTTP request out of buf. It stops header
// scanning at the first blank line (break, not continue).
func ParseRequest(buf *ByteBuffer) (*Request, error) {
	lines := buf.Lines(0)
	if len(lines) == 0 {
		return nil, fmt.Errorf("asynctcp: empty request")
	}

	fields := strings.Fields(string(lines[0].Text))
	if len(fields) < 2 {
		return nil, fmt.Errorf("asynctcp: malformed request line %q", lines[0].Text)
	}

	req := &Request{
		RawMethod: fields[0],
		Method:    parseMethod(fields[0]),
		URL:       fields[1],
		Version:   "HTTP/1.0",
		Header:    make(map[string][]string),
	}
	if len(fields) >= 3 {
		req.Version = fields[2]
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
		name = strings.ToLower(strings.TrimSpace(name))
		for _, v := range strings.Split(value, ",") {
			v = strings.TrimSpace(v)
			if !httpguts.ValidHeaderFieldValue(v) {
				continue
			}
			req.Header[name] = append(req.Header[name], v)
		}
	}
	req.Body = string(buf.Bytes()[bodyStart:])
	return req, nil
}

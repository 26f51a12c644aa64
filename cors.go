// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

// CORSConfig is the fixed CORS header set applied to OPTIONS preflight
// responses and merged into other responses.
type CORSConfig struct {
	AllowOrigin  string
	AllowMethods string
	AllowHeaders string
	ContentType  string
}

// ProcessHttp marks an entity as HTTP-handled and carries its CORS
// configuration.
type ProcessHttp struct {
	CORS CORSConfig
}

func (c CORSConfig) headers() map[string]string {
	return map[string]string{
		"access-control-allow-origin":  c.AllowOrigin,
		"access-control-allow-methods": c.AllowMethods,
		"access-control-allow-headers": c.AllowHeaders,
		"content-type":                 c.ContentType,
	}
}

// preflightResponse builds the 204 response an OPTIONS request receives,
// leaving the receive buffer empty.
func preflightResponse(cors CORSConfig) *Response {
	resp := &Response{Status: 204, Header: make(map[string]string)}
	mergeCORSHeaders(resp, cors)
	return resp
}

// mergeCORSHeaders adds cors's non-empty headers to resp wherever resp does
// not already set them.
func mergeCORSHeaders(resp *Response, cors CORSConfig) {
	if resp.Header == nil {
		resp.Header = make(map[string]string)
	}
	for name, value := range cors.headers() {
		if value == "" {
			continue
		}
		if _, ok := resp.Header[name]; !ok {
			resp.Header[name] = value
		}
	}
}

//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import "context"

// runHTTPLifecycle advances the accept→request→response→sent→redirect
// state machine for every entity that has accumulated HTTP-relevant
// markers since the pump last ran.
func runHTTPLifecycle(ctx context.Context, w *World, cfg *Config) {
	parseReceivedHTTP(w, cfg)
	answerPreflight(w, cfg)
	routeRequests(ctx, w, cfg)
	mergeResponseCORS(w)
	sendResponses(w, cfg)
	finishSentResponses(w, cfg)
	classifyRedirects(ctx, w, cfg)
}

// parseReceivedHTTP decides which shape to parse a completed receive into:
// a [Response] for redirect-tracking client entities ([Redirecting]
// attached), a [Request] for server-side entities ([ProcessHttp] attached).
func parseReceivedHTTP(w *World, cfg *Config) {
	var ids []EntityID
	ForEach[ReceiveComplete](w, func(id EntityID, _ *ReceiveComplete) { ids = append(ids, id) })

	for _, id := range ids {
		rc, ok := Get[ReceiveComplete](w, id)
		if !ok {
			continue
		}

		switch {
		case Has[Redirecting](w, id):
			if len(rc.Data) > 0 {
				var buf ByteBuffer
				buf.Assign(rc.Data)
				if resp, err := ParseResponse(&buf); err != nil {
					appendError(w, id, cfg, err)
				} else {
					Add(w, id, *resp)
				}
			}
		case Has[ProcessHttp](w, id) && len(rc.Data) >= 16:
			var buf ByteBuffer
			buf.Assign(rc.Data)
			if req, err := ParseRequest(&buf); err != nil {
				appendError(w, id, cfg, err)
			} else {
				Add(w, id, *req)
			}
		default:
			continue
		}

		Remove[ReceiveComplete](w, id)
		if recv, ok := Get[ReceiveRecord](w, id); ok {
			recv.Data.Reset()
		}
	}
}

// routeRequests matches a [Request] on an entity that also carries a
// [RouteEntity] against its patterns and applies the selected templates.
func routeRequests(ctx context.Context, w *World, cfg *Config) {
	var ids []EntityID
	ForEach[Request](w, func(id EntityID, _ *Request) { ids = append(ids, id) })

	for _, id := range ids {
		route, ok := Get[RouteEntity](w, id)
		if !ok {
			continue
		}
		req, ok := Get[Request](w, id)
		if !ok {
			continue
		}
		templates, matched := MatchRoute(route, req.URL)
		if !matched && len(templates) == 0 {
			Add(w, id, Response{Status: 404})
			continue
		}
		applyTemplates(ctx, templates, w, id, cfg)
	}
}

// answerPreflight handles CORS preflight: an OPTIONS request on a
// [ProcessHttp] entity short-circuits straight to a 204 response instead of
// falling through to routing's 404 default. It must run before
// [routeRequests] so routing never sees the OPTIONS request.
func answerPreflight(w *World, cfg *Config) {
	var ids []EntityID
	ForEach[Request](w, func(id EntityID, _ *Request) { ids = append(ids, id) })

	for _, id := range ids {
		proc, ok := Get[ProcessHttp](w, id)
		if !ok {
			continue
		}
		req, ok := Get[Request](w, id)
		if !ok || req.Method != MethodOptions {
			continue
		}
		Add(w, id, *preflightResponse(proc.CORS))
		Remove[Request](w, id)
	}
}

// mergeResponseCORS merges CORS headers into every Response on a
// [ProcessHttp] entity that does not already set them. This covers both the
// preflight response (already fully set, so this is a no-op for it) and
// routed/default responses.
func mergeResponseCORS(w *World) {
	ForEach[Response](w, func(id EntityID, resp *Response) {
		if proc, ok := Get[ProcessHttp](w, id); ok {
			mergeCORSHeaders(resp, proc.CORS)
		}
	})
}

// sendResponses serializes each Response once and hands the buffer to a
// [SendRecord], skipping entities this
// tick already queued (a [SendRecord] is already outstanding) and client
// entities tracking redirects (handled by [classifyRedirects] instead).
func sendResponses(w *World, cfg *Config) {
	var ids []EntityID
	ForEach[Response](w, func(id EntityID, _ *Response) { ids = append(ids, id) })

	for _, id := range ids {
		if Has[Redirecting](w, id) {
			continue
		}
		if Has[SendRecord](w, id) {
			continue
		}
		resp, ok := Get[Response](w, id)
		if !ok {
			continue
		}
		var buf ByteBuffer
		SerializeResponse(resp, cfg.TimeNow(), &buf)
		Add(w, id, SendRecord{Data: buf})
		cfg.Logger.Info("http round trip", "entity", id, "status", resp.Status)
	}
}

// finishSentResponses marks a Response done once its send completes,
// clearing the records that drove it.
func finishSentResponses(w *World, cfg *Config) {
	var ids []EntityID
	ForEach[SendComplete](w, func(id EntityID, _ *SendComplete) { ids = append(ids, id) })

	for _, id := range ids {
		if !Has[Response](w, id) {
			continue
		}
		Add(w, id, ResponseSent{})
		Remove[Response](w, id)
		Remove[SendRecord](w, id)
		Remove[SendComplete](w, id)
	}
}

// classifyRedirects classifies a received 301 Response's Location header
// against a tracked entity's accumulated redirect chain.
func classifyRedirects(ctx context.Context, w *World, cfg *Config) {
	var ids []EntityID
	ForEach[Response](w, func(id EntityID, _ *Response) { ids = append(ids, id) })

	for _, id := range ids {
		red, ok := Get[Redirecting](w, id)
		if !ok {
			continue
		}
		resp, ok := Get[Response](w, id)
		if !ok || resp.Status != 301 {
			continue
		}
		location := resp.Header["location"]
		class := ClassifyRedirect(red, location)
		Add(w, id, class)
		red.Accumulated = append(red.Accumulated, location)
		if class.State == RedirectOK && len(red.OnRedirect) > 0 {
			applyTemplates(ctx, red.OnRedirect, w, id, cfg)
		}
		Remove[Response](w, id)
	}
}

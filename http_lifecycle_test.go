//go:build windows

// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteRequestsAppliesMatchedTemplates(t *testing.T) {
	w := NewWorld()
	id := w.NewEntity()

	var hit bool
	Add(w, id, Request{URL: "/ping"})
	Add(w, id, RouteEntity{
		Patterns: []RoutePattern{
			{Path: "/ping", OnMatch: []Template{TemplateFunc(func(w *World, id EntityID) { hit = true })}},
		},
	})

	routeRequests(context.Background(), w, NewConfig())

	assert.True(t, hit)
	_, has404 := Get[Response](w, id)
	assert.False(t, has404)
}

func TestRouteRequestsNoMatchAttaches404(t *testing.T) {
	w := NewWorld()
	id := w.NewEntity()

	Add(w, id, Request{URL: "/missing"})
	Add(w, id, RouteEntity{Patterns: []RoutePattern{{Path: "/ping"}}})

	routeRequests(context.Background(), w, NewConfig())

	resp, ok := Get[Response](w, id)
	require.True(t, ok)
	assert.Equal(t, 404, resp.Status)
}

func TestRouteRequestsMatchedWithEmptyOnMatchIsNoOp(t *testing.T) {
	w := NewWorld()
	id := w.NewEntity()

	Add(w, id, Request{URL: "/ping"})
	Add(w, id, RouteEntity{Patterns: []RoutePattern{{Path: "/ping"}}})

	routeRequests(context.Background(), w, NewConfig())

	_, ok := Get[Response](w, id)
	assert.False(t, ok, "a matched pattern with no OnMatch templates must not be treated as unmatched")
}

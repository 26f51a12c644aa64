// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRouteFirstMatchWins(t *testing.T) {
	var hit string
	route := &RouteEntity{
		Patterns: []RoutePattern{
			{Path: "/health", OnMatch: []Template{TemplateFunc(func(w *World, id EntityID) { hit = "health" })}},
			{Path: "/health", OnMatch: []Template{TemplateFunc(func(w *World, id EntityID) { hit = "second-health" })}},
		},
	}

	matched, ok := MatchRoute(route, "/HEALTH")
	assert.True(t, ok)
	assert.Len(t, matched, 1)
	_, _ = matched[0].Call(context.Background(), TemplateInput{})
	assert.Equal(t, "health", hit)
}

func TestMatchRouteFallsBackToOtherwise(t *testing.T) {
	route := &RouteEntity{
		Patterns:  []RoutePattern{{Path: "/health"}},
		Otherwise: []Template{TemplateFunc(func(w *World, id EntityID) {})},
	}

	matched, ok := MatchRoute(route, "/missing")
	assert.False(t, ok)
	assert.Len(t, matched, 1)
}

func TestMatchRouteNoOtherwiseReturnsEmpty(t *testing.T) {
	route := &RouteEntity{Patterns: []RoutePattern{{Path: "/health"}}}
	matched, ok := MatchRoute(route, "/missing")
	assert.False(t, ok)
	assert.Empty(t, matched)
}

func TestMatchRouteMatchedWithEmptyOnMatch(t *testing.T) {
	route := &RouteEntity{Patterns: []RoutePattern{{Path: "/ping"}}}
	matched, ok := MatchRoute(route, "/ping")
	assert.True(t, ok)
	assert.Empty(t, matched)
}

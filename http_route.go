// SPDX-License-Identifier: GPL-3.0-or-later

package asynctcp

import "strings"

// RoutePattern pairs a URL pattern with the templates applied on match.
type RoutePattern struct {
	Path    string
	OnMatch []Template
}

// RouteEntity routes a parsed [Request]'s URL to per-pattern templates, or
// to Otherwise if none match.
type RouteEntity struct {
	Patterns  []RoutePattern
	Otherwise []Template
}

// MatchRoute scans r's patterns in order and returns the first
// case-insensitive URL match's templates and true, or r.Otherwise and false
// if none match. The matched bool distinguishes a pattern that legitimately
// matches with an empty OnMatch list (do nothing) from no match at all (fall
// back to Otherwise).
func MatchRoute(r *RouteEntity, url string) ([]Template, bool) {
	for _, p := range r.Patterns {
		if strings.EqualFold(p.Path, url) {
			return p.OnMatch, true
		}
	}
	return r.Otherwise, false
}

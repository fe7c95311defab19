// Package pages holds the static registry of site pages and the path
// resolution used by the client router.
package pages

import (
	"strings"
)

// Page identifies one page of the site.
type Page string

const (
	Home            Page = "Home"
	Properties      Page = "Properties"
	PropertyDetails Page = "PropertyDetails"
	Apply           Page = "Apply"
	Dashboard       Page = "Dashboard"
)

// registry is the fixed, ordered set of site pages. The first entry is the
// fallback for paths that match nothing.
var registry = []Page{Home, Properties, PropertyDetails, Apply, Dashboard}

// All returns the registered pages in declaration order.
func All() []Page {
	out := make([]Page, len(registry))
	copy(out, registry)
	return out
}

// URL returns the canonical path for the page.
func (p Page) URL() string {
	return "/" + string(p)
}

// Resolve matches the last segment of a URL path case-insensitively against
// the registry, ignoring a trailing slash and any query string. Unknown or
// empty paths resolve to the home page.
func Resolve(path string) Page {
	path = strings.TrimSuffix(path, "/")

	last := path
	if idx := strings.LastIndex(last, "/"); idx >= 0 {
		last = last[idx+1:]
	}
	if idx := strings.Index(last, "?"); idx >= 0 {
		last = last[:idx]
	}

	for _, p := range registry {
		if strings.EqualFold(last, string(p)) {
			return p
		}
	}
	return registry[0]
}

package nav

import (
	"net/url"
	"strings"
)

// NormalizePath canonicalizes a path for comparison.
// Empty input becomes "/" and the trailing slash is removed from non-root paths.
// Query strings and fragments are kept.
//
// A run of trailing slashes is removed as a whole, not just the last one,
// so normalizing twice gives the same result as normalizing once and
// "/a/" and "/a//" compare equal.
func NormalizePath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if trimmed := strings.TrimRight(p, "/"); trimmed != "" {
		return trimmed
	}
	return "/"
}

// ResolvePath extracts the comparable path of an item's target.
// It returns false when the item has no navigable path: no target,
// a malformed absolute URL, or a named route that needs a router to resolve.
func ResolvePath(item *Item) (string, bool) {
	if item == nil {
		return "", false
	}

	if item.Href != "" {
		if isAbsoluteURL(item.Href) {
			u, err := url.Parse(item.Href)
			if err != nil {
				return "", false
			}
			if p := u.EscapedPath(); p != "" {
				return p, true
			}
			return "/", true
		}
		return item.Href, true
	}

	if item.To != nil && item.To.Path != "" {
		return item.To.Path, true
	}

	return "", false
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

package routetree

import (
	"slices"
	"strings"
)

const (
	// DefaultMarker is the file name that marks an endpoint directory.
	DefaultMarker = "route.ts"

	// DefaultPrefix is prepended to every endpoint path.
	DefaultPrefix = "/api"
)

// IsMarkerFile reports whether name is one of the marker file names.
// The comparison is exact, including case.
func IsMarkerFile(name string, markers []string) bool {
	return name != "" && slices.Contains(markers, name)
}

// NormalizeSeparators replaces every backslash with a forward slash.
func NormalizeSeparators(s string) string {
	return strings.ReplaceAll(s, "\\", "/")
}

// JoinURL joins parts with "/" into an absolute URL path.
//
// Backslashes are treated as separators, runs of slashes collapse to one and
// a trailing slash is dropped:
//
//	JoinURL("/api", "users", "[id]")  → "/api/users/[id]"
//	JoinURL("/api/", "/users/")       → "/api/users"
//	JoinURL("", "")                   → "/"
func JoinURL(parts ...string) string {
	joined := NormalizeSeparators("/" + strings.Join(parts, "/"))

	var b strings.Builder
	b.Grow(len(joined))
	for i := 0; i < len(joined); i++ {
		if joined[i] == '/' && b.Len() > 0 && joined[i-1] == '/' {
			continue
		}
		b.WriteByte(joined[i])
	}

	path := b.String()
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

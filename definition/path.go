package definition

import (
	"strings"
)

const apiSegment = "api"

// NormalizePath strips the conventional "api" and version prefixes from an
// API path and returns it with a single leading slash. Empty segments are
// dropped, so "//api//v1//users" normalizes to "/users". A path with no
// remaining segments normalizes to "/".
func NormalizePath(path string) string {
	segments := Segments(path)
	if len(segments) > 0 && segments[0] == apiSegment {
		segments = segments[1:]
	}
	if len(segments) > 0 && IsVersionSegment(segments[0]) {
		segments = segments[1:]
	}
	return "/" + strings.Join(segments, "/")
}

// RootPath returns "/" followed by the first segment of path, or "/" for a
// path without segments. It does not normalize; callers pass a normalized
// path.
func RootPath(path string) string {
	segments := Segments(path)
	if len(segments) == 0 {
		return "/"
	}
	return "/" + segments[0]
}

// Segments splits path on "/" and drops empty segments.
func Segments(path string) []string {
	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// IsVersionSegment reports whether seg is "v" followed by one or more ASCII
// digits, e.g. "v1" or "v23". "v", "v1beta" and "v1a" are not versions.
func IsVersionSegment(seg string) bool {
	if len(seg) < 2 || seg[0] != 'v' {
		return false
	}
	for i := 1; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return false
		}
	}
	return true
}

// HasPathPrefix reports whether path equals prefix or lies beneath it, using
// segment boundaries: "/users/1" is under "/users", "/usersettings" is not.
func HasPathPrefix(path, prefix string) bool {
	if prefix == "/" || prefix == "" {
		return true
	}
	prefix = strings.TrimSuffix(prefix, "/")
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

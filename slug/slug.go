// Package slug maps directory names to URL-safe path segments and back.
package slug

import (
	"strings"
)

// Slugify trims the name, lower-cases it and replaces whitespace runs with "-".
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// Named is anything with a display name, such as a directory handle.
type Named interface {
	Name() string
}

// Match returns the first candidate whose slugified name equals slug.
// Sibling names that collide on the same slug resolve to the earliest one.
func Match[T Named](candidates []T, slug string) (T, bool) {
	for _, candidate := range candidates {
		if Slugify(candidate.Name()) == slug {
			return candidate, true
		}
	}

	var zero T
	return zero, false
}

// Split turns a slash separated path into its segments, dropping empty ones.
func Split(path string) []string {
	segments := make([]string, 0)
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// Join builds the absolute path of a segment sequence; no segments is "/".
func Join(segments []string) string {
	return "/" + strings.Join(segments, "/")
}

// Link builds the path of a child directory below the given segments.
func Link(segments []string, childName string) string {
	return Join(append(segments[:len(segments):len(segments)], Slugify(childName)))
}

// Package path implements the address scheme for the navigation tree: every
// page and every widget value is reachable through a normalized slash path.
package path

import "strings"

// Root is the normalized address of the tree root.
const Root = "/"

// Normalize canonicalizes a path: a leading slash is added when missing and
// trailing slashes are stripped for everything except the root itself.
// Normalize is idempotent.
func Normalize(p string) string {
	if !strings.HasPrefix(p, Root) {
		p = Root + p
	}
	if p != Root {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		p = Root
	}
	return p
}

// SplitLabel separates a compound widget label into its parent page path and
// the leaf name. "Person/Name" yields ("/Person", "Name"); a bare "Name"
// belongs to the root. Labels with no non-empty segment yield an empty leaf,
// which callers treat as invalid.
func SplitLabel(label string) (parent, leaf string) {
	if !strings.HasPrefix(label, Root) {
		label = Root + label
	}
	segments := Segments(label)
	switch len(segments) {
	case 0:
		return Root, ""
	case 1:
		return Root, segments[0]
	default:
		return Root + strings.Join(segments[:len(segments)-1], "/"), segments[len(segments)-1]
	}
}

// FullKey derives the canonical value-store key for a widget. Keys directly
// under the root are "/X", never "//X". Both declaration and render-time
// lookup must go through this single function.
func FullKey(parent, leaf string) string {
	parent = Normalize(parent)
	if parent == Root {
		return Root + leaf
	}
	return parent + "/" + leaf
}

// Segments returns the non-empty slash-separated components of a path. The
// root has none.
func Segments(p string) []string {
	parts := strings.Split(p, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// Base returns the leaf component of a normalized path, or "" for the root.
func Base(p string) string {
	p = Normalize(p)
	if p == Root {
		return ""
	}
	return p[strings.LastIndex(p, "/")+1:]
}

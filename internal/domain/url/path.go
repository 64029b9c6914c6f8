package url

import "strings"

// EnsureSlashSentinel wraps path in leading and trailing slashes so that
// directory comparisons can work on whole labels. Interior slashes are
// left untouched.
func EnsureSlashSentinel(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}

// PathAncestralDepth returns how many directory labels descendant has
// below ancestor. It returns false when ancestor is not an ancestor of (or
// equal to) descendant. Labels are compared exactly, so "/a/" is not an
// ancestor of "/alpha/".
func PathAncestralDepth(ancestor, descendant string) (int, bool) {
	ancestor = EnsureSlashSentinel(ancestor)
	descendant = EnsureSlashSentinel(descendant)

	if ancestor == descendant {
		return 0, true
	}
	if len(ancestor) >= len(descendant) || !strings.HasPrefix(descendant, ancestor) {
		return 0, false
	}

	// The remainder is "label/label/.../", one slash per extra label.
	return strings.Count(descendant[len(ancestor):], "/"), true
}

// isDirectoryPath reports whether a raw URL path names a directory rather
// than a file. The root and any path ending in "/" are directories.
func isDirectoryPath(path string) bool {
	return path == "" || strings.HasSuffix(path, "/")
}

// Package pathutil provides canonicalization and ordering for
// slash-separated archive paths.
package pathutil

import (
	"path"
	"strings"
)

// Normalize converts a host path to its canonical archive form.
//
// It performs the following transformations:
//   - Converts backslash separators to forward slashes
//   - Strips a drive/volume prefix: "C:\x\y" → "x/y"
//   - Collapses "." and ".." segments and consecutive slashes
//   - Strips leading slashes and leading ".." escapes
//   - Converts empty or fully-collapsed input to "."
//
// The result is identical whether produced on a POSIX or non-POSIX host.
func Normalize(p string) string {
	if len(p) >= 2 && p[1] == ':' && isDriveLetter(p[0]) {
		p = p[2:]
	}
	p = path.Clean(strings.ReplaceAll(p, `\`, "/"))
	for strings.HasPrefix(p, "../") {
		p = p[len("../"):]
	}
	p = strings.TrimPrefix(p, "/")
	if p == "" || p == "." || p == ".." {
		return "."
	}
	return p
}

// Base returns the last element of a slash-separated path.
// If path is empty or ".", it returns ".".
func Base(p string) string {
	if p == "" || p == "." {
		return "."
	}
	p = strings.TrimSuffix(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// Join joins a mount prefix and a relative path, treating "" and "." as
// the archive root.
func Join(prefix, rel string) string {
	if prefix == "" || prefix == "." {
		return rel
	}
	if rel == "" || rel == "." {
		return prefix
	}
	return prefix + "/" + rel
}

// Compare orders archive names case-insensitively, breaking ties with a
// byte-wise comparison so the order is total and deterministic across
// case-sensitive and case-insensitive filesystems.
func Compare(a, b string) int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return strings.Compare(la, lb)
	}
	return strings.Compare(a, b)
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

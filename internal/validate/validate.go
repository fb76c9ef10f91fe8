// Package validate holds the input validators that guard the signing
// pipeline. Every validator is pure and total: it never panics and always
// returns a verdict, so callers can fail fast without error plumbing.
package validate

import (
	"regexp"
	"strings"
)

const (
	maxResourceIDLen = 500
	maxObjectIDLen   = 100
)

// objectIDRegex matches the exact shape produced by the key deriver:
// a lowercase UUID followed by a dot and a short alphanumeric extension.
// This is a strict allow-list; the value is later concatenated into a
// storage key with no further sanitization.
var objectIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.[a-z0-9]{1,16}$`)

// ResourceID reports whether s is safe to embed in a storage key.
// It rejects empty and over-long values, path traversal sequences,
// path separators, and ASCII control characters.
func ResourceID(s string) bool {
	if s == "" || len(s) > maxResourceIDLen {
		return false
	}
	if strings.Contains(s, "..") {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '/', c == '\\':
			return false
		case c < 0x20:
			return false
		}
	}
	return true
}

// Extension returns the lowercase extension of filename (without the dot).
// The second return value is false when the filename has no extension or
// ends in a bare dot.
func Extension(filename string) (string, bool) {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 || idx == len(filename)-1 {
		return "", false
	}
	return strings.ToLower(filename[idx+1:]), true
}

// ObjectID reports whether s matches the token-dot-extension shape produced
// by the key deriver. Anything else is rejected outright.
func ObjectID(s string) bool {
	if len(s) > maxObjectIDLen {
		return false
	}
	return objectIDRegex.MatchString(s)
}

// ExtensionSet is a closed set of permitted file extensions.
// A nil or empty set permits everything.
type ExtensionSet map[string]struct{}

// NewExtensionSet builds an ExtensionSet from a list of extensions.
// Entries are lowercased and stripped of a leading dot.
func NewExtensionSet(exts []string) ExtensionSet {
	if len(exts) == 0 {
		return nil
	}
	set := make(ExtensionSet, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			set[e] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// Allows reports whether ext is permitted by the set.
// An empty set permits everything.
func (s ExtensionSet) Allows(ext string) bool {
	if len(s) == 0 {
		return true
	}
	return s.Contains(ext)
}

// Contains reports strict membership. Unlike Allows, an empty set contains
// nothing; use this when the set selects behavior rather than permits it.
func (s ExtensionSet) Contains(ext string) bool {
	_, ok := s[strings.ToLower(ext)]
	return ok
}

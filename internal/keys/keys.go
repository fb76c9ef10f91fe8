// Package keys derives storage keys and response-safe filenames.
//
// Key derivation is a pure string composition so the download path can
// recompute a key from a client-supplied object id without a lookup table.
// Reconstruct must only ever be called after validate.ObjectID has passed;
// that invariant is what keeps the download path from becoming a
// generalized key-construction oracle.
package keys

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// unsafeFilenameRegex matches characters outside the conservative allow-list
// for Content-Disposition filenames. The original filename is echoed into a
// response header, so everything else is substituted.
var unsafeFilenameRegex = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// NewObjectID generates a fresh object identifier: a random UUID token plus
// the lowercase extension, e.g. "3f1c...-....-....pdf". The 128-bit token
// keeps collision probability negligible at any realistic object count.
func NewObjectID(ext string) string {
	return uuid.NewString() + "." + strings.ToLower(ext)
}

// Derive composes the fully-qualified storage key for a new object.
// Format: {prefix}{resourceID}/{objectID}.
func Derive(prefix, resourceID, objectID string) string {
	return prefix + resourceID + "/" + objectID
}

// Reconstruct recomputes the storage key for a client-supplied object id on
// the download path. It is the same composition as Derive; callers must
// validate the object id shape first.
func Reconstruct(prefix, resourceID, objectID string) string {
	return Derive(prefix, resourceID, objectID)
}

// DispositionFilename sanitizes a caller-supplied filename for use in a
// Content-Disposition header. Characters outside [A-Za-z0-9._-] are replaced
// with underscores; an empty result falls back to "file".
func DispositionFilename(name string) string {
	safe := unsafeFilenameRegex.ReplaceAllString(name, "_")
	safe = strings.Trim(safe, ".")
	if safe == "" {
		return "file"
	}
	return safe
}

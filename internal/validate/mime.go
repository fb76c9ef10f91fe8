package validate

import "strings"

// extensionTypes maps known extensions to their canonical set of acceptable
// MIME types. The first entry is the canonical type used for inline
// rendering overrides. Extensions absent from this table are permitted with
// any declared type: closed-world validation degrades to open-world for
// unknown formats so legitimate uncommon types are not blocked. This is a
// deliberate trade-off, not a bug; see the package docs.
var extensionTypes = map[string][]string{
	// Images
	"jpg":  {"image/jpeg"},
	"jpeg": {"image/jpeg"},
	"png":  {"image/png"},
	"gif":  {"image/gif"},
	"webp": {"image/webp"},
	"svg":  {"image/svg+xml"},
	"bmp":  {"image/bmp"},
	"tiff": {"image/tiff"},
	"ico":  {"image/x-icon", "image/vnd.microsoft.icon"},
	"heic": {"image/heic"},
	"avif": {"image/avif"},

	// Audio
	"mp3":  {"audio/mpeg", "audio/mp3"},
	"wav":  {"audio/wav", "audio/x-wav", "audio/wave"},
	"ogg":  {"audio/ogg", "video/ogg", "application/ogg"},
	"m4a":  {"audio/mp4", "audio/x-m4a"},
	"aac":  {"audio/aac"},
	"flac": {"audio/flac", "audio/x-flac"},

	// Video
	"mp4":  {"video/mp4"},
	"webm": {"video/webm", "audio/webm"},
	"mov":  {"video/quicktime"},
	"avi":  {"video/x-msvideo"},
	"mkv":  {"video/x-matroska"},

	// Documents
	"pdf":  {"application/pdf"},
	"txt":  {"text/plain"},
	"csv":  {"text/csv", "text/plain", "application/csv"},
	"md":   {"text/markdown", "text/plain"},
	"rtf":  {"application/rtf", "text/rtf"},
	"doc":  {"application/msword"},
	"docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	"xls":  {"application/vnd.ms-excel"},
	"xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	"ppt":  {"application/vnd.ms-powerpoint"},
	"pptx": {"application/vnd.openxmlformats-officedocument.presentationml.presentation"},

	// Data
	"json": {"application/json", "text/json"},
	"xml":  {"application/xml", "text/xml"},

	// Archives
	"zip": {"application/zip", "application/x-zip-compressed"},
	"gz":  {"application/gzip", "application/x-gzip"},
	"tar": {"application/x-tar"},
	"7z":  {"application/x-7z-compressed"},
	"rar": {"application/x-rar-compressed", "application/vnd.rar"},
}

// ContentType reports whether the declared MIME type is acceptable for the
// given extension. Declared types are normalized (parameters such as
// "; charset=utf-8" stripped, lowercased) before comparison. This defends
// against MIME spoofing, e.g. declaring text/html for a .txt upload.
func ContentType(ext, declared string) bool {
	accepted, ok := extensionTypes[strings.ToLower(ext)]
	if !ok {
		return true
	}
	declared = normalizeMIME(declared)
	for _, t := range accepted {
		if declared == t {
			return true
		}
	}
	return false
}

// CanonicalType returns the canonical MIME type for a known extension.
// The second return value is false when the extension is not in the table.
func CanonicalType(ext string) (string, bool) {
	accepted, ok := extensionTypes[strings.ToLower(ext)]
	if !ok {
		return "", false
	}
	return accepted[0], true
}

// normalizeMIME extracts the base MIME type, removing parameters like
// charset. Returns the lowercase MIME type.
func normalizeMIME(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.TrimSpace(strings.ToLower(mimeType))
}

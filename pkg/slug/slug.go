package slug

import (
	"strings"
	"unicode"
)

// MaxLength is the longest slug Generate returns
const MaxLength = 50

// Fallback is returned when the input has no usable characters
const Fallback = "default"

// Generate turns a display name into a lowercase, hyphen separated token
// that is safe to use inside a file name
func Generate(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		// Keep ASCII letters and digits only
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			// Collapse any run of dropped characters into one hyphen,
			// never at the start
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	slug := b.String()

	// Nothing usable left
	if slug == "" {
		return Fallback
	}

	// Limit length, then drop a hyphen left dangling by the cut
	if len(slug) > MaxLength {
		slug = strings.TrimRight(slug[:MaxLength], "-")
	}
	return slug
}

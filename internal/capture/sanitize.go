package capture

import "strings"

// Clipboard sanitization limits.
const (
	// ClipboardMaxChars is the rune cap applied to clipboard text.
	ClipboardMaxChars = 10000

	// TruncationMarker is appended when clipboard text is cut at the cap.
	TruncationMarker = "...[truncated]"
)

// SanitizeClipboard strips NUL and control characters (except newline,
// carriage return, and tab), trims surrounding whitespace, and caps the
// result at maxChars runes with TruncationMarker appended when cut.
// Returns "" when nothing usable remains.
func SanitizeClipboard(text string, maxChars int) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}

	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" {
		return ""
	}

	runes := []rune(cleaned)
	if maxChars > 0 && len(runes) > maxChars {
		return string(runes[:maxChars]) + TruncationMarker
	}
	return cleaned
}

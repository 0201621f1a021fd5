//go:build !darwin

package source

// readHTMLClipboard has no rich-clipboard backend outside macOS; the
// plain-text fallback in Read handles these platforms.
func readHTMLClipboard() string {
	return ""
}

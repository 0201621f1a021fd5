package source

import (
	"log/slog"

	"github.com/atotto/clipboard"

	"github.com/hpungsan/glance/internal/capture"
)

type systemClipboard struct {
	maxChars int
}

func newClipboardSource(maxChars int) ClipboardSource {
	return &systemClipboard{maxChars: maxChars}
}

// Read attempts a rich (HTML) clipboard read first, then falls back to
// plain text. The result is sanitized; nil means nothing usable was on
// the clipboard — a clipboard that sanitizes to empty is treated the
// same as an empty one.
func (s *systemClipboard) Read() *capture.ClipboardContent {
	if html := readHTMLClipboard(); html != "" {
		if text := capture.SanitizeClipboard(html, s.maxChars); text != "" {
			return &capture.ClipboardContent{Text: text, Type: capture.ClipboardHTML}
		}
	}

	raw, err := clipboard.ReadAll()
	if err != nil {
		slog.Debug("clipboard read failed", "error", err)
		return nil
	}

	text := capture.SanitizeClipboard(raw, s.maxChars)
	if text == "" {
		return nil
	}
	return &capture.ClipboardContent{Text: text, Type: capture.ClipboardPlain}
}

//go:build darwin

package source

import (
	"context"
	"encoding/hex"
	"strings"
	"time"
)

// htmlClipboardScript asks for the HTML flavor of the pasteboard.
// osascript prints it as «data HTML<hex>».
const htmlClipboardScript = `the clipboard as «class HTML»`

// htmlClipboardTimeout bounds the osascript call; the clipboard read is
// local, so this only guards against a hung osascript.
const htmlClipboardTimeout = 500 * time.Millisecond

// readHTMLClipboard returns the HTML clipboard flavor as a string, or
// "" when the pasteboard holds no HTML or the read fails.
func readHTMLClipboard() string {
	out, err := runOSAScript(context.Background(), htmlClipboardTimeout, htmlClipboardScript)
	if err != nil {
		return ""
	}

	// Expected shape: «data HTML3C68746D6C3E...»
	start := strings.Index(out, "HTML")
	if start < 0 {
		return ""
	}
	hexData := strings.TrimSuffix(out[start+len("HTML"):], "»")
	decoded, err := hex.DecodeString(strings.TrimSpace(hexData))
	if err != nil {
		return ""
	}
	return string(decoded)
}

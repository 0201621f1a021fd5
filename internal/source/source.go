// Package source holds the desktop-state adapters: active window,
// browser tabs, clipboard, and screen capture. Every adapter absorbs
// its own failures (OS-call errors, timeouts, parse failures) and
// degrades to an empty result so one uncooperative source can never
// block or fail a capture. Platform backends are selected by build
// tags; non-macOS platforms implement the same interfaces returning
// absent values.
package source

import (
	"context"
	"time"

	"github.com/hpungsan/glance/internal/capture"
	"github.com/hpungsan/glance/internal/config"
)

// WindowSource reports the frontmost application and window.
// A nil result means the adapter could not resolve anything; individual
// empty fields mean only that query failed.
type WindowSource interface {
	ActiveWindow(ctx context.Context) *capture.ActiveWindow
}

// TabsSource lists open browser tabs across the known browser targets.
// Failures yield an empty slice, never an error.
type TabsSource interface {
	Tabs(ctx context.Context) []capture.BrowserTab
}

// ClipboardSource reads and sanitizes the current clipboard.
// A nil result means nothing usable was on the clipboard.
type ClipboardSource interface {
	Read() *capture.ClipboardContent
}

// ScreenSource captures a full-screen image to the given path.
// The caller is responsible for hiding its own window first.
type ScreenSource interface {
	CaptureTo(ctx context.Context, path string) error
}

// Set bundles one adapter per source for the orchestrator to fan out.
type Set struct {
	Window    WindowSource
	Tabs      TabsSource
	Clipboard ClipboardSource
	Screen    ScreenSource
}

// NewSet builds the platform's default adapters with timeouts from config.
func NewSet(cfg *config.Config) *Set {
	windowTimeout := time.Duration(cfg.WindowTimeoutMs) * time.Millisecond
	tabsTimeout := time.Duration(cfg.TabsTimeoutMs) * time.Millisecond

	return &Set{
		Window:    newWindowSource(windowTimeout),
		Tabs:      newTabsSource(tabsTimeout),
		Clipboard: newClipboardSource(cfg.ClipboardMaxChars),
		Screen:    newScreenSource(),
	}
}

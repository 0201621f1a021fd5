package capture

import "time"

// UnknownField is substituted for window identity fields the adapters
// could not resolve. These are never null in an assembled capture.
const UnknownField = "Unknown"

// CaptureMethod distinguishes how a capture was triggered.
type CaptureMethod string

const (
	MethodHotkey CaptureMethod = "hotkey"
	MethodManual CaptureMethod = "manual"
)

// ProcessingStatus tracks the capture lifecycle in metadata.
type ProcessingStatus string

const (
	StatusPending    ProcessingStatus = "pending"
	StatusProcessing ProcessingStatus = "processing"
	StatusComplete   ProcessingStatus = "complete"
	StatusError      ProcessingStatus = "error"
)

// CapturedContext is one complete desktop snapshot bundled under one
// identity. It is the blob-store payload: serialized as a single JSON
// document per capture, timestamp as RFC 3339.
type CapturedContext struct {
	// ID is a ULID assigned at capture start, shared with the index row
	ID string `json:"id"`

	// Timestamp is the capture start time
	Timestamp time.Time `json:"timestamp"`

	// ActiveWindow is never nil in an assembled capture; failed window
	// adapters degrade to UnknownField values
	ActiveWindow ActiveWindow `json:"activeWindow"`

	// BrowserTabs is ordered, deduplicated by URL, capped at MaxTabs
	BrowserTabs []BrowserTab `json:"browserTabs"`

	// Clipboard is nil when nothing (usable) was on the clipboard
	Clipboard *ClipboardContent `json:"clipboard"`

	Metadata Metadata `json:"metadata"`
}

// ActiveWindow identifies the frontmost application and window.
type ActiveWindow struct {
	App      string  `json:"app"`
	Title    string  `json:"title"`
	BundleID *string `json:"bundleId,omitempty"`

	// Screenshot is the full-screen grab as base64 PNG, embedded in the
	// blob document; nil when the grab failed
	Screenshot *string `json:"screenshot,omitempty"`
}

// BrowserTab is one open tab reported by a browser target.
type BrowserTab struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Domain  string `json:"domain"`
	Browser string `json:"browser"`
}

// ClipboardContent is the sanitized clipboard payload.
type ClipboardContent struct {
	Text string `json:"text"`

	// Type is "plain" or "html"
	Type string `json:"type"`
}

// Clipboard content types.
const (
	ClipboardPlain = "plain"
	ClipboardHTML  = "html"
)

// Metadata describes how and where the capture was taken.
type Metadata struct {
	OS               string           `json:"os"`
	CaptureMethod    CaptureMethod    `json:"captureMethod"`
	ProcessingStatus ProcessingStatus `json:"processingStatus"`
}

// Summary is the index-row view of a capture, used for listings.
type Summary struct {
	ID             string `json:"id"`
	Timestamp      int64  `json:"timestamp"`
	AppName        string `json:"app_name"`
	WindowTitle    string `json:"window_title"`
	TabsCount      int    `json:"tabs_count"`
	HasClipboard   bool   `json:"has_clipboard"`
	ScreenshotPath string `json:"screenshot_path"`
	JSONPath       string `json:"json_path"`
	WebhookSent    bool   `json:"webhook_sent"`
	WebhookSentAt  *int64 `json:"webhook_sent_at,omitempty"`
}

// ToSummary derives the index-row fields from an assembled capture.
func (c *CapturedContext) ToSummary(screenshotPath, jsonPath string) Summary {
	return Summary{
		ID:             c.ID,
		Timestamp:      c.Timestamp.Unix(),
		AppName:        c.ActiveWindow.App,
		WindowTitle:    c.ActiveWindow.Title,
		TabsCount:      len(c.BrowserTabs),
		HasClipboard:   c.Clipboard != nil,
		ScreenshotPath: screenshotPath,
		JSONPath:       jsonPath,
	}
}

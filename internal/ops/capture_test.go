package ops

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hpungsan/glance/internal/capture"
	"github.com/hpungsan/glance/internal/db"
	"github.com/hpungsan/glance/internal/errors"
	"github.com/hpungsan/glance/internal/webhook"
)

func TestCapture_HappyPath(t *testing.T) {
	env := testEnv(t, workingSources(), nil)

	out, err := Capture(context.Background(), env, CaptureInput{Method: capture.MethodHotkey})
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if out.CaptureID == "" {
		t.Fatal("CaptureID should not be empty")
	}
	if len(out.CaptureID) != 26 {
		t.Errorf("CaptureID length = %d, want 26 (ULID)", len(out.CaptureID))
	}

	// Exactly one blob and one index row exist
	c, err := env.Blobs.ReadContext(out.CaptureID)
	if err != nil {
		t.Fatalf("blob missing: %v", err)
	}
	row, err := db.GetByID(env.DB, out.CaptureID)
	if err != nil {
		t.Fatalf("index row missing: %v", err)
	}

	if c.ActiveWindow.App != "Safari" || c.ActiveWindow.Title != "Example Page" {
		t.Errorf("activeWindow = %+v", c.ActiveWindow)
	}
	if c.ActiveWindow.BundleID == nil || *c.ActiveWindow.BundleID != "com.apple.Safari" {
		t.Error("bundleId lost")
	}
	if c.ActiveWindow.Screenshot == nil {
		t.Error("screenshot should be embedded as base64")
	}
	if c.Metadata.CaptureMethod != capture.MethodHotkey {
		t.Errorf("captureMethod = %s", c.Metadata.CaptureMethod)
	}
	if c.Metadata.ProcessingStatus != capture.StatusComplete {
		t.Errorf("processingStatus = %s", c.Metadata.ProcessingStatus)
	}

	// Tabs deduplicated by URL, first occurrence wins
	if len(c.BrowserTabs) != 2 {
		t.Fatalf("tabs = %d, want 2 after dedupe", len(c.BrowserTabs))
	}
	if c.BrowserTabs[0].Browser != "Safari" {
		t.Error("first occurrence should win dedupe")
	}

	if row.AppName != "Safari" || row.TabsCount != 2 || !row.HasClipboard {
		t.Errorf("index row = %+v", row)
	}
	if row.WebhookSent {
		t.Error("webhook_sent should start false")
	}
	if row.ScreenshotPath == "" {
		t.Error("screenshot_path should be recorded")
	}

	// Latest slot points at this capture
	if latest := Latest(env); latest == nil || latest.ID != out.CaptureID {
		t.Error("latest slot not updated")
	}
}

func TestCapture_AllSourcesFailStillSucceeds(t *testing.T) {
	env := testEnv(t, deadSources(), nil)

	out, err := Capture(context.Background(), env, CaptureInput{})
	if err != nil {
		t.Fatalf("Capture() error = %v; source degradation must not fail a capture", err)
	}

	c, err := env.Blobs.ReadContext(out.CaptureID)
	if err != nil {
		t.Fatalf("blob missing: %v", err)
	}

	if c.ActiveWindow.App != capture.UnknownField || c.ActiveWindow.Title != capture.UnknownField {
		t.Errorf("activeWindow = %+v, want Unknown/Unknown", c.ActiveWindow)
	}
	if c.ActiveWindow.Screenshot != nil {
		t.Error("no screenshot expected when grab fails")
	}
	if len(c.BrowserTabs) != 0 {
		t.Errorf("browserTabs = %v, want empty", c.BrowserTabs)
	}
	if c.Clipboard != nil {
		t.Errorf("clipboard = %+v, want nil", c.Clipboard)
	}

	row, err := db.GetByID(env.DB, out.CaptureID)
	if err != nil {
		t.Fatal(err)
	}
	if row.HasClipboard || row.TabsCount != 0 || row.ScreenshotPath != "" {
		t.Errorf("index row = %+v", row)
	}
	if row.AppName != capture.UnknownField {
		t.Errorf("app_name = %q", row.AppName)
	}
}

func TestCapture_PartialWindowResult(t *testing.T) {
	sources := workingSources()
	sources.Window = &fakeWindow{win: &capture.ActiveWindow{App: "Terminal"}}
	env := testEnv(t, sources, nil)

	out, err := Capture(context.Background(), env, CaptureInput{})
	if err != nil {
		t.Fatal(err)
	}

	c, _ := env.Blobs.ReadContext(out.CaptureID)
	if c.ActiveWindow.App != "Terminal" {
		t.Errorf("app = %q", c.ActiveWindow.App)
	}
	if c.ActiveWindow.Title != capture.UnknownField {
		t.Errorf("missing title should default to Unknown, got %q", c.ActiveWindow.Title)
	}
}

func TestCapture_HideShowHookOrdering(t *testing.T) {
	var events []string
	sources := workingSources()
	sources.Screen = &fakeScreen{
		data:      []byte("png"),
		onCapture: func() { events = append(events, "grab") },
	}
	env := testEnv(t, sources, nil)

	_, err := Capture(context.Background(), env, CaptureInput{
		HideWindow: func() { events = append(events, "hide") },
		ShowWindow: func() { events = append(events, "show") },
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(events) != 3 || events[0] != "hide" || events[1] != "grab" || events[2] != "show" {
		t.Errorf("events = %v, want [hide grab show]", events)
	}
}

func TestCapture_ShowHookRunsWhenGrabFails(t *testing.T) {
	var events []string
	sources := workingSources()
	sources.Screen = &fakeScreen{
		err:       os.ErrPermission,
		onCapture: func() { events = append(events, "grab") },
	}
	env := testEnv(t, sources, nil)

	out, err := Capture(context.Background(), env, CaptureInput{
		HideWindow: func() { events = append(events, "hide") },
		ShowWindow: func() { events = append(events, "show") },
	})
	if err != nil {
		t.Fatalf("grab failure should degrade, not fail: %v", err)
	}

	if len(events) != 3 || events[2] != "show" {
		t.Errorf("events = %v, show hook must run on the failure path", events)
	}

	c, _ := env.Blobs.ReadContext(out.CaptureID)
	if c.ActiveWindow.Screenshot != nil {
		t.Error("no screenshot expected")
	}
}

func TestCapture_InvalidMethod(t *testing.T) {
	env := testEnv(t, workingSources(), nil)

	_, err := Capture(context.Background(), env, CaptureInput{Method: "telepathy"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}

func TestCapture_IndexWriteFailureLeavesNoPartialState(t *testing.T) {
	env := testEnv(t, workingSources(), nil)

	// Force the index write to fail after blob assembly succeeds
	env.DB.Close()

	_, err := Capture(context.Background(), env, CaptureInput{})
	if !errors.Is(err, errors.ErrCaptureFailed) {
		t.Fatalf("error = %v, want CAPTURE_FAILED", err)
	}

	// No orphan blob or screenshot survives a failed capture
	entries, readErr := os.ReadDir(filepath.Dir(env.Blobs.ContextPath("x")))
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("captures dir should be empty, found %d entries", len(entries))
	}

	if env.Latest.Get() != nil {
		t.Error("latest slot must not point at a failed capture")
	}
}

func TestCapture_DeliveryUpdatesIndexAsync(t *testing.T) {
	sender := &fakeSender{}
	env := testEnv(t, workingSources(), sender)

	out, err := Capture(context.Background(), env, CaptureInput{})
	if err != nil {
		t.Fatal(err)
	}

	// Delivery is fire-and-forget; poll for the status flip
	deadline := time.Now().Add(2 * time.Second)
	for {
		row, err := db.GetByID(env.DB, out.CaptureID)
		if err != nil {
			t.Fatal(err)
		}
		if row.WebhookSent {
			if row.WebhookSentAt == nil {
				t.Error("webhook_sent_at should be stamped")
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("webhook_sent never became true")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if sender.callCount() != 1 {
		t.Errorf("sender calls = %d, want 1", sender.callCount())
	}
}

func TestCapture_DeliveryFailureLeavesUnsent(t *testing.T) {
	sender := &fakeSender{results: []webhook.Result{
		{Success: false, Error: "webhook returned status 500", StatusCode: 500},
	}}
	env := testEnv(t, workingSources(), sender)

	out, err := Capture(context.Background(), env, CaptureInput{})
	if err != nil {
		t.Fatalf("delivery failure must not fail the capture: %v", err)
	}

	// Wait for the async delivery attempt to finish
	deadline := time.Now().Add(2 * time.Second)
	for sender.callCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("sender never invoked")
		}
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)

	row, err := db.GetByID(env.DB, out.CaptureID)
	if err != nil {
		t.Fatal(err)
	}
	if row.WebhookSent {
		t.Error("webhook_sent should stay false after failed delivery")
	}
	if row.WebhookSentAt != nil {
		t.Error("webhook_sent_at should stay null")
	}
}

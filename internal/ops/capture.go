package ops

import (
	"context"
	"encoding/base64"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hpungsan/glance/internal/capture"
	"github.com/hpungsan/glance/internal/db"
	"github.com/hpungsan/glance/internal/errors"
	"github.com/hpungsan/glance/internal/logging"
	"github.com/hpungsan/glance/internal/source"
)

// settleDelay gives the host window time to visually disappear between
// the hide hook and the OS-level screen grab.
const settleDelay = 100 * time.Millisecond

// CaptureInput contains parameters for the Capture operation.
type CaptureInput struct {
	// Method is hotkey or manual; defaults to manual.
	Method capture.CaptureMethod

	// HideWindow and ShowWindow are optional host-UI callbacks invoked
	// at most once each, bracketing the screen grab so the host's own
	// window stays out of the shot.
	HideWindow func()
	ShowWindow func()
}

// CaptureOutput contains the result of the Capture operation.
type CaptureOutput struct {
	CaptureID string `json:"capture_id"`
}

// Capture takes one full desktop snapshot: it fans out the window, tab,
// clipboard, and screen adapters concurrently, collects every outcome
// (adapter failures degrade to documented defaults, never abort the
// capture), assembles the record, writes the JSON blob then the index
// row, and dispatches webhook delivery without waiting on it.
// It fails only when assembly or a durable write fails; in that case
// neither blob nor index row survives.
func Capture(ctx context.Context, env *Env, input CaptureInput) (*CaptureOutput, error) {
	if input.Method == "" {
		input.Method = capture.MethodManual
	}
	if input.Method != capture.MethodHotkey && input.Method != capture.MethodManual {
		return nil, errors.NewInvalidRequest("method must be one of: hotkey, manual")
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	now := time.Now()
	log := logging.WithCapture(id)

	var (
		win        *capture.ActiveWindow
		tabs       []capture.BrowserTab
		clip       *capture.ClipboardContent
		screenshot []byte
	)
	screenshotPath := env.Blobs.ScreenshotPath(id)

	// Settle-all fan-out: every branch runs to completion and absorbs
	// its own failure, so one dead source never cancels the rest.
	var g errgroup.Group
	g.Go(func() error {
		win = env.Sources.Window.ActiveWindow(ctx)
		if win == nil {
			log.Debug("active window unavailable, using defaults")
		}
		return nil
	})
	g.Go(func() error {
		tabs = env.Sources.Tabs.Tabs(ctx)
		return nil
	})
	g.Go(func() error {
		clip = env.Sources.Clipboard.Read()
		return nil
	})
	g.Go(func() error {
		data, err := grabScreen(ctx, env.Sources.Screen, screenshotPath, input.HideWindow, input.ShowWindow)
		if err != nil {
			log.Warn("screen capture failed", "error", err)
			return nil
		}
		screenshot = data
		return nil
	})
	_ = g.Wait()

	c := assemble(id, now, input.Method, win, tabs, clip, screenshot)

	jsonPath, err := env.Blobs.WriteContext(c)
	if err != nil {
		_ = env.Blobs.Delete(id)
		return nil, errors.NewCaptureFailed(err)
	}

	summaryScreenshot := ""
	if screenshot != nil {
		summaryScreenshot = screenshotPath
	}
	summary := c.ToSummary(summaryScreenshot, jsonPath)
	if err := db.Insert(env.DB, &summary); err != nil {
		// Keep blob and index consistent: no index row, no blob
		_ = env.Blobs.Delete(id)
		return nil, errors.NewCaptureFailed(err)
	}

	env.Latest.Set(c)
	log.Info("capture stored",
		"app", c.ActiveWindow.App,
		"tabs", len(c.BrowserTabs),
		"has_clipboard", c.Clipboard != nil,
		"has_screenshot", screenshot != nil,
	)

	// Fire-and-forget delivery; the outcome lands in the index row, not
	// in this call's result.
	if env.Webhook != nil {
		go deliver(env, c)
	}

	return &CaptureOutput{CaptureID: id}, nil
}

// grabScreen brackets the screen grab with the host's hide/show hooks.
// The show hook is guaranteed to run on every exit path once grabScreen
// is entered, even when the grab fails.
func grabScreen(ctx context.Context, screen source.ScreenSource, path string, hide, show func()) ([]byte, error) {
	if show != nil {
		defer show()
	}
	if hide != nil {
		hide()
		time.Sleep(settleDelay)
	}

	if err := screen.CaptureTo(ctx, path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// assemble builds the immutable capture record from the fan-out
// results, substituting documented defaults for degraded sources.
func assemble(id string, ts time.Time, method capture.CaptureMethod, win *capture.ActiveWindow, tabs []capture.BrowserTab, clip *capture.ClipboardContent, screenshot []byte) *capture.CapturedContext {
	aw := capture.ActiveWindow{
		App:   capture.UnknownField,
		Title: capture.UnknownField,
	}
	if win != nil {
		if win.App != "" {
			aw.App = win.App
		}
		if win.Title != "" {
			aw.Title = win.Title
		}
		aw.BundleID = win.BundleID
	}
	if screenshot != nil {
		encoded := base64.StdEncoding.EncodeToString(screenshot)
		aw.Screenshot = &encoded
	}

	deduped := capture.DedupeTabs(tabs)
	if deduped == nil {
		deduped = []capture.BrowserTab{}
	}

	return &capture.CapturedContext{
		ID:           id,
		Timestamp:    ts,
		ActiveWindow: aw,
		BrowserTabs:  deduped,
		Clipboard:    clip,
		Metadata: capture.Metadata{
			OS:               runtime.GOOS,
			CaptureMethod:    method,
			ProcessingStatus: capture.StatusComplete,
		},
	}
}

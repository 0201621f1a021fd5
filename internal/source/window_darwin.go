//go:build darwin

package source

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/hpungsan/glance/internal/capture"
)

// appIdentityScript returns "name\nbundle-id" of the frontmost process.
const appIdentityScript = `tell application "System Events" to tell (first application process whose frontmost is true) to return name & linefeed & (get bundle identifier)`

// windowTitleScript returns the title of the frontmost window.
const windowTitleScript = `tell application "System Events" to tell (first application process whose frontmost is true) to return name of front window`

type darwinWindowSource struct {
	timeout time.Duration
}

func newWindowSource(timeout time.Duration) WindowSource {
	return &darwinWindowSource{timeout: timeout}
}

// ActiveWindow runs the app-identity and window-title queries
// independently; a failure in one nulls only its fields. Both failing
// yields nil, which the orchestrator replaces with Unknown values.
func (s *darwinWindowSource) ActiveWindow(ctx context.Context) *capture.ActiveWindow {
	var win capture.ActiveWindow
	appOK := false

	identity, err := runOSAScript(ctx, s.timeout, appIdentityScript)
	if err != nil {
		slog.Debug("active window identity query failed", "error", err)
	} else if identity != "" {
		appOK = true
		name, bundleID, _ := strings.Cut(identity, "\n")
		win.App = strings.TrimSpace(name)
		if bundleID = strings.TrimSpace(bundleID); bundleID != "" && bundleID != "missing value" {
			win.BundleID = &bundleID
		}
	}

	title, err := runOSAScript(ctx, s.timeout, windowTitleScript)
	if err != nil {
		slog.Debug("window title query failed", "error", err)
	} else {
		win.Title = title
	}

	if !appOK && win.Title == "" {
		return nil
	}
	return &win
}

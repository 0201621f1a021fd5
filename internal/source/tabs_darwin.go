//go:build darwin

package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hpungsan/glance/internal/capture"
)

// safariTabScript lists "name<TAB>URL" per tab. The running guard keeps
// AppleScript from launching a browser that isn't open.
const safariTabScript = `if application "Safari" is running then
	tell application "Safari"
		set out to ""
		repeat with w in windows
			repeat with t in tabs of w
				set out to out & (name of t) & tab & (URL of t) & linefeed
			end repeat
		end repeat
		return out
	end tell
end if`

// chromiumTabScriptFmt works for Chrome-family browsers, which expose
// "title" instead of Safari's "name".
const chromiumTabScriptFmt = `if application "%[1]s" is running then
	tell application "%[1]s"
		set out to ""
		repeat with w in windows
			repeat with t in tabs of w
				set out to out & (title of t) & tab & (URL of t) & linefeed
			end repeat
		end repeat
		return out
	end tell
end if`

type darwinTabsSource struct {
	timeout time.Duration
}

func newTabsSource(timeout time.Duration) TabsSource {
	return &darwinTabsSource{timeout: timeout}
}

// Tabs queries every browser target in parallel, each under its own
// timeout. A failed or timed-out branch is excluded from the aggregate,
// never propagated; results keep the fixed browser order, then each
// browser's own window/tab order.
func (s *darwinTabsSource) Tabs(ctx context.Context) []capture.BrowserTab {
	results := make([][]capture.BrowserTab, len(browserTargets))

	var g errgroup.Group
	for i, browser := range browserTargets {
		g.Go(func() error {
			script := safariTabScript
			if browser != "Safari" {
				script = fmt.Sprintf(chromiumTabScriptFmt, browser)
			}

			out, err := runOSAScript(ctx, s.timeout, script)
			if err != nil {
				slog.Debug("browser tab query failed", "browser", browser, "error", err)
				return nil
			}
			results[i] = parseTabLines(browser, out)
			return nil
		})
	}
	_ = g.Wait()

	var tabs []capture.BrowserTab
	for _, branch := range results {
		tabs = append(tabs, branch...)
	}
	return tabs
}

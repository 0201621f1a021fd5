package source

import (
	"strings"

	"github.com/hpungsan/glance/internal/capture"
)

// browserTargets is the fixed set of browsers queried per capture,
// in aggregate output order.
var browserTargets = []string{
	"Safari",
	"Google Chrome",
	"Arc",
	"Brave Browser",
	"Microsoft Edge",
}

// parseTabLines converts "title<TAB>url" lines emitted by the browser
// scripts into tabs. Malformed lines are skipped.
func parseTabLines(browser, out string) []capture.BrowserTab {
	var tabs []capture.BrowserTab
	for _, line := range strings.Split(out, "\n") {
		title, url, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		url = strings.TrimSpace(url)
		if url == "" || url == "missing value" {
			continue
		}
		tabs = append(tabs, capture.BrowserTab{
			Title:   strings.TrimSpace(title),
			URL:     url,
			Domain:  capture.DomainOf(url),
			Browser: browser,
		})
	}
	return tabs
}

package capture

import (
	"net/url"
	"strings"
)

// MaxTabs caps the aggregated browser tab list per capture.
const MaxTabs = 50

// DedupeTabs removes entries sharing a URL (first occurrence wins,
// preserving input order) and truncates the result to MaxTabs.
func DedupeTabs(tabs []BrowserTab) []BrowserTab {
	seen := make(map[string]bool, len(tabs))
	result := make([]BrowserTab, 0, len(tabs))

	for _, tab := range tabs {
		if tab.URL == "" || seen[tab.URL] {
			continue
		}
		seen[tab.URL] = true
		result = append(result, tab)
		if len(result) == MaxTabs {
			break
		}
	}

	return result
}

// DomainOf extracts the host from a tab URL, without port or
// "www." prefix. Returns "" for unparsable URLs.
func DomainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	return strings.TrimPrefix(host, "www.")
}

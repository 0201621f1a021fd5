//go:build !darwin

package source

import (
	"context"
	"time"

	"github.com/hpungsan/glance/internal/capture"
)

type stubTabsSource struct{}

func newTabsSource(time.Duration) TabsSource {
	return &stubTabsSource{}
}

// Tabs has no browser scripting backend on this platform.
func (s *stubTabsSource) Tabs(context.Context) []capture.BrowserTab {
	return nil
}

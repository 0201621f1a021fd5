//go:build !darwin

package source

import (
	"context"
	"time"

	"github.com/hpungsan/glance/internal/capture"
)

type stubWindowSource struct{}

func newWindowSource(time.Duration) WindowSource {
	return &stubWindowSource{}
}

// ActiveWindow has no backend on this platform; the orchestrator
// substitutes Unknown values.
func (s *stubWindowSource) ActiveWindow(context.Context) *capture.ActiveWindow {
	return nil
}

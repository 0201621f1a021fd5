//go:build darwin

package source

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// screenCaptureTimeout bounds the screencapture call.
const screenCaptureTimeout = 5 * time.Second

type darwinScreenSource struct{}

func newScreenSource() ScreenSource {
	return &darwinScreenSource{}
}

// CaptureTo grabs the full screen to path as PNG via screencapture.
// -x suppresses the shutter sound. Assumes the caller's own window is
// already hidden.
func (s *darwinScreenSource) CaptureTo(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, screenCaptureTimeout)
	defer cancel()

	if err := exec.CommandContext(ctx, "screencapture", "-x", "-t", "png", path).Run(); err != nil {
		return fmt.Errorf("screencapture failed: %w", err)
	}
	return nil
}

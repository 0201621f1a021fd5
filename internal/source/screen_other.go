//go:build !darwin

package source

import (
	"context"
	"fmt"
	"runtime"
)

type stubScreenSource struct{}

func newScreenSource() ScreenSource {
	return &stubScreenSource{}
}

// CaptureTo is unsupported on this platform; the capture degrades to no
// screenshot.
func (s *stubScreenSource) CaptureTo(context.Context, string) error {
	return fmt.Errorf("screen capture not supported on %s", runtime.GOOS)
}

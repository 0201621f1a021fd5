//go:build darwin

package source

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// runOSAScript executes an AppleScript snippet under timeout and returns
// its trimmed stdout. The context deadline kills the osascript process,
// which surfaces as an error the caller degrades on.
func runOSAScript(ctx context.Context, timeout time.Duration, script string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

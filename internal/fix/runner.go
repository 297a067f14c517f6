package fix

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// Capture re-runs the failed command under shellExe and collects both
// output streams for rule matching. The exit status is irrelevant (the
// command already failed once; it is expected to fail again) — only
// the text matters, so errors are logged and whatever output was
// gathered is returned. The timeout bounds commands that hang on a
// second run.
func Capture(ctx context.Context, shellExe, command string, timeout time.Duration) (string, string) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, shellExe, "-c", command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		log.Debug("capture run of %q ended with: %v", command, err)
	}
	return stdout.String(), stderr.String()
}

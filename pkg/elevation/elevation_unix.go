//go:build !windows

package elevation

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/benchkit/benchkit/pkg/execx"
)

// unixChecker reports elevation as effective uid 0.
type unixChecker struct{}

func newChecker() Checker { return unixChecker{} }

func (unixChecker) Elevated() (bool, error) {
	return os.Geteuid() == 0, nil
}

// sudoLauncher re-execs the binary under sudo with stdio attached, so
// the password prompt and all step output reach the operator. It
// blocks until the elevated process exits.
type sudoLauncher struct{}

func newLauncher() Launcher { return sudoLauncher{} }

func (sudoLauncher) Relaunch(ctx context.Context, exe string, args []string) (int, error) {
	sudoArgs := append([]string{"--", exe}, args...)
	cmd := exec.CommandContext(ctx, "sudo", sudoArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The elevated process ran to completion; its exit code is
		// the run outcome, not a launch error. A sudo authentication
		// refusal also lands here and propagates as a failing code.
		return execx.ExitCode(err), nil
	}
	return 1, err
}

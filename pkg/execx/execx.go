// Package execx wraps external command invocation. Every call blocks
// until the subprocess exits; cancellation only happens through the
// supplied context.
package execx

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/benchkit/benchkit/pkg/logging"
	"github.com/benchkit/benchkit/pkg/types"
)

// Runner executes commands on the real system.
type Runner struct{}

// NewRunner returns the production CommandRunner.
func NewRunner() *Runner {
	return &Runner{}
}

var _ types.CommandRunner = (*Runner)(nil)

// Run executes the command and returns its combined output, trimmed.
// The error is non-nil for a missing binary and for a non-zero exit.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (string, error) {
	logging.LogCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	return strings.TrimSpace(buf.String()), err
}

// ExitCode extracts the subprocess exit code from a Run error. It
// returns 0 for nil, the real exit status for exec.ExitError, and 1
// for anything else (start failures, missing binaries).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

// NotFound reports whether the error means the binary does not
// resolve on the search path.
func NotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}

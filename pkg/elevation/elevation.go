// Package elevation ensures the rest of a run executes with the
// privilege level it requires. The guard checks the current process,
// and when it is not elevated relaunches the same executable with the
// original flags forwarded verbatim under the platform's elevation
// mechanism. The non-elevated process must then exit without running
// any further steps, so side effects never execute twice.
package elevation

import (
	"context"
	"os"

	"github.com/benchkit/benchkit/pkg/errors"
	"github.com/benchkit/benchkit/pkg/invocation"
	"github.com/benchkit/benchkit/pkg/logging"
)

// Checker queries the current process's privilege level. The check
// has no side effects.
type Checker interface {
	Elevated() (bool, error)
}

// Launcher starts an elevated copy of the executable with the given
// argument vector, blocks until it exits, and returns its exit code.
type Launcher interface {
	Relaunch(ctx context.Context, exe string, args []string) (int, error)
}

// Decision tells the caller how to proceed after the guard ran.
type Decision int

const (
	// Proceed means the process is already elevated; continue.
	Proceed Decision = iota

	// ExitRelaunched means an elevated copy ran to completion; the
	// caller must exit with the returned code and execute nothing
	// further.
	ExitRelaunched

	// Declined means elevation was required but refused or failed to
	// launch; the run aborts.
	Declined
)

// Guard wires a Checker and Launcher together.
type Guard struct {
	Checker  Checker
	Launcher Launcher
}

// NewGuard returns a guard backed by the platform implementations.
func NewGuard() *Guard {
	return &Guard{Checker: newChecker(), Launcher: newLauncher()}
}

// Ensure runs the elevation decision for the named subcommand. When a
// relaunch happens, the returned int is the elevated process's exit
// code and must become this process's own exit code.
func (g *Guard) Ensure(ctx context.Context, command string, inv *invocation.Context) (Decision, int, error) {
	logger := logging.GetLogger("elevation")

	elevated, err := g.Checker.Elevated()
	if err != nil {
		return Declined, 1, errors.Wrap(err, errors.ErrElevationDeclined,
			"cannot determine privilege level")
	}
	if elevated {
		logger.Debug().Msg("Already elevated")
		return Proceed, 0, nil
	}

	if inv.NoElevate {
		return Declined, 1, errors.New(errors.ErrElevationDeclined,
			"elevation required but --no-elevate was given")
	}

	exe, err := os.Executable()
	if err != nil {
		return Declined, 1, errors.Wrap(err, errors.ErrElevationLaunch,
			"cannot resolve own executable path")
	}

	args := append([]string{command}, inv.Args()...)
	logger.Info().Str("exe", exe).Strs("args", args).Msg("Relaunching elevated")

	code, err := g.Launcher.Relaunch(ctx, exe, args)
	if err != nil {
		return Declined, 1, errors.Wrap(err, errors.ErrElevationDeclined,
			"elevated relaunch failed")
	}
	return ExitRelaunched, code, nil
}

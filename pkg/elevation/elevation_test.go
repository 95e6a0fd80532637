package elevation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchkit/benchkit/pkg/errors"
	"github.com/benchkit/benchkit/pkg/invocation"
)

type fakeChecker struct {
	elevated bool
	err      error
}

func (f fakeChecker) Elevated() (bool, error) { return f.elevated, f.err }

type fakeLauncher struct {
	calls    int
	gotExe   string
	gotArgs  []string
	exitCode int
	err      error
}

func (f *fakeLauncher) Relaunch(_ context.Context, exe string, args []string) (int, error) {
	f.calls++
	f.gotExe = exe
	f.gotArgs = args
	return f.exitCode, f.err
}

func TestEnsureAlreadyElevated(t *testing.T) {
	launcher := &fakeLauncher{}
	guard := &Guard{Checker: fakeChecker{elevated: true}, Launcher: launcher}

	decision, code, err := guard.Ensure(context.Background(), "up", &invocation.Context{})
	require.NoError(t, err)
	assert.Equal(t, Proceed, decision)
	assert.Equal(t, 0, code)
	assert.Equal(t, 0, launcher.calls, "no relaunch when already elevated")
}

func TestEnsureRelaunchForwardsFlags(t *testing.T) {
	launcher := &fakeLauncher{exitCode: 0}
	guard := &Guard{Checker: fakeChecker{elevated: false}, Launcher: launcher}
	inv := &invocation.Context{
		Skip:    []string{"wsl"},
		LogFile: `C:\logs\my run.log`,
	}

	decision, code, err := guard.Ensure(context.Background(), "up", inv)
	require.NoError(t, err)
	assert.Equal(t, ExitRelaunched, decision)
	assert.Equal(t, 0, code)
	require.Equal(t, 1, launcher.calls)

	// The relaunched argv starts with the subcommand and re-parses to
	// an equivalent context: nothing dropped, nothing truncated.
	require.NotEmpty(t, launcher.gotArgs)
	assert.Equal(t, "up", launcher.gotArgs[0])
	parsed, err := invocation.Parse(launcher.gotArgs[1:])
	require.NoError(t, err)
	assert.Equal(t, inv, parsed)
}

func TestEnsureRelaunchPropagatesExitCode(t *testing.T) {
	launcher := &fakeLauncher{exitCode: 7}
	guard := &Guard{Checker: fakeChecker{elevated: false}, Launcher: launcher}

	decision, code, err := guard.Ensure(context.Background(), "up", &invocation.Context{})
	require.NoError(t, err)
	assert.Equal(t, ExitRelaunched, decision)
	assert.Equal(t, 7, code)
}

func TestEnsureNoElevateDeclines(t *testing.T) {
	launcher := &fakeLauncher{}
	guard := &Guard{Checker: fakeChecker{elevated: false}, Launcher: launcher}

	decision, code, err := guard.Ensure(context.Background(), "up", &invocation.Context{NoElevate: true})
	assert.Equal(t, Declined, decision)
	assert.Equal(t, 1, code)
	assert.True(t, errors.IsErrorCode(err, errors.ErrElevationDeclined))
	assert.Equal(t, 0, launcher.calls)
}

func TestEnsureLaunchFailureDeclines(t *testing.T) {
	launcher := &fakeLauncher{err: fmt.Errorf("user cancelled the prompt")}
	guard := &Guard{Checker: fakeChecker{elevated: false}, Launcher: launcher}

	decision, code, err := guard.Ensure(context.Background(), "up", &invocation.Context{})
	assert.Equal(t, Declined, decision)
	assert.Equal(t, 1, code)
	assert.True(t, errors.IsErrorCode(err, errors.ErrElevationDeclined))
}

func TestEnsureCheckerErrorDeclines(t *testing.T) {
	guard := &Guard{Checker: fakeChecker{err: fmt.Errorf("token query failed")}, Launcher: &fakeLauncher{}}

	decision, _, err := guard.Ensure(context.Background(), "up", &invocation.Context{})
	assert.Equal(t, Declined, decision)
	assert.Error(t, err)
}

package execx

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesOutput(t *testing.T) {
	runner := NewRunner()

	out, err := runner.Run(context.Background(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestRunNonZeroExit(t *testing.T) {
	runner := NewRunner()

	out, err := runner.Run(context.Background(), "sh", "-c", "echo oops >&2; exit 3")
	require.Error(t, err)
	assert.Equal(t, "oops", out)
	assert.Equal(t, 3, ExitCode(err))
}

func TestRunMissingBinary(t *testing.T) {
	runner := NewRunner()

	_, err := runner.Run(context.Background(), "definitely-not-a-real-binary-xyz")
	require.Error(t, err)
	assert.True(t, NotFound(err))
	assert.Equal(t, 1, ExitCode(err))
}

func TestExitCodeNil(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
}

func TestNotFoundOtherErrors(t *testing.T) {
	assert.False(t, NotFound(errors.New("boom")))
	assert.False(t, NotFound(&exec.ExitError{}))
}

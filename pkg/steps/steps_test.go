package steps

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchkit/benchkit/pkg/errors"
	"github.com/benchkit/benchkit/pkg/types"
)

// spyStep tracks how often its predicate and action ran.
type spyStep struct {
	satisfied     bool
	actionErr     error
	satisfiedRuns int
	actionRuns    int
}

func (s *spyStep) step(name string, required bool) Step {
	return Step{
		Name:     name,
		Required: required,
		Satisfied: func(context.Context) (bool, string, error) {
			s.satisfiedRuns++
			return s.satisfied, "", nil
		},
		Action: func(context.Context) error {
			s.actionRuns++
			if s.actionErr != nil {
				return s.actionErr
			}
			// First successful action satisfies later checks, as a
			// real install would.
			s.satisfied = true
			return nil
		},
	}
}

func TestRunIdempotence(t *testing.T) {
	spy := &spyStep{}
	runner := NewRunner(Policy{}, nil)

	first, err := runner.Run(context.Background(), []Step{spy.step("install git", false)})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, types.ClassSucceeded, first[0].Class)
	assert.Equal(t, 1, spy.actionRuns)

	second, err := runner.Run(context.Background(), []Step{spy.step("install git", false)})
	require.NoError(t, err)
	assert.Equal(t, types.ClassSatisfied, second[0].Class)
	assert.Equal(t, 1, spy.actionRuns, "action must not run again once satisfied")
}

func TestRunFailFastOnRequiredFailure(t *testing.T) {
	spies := make([]*spyStep, 5)
	list := make([]Step, 5)
	for i := range spies {
		spies[i] = &spyStep{}
		list[i] = spies[i].step(fmt.Sprintf("step-%d", i+1), false)
	}
	spies[1].actionErr = fmt.Errorf("exit status 1")
	list[1].Required = true

	runner := NewRunner(Policy{}, nil)
	outcomes, err := runner.Run(context.Background(), list)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStepHardFailure))
	require.Len(t, outcomes, 2, "no outcome may exist for unattempted steps")
	assert.Equal(t, types.ClassSucceeded, outcomes[0].Class)
	assert.Equal(t, types.ClassHardFailed, outcomes[1].Class)

	for i, spy := range spies[2:] {
		assert.Equal(t, 0, spy.actionRuns, "step %d must never run after a hard failure", i+3)
		assert.Equal(t, 0, spy.satisfiedRuns, "step %d must never even be checked", i+3)
	}
}

func TestRunKeepGoingAttemptsEverything(t *testing.T) {
	spies := make([]*spyStep, 5)
	list := make([]Step, 5)
	for i := range spies {
		spies[i] = &spyStep{}
		list[i] = spies[i].step(fmt.Sprintf("step-%d", i+1), false)
	}
	spies[1].actionErr = fmt.Errorf("exit status 1")
	list[1].Required = true

	runner := NewRunner(Policy{KeepGoing: true}, nil)
	outcomes, err := runner.Run(context.Background(), list)

	require.NoError(t, err)
	require.Len(t, outcomes, 5)
	assert.Equal(t, types.ClassSoftFailed, outcomes[1].Class)
	for i, spy := range spies {
		assert.Equal(t, 1, spy.actionRuns, "step %d should run exactly once", i+1)
	}
}

func TestRunOptionalFailureIsSoft(t *testing.T) {
	failing := &spyStep{actionErr: fmt.Errorf("exit status 2")}
	after := &spyStep{}

	runner := NewRunner(Policy{}, nil)
	outcomes, err := runner.Run(context.Background(), []Step{
		failing.step("optional tweak", false),
		after.step("next step", false),
	})

	require.NoError(t, err, "optional failures never abort the run")
	assert.Equal(t, types.ClassSoftFailed, outcomes[0].Class)
	assert.Equal(t, types.ClassSucceeded, outcomes[1].Class)
	assert.Equal(t, 1, after.actionRuns)
}

func TestRunGateAbsentOptionalSoftFails(t *testing.T) {
	spy := &spyStep{}
	step := spy.step("install package", false)
	step.Gate = types.CapPackageManager

	runner := NewRunner(Policy{}, types.CapabilityMap{
		types.CapPackageManager: {Name: types.CapPackageManager, Present: false},
	})
	outcomes, err := runner.Run(context.Background(), []Step{step})

	require.NoError(t, err)
	assert.Equal(t, types.ClassSoftFailed, outcomes[0].Class)
	assert.Contains(t, outcomes[0].Message, types.CapPackageManager)
	assert.Equal(t, 0, spy.actionRuns)
	assert.Equal(t, 0, spy.satisfiedRuns, "gated-out steps are not even checked")
}

func TestRunGateAbsentRequiredHardFails(t *testing.T) {
	spy := &spyStep{}
	step := spy.step("install package", true)
	step.Gate = types.CapPackageManager

	runner := NewRunner(Policy{}, types.CapabilityMap{})
	outcomes, err := runner.Run(context.Background(), []Step{step})

	require.Error(t, err)
	assert.Equal(t, types.ClassHardFailed, outcomes[0].Class)
}

func TestRunGatePresentProceeds(t *testing.T) {
	spy := &spyStep{}
	step := spy.step("install package", false)
	step.Gate = types.CapPackageManager

	runner := NewRunner(Policy{}, types.CapabilityMap{
		types.CapPackageManager: {Name: types.CapPackageManager, Present: true},
	})
	outcomes, err := runner.Run(context.Background(), []Step{step})

	require.NoError(t, err)
	assert.Equal(t, types.ClassSucceeded, outcomes[0].Class)
}

func TestRunDryRunSkipsActions(t *testing.T) {
	unsatisfied := &spyStep{}
	alreadyDone := &spyStep{satisfied: true}

	runner := NewRunner(Policy{DryRun: true}, nil)
	outcomes, err := runner.Run(context.Background(), []Step{
		unsatisfied.step("install", false),
		alreadyDone.step("configure", false),
	})

	require.NoError(t, err)
	assert.Equal(t, types.ClassSkipped, outcomes[0].Class)
	assert.Equal(t, types.ClassSatisfied, outcomes[1].Class)
	assert.Equal(t, 0, unsatisfied.actionRuns)
	assert.Equal(t, 0, alreadyDone.actionRuns)
}

func TestRunExplicitSkipIsNotAFailure(t *testing.T) {
	spy := &spyStep{}
	step := spy.step("install docker", true)
	step.Skip = true
	step.SkipReason = "subsystem docker excluded"

	runner := NewRunner(Policy{}, nil)
	outcomes, err := runner.Run(context.Background(), []Step{step})

	require.NoError(t, err, "a skipped required step never aborts the run")
	assert.Equal(t, types.ClassSkipped, outcomes[0].Class)
	assert.Equal(t, "subsystem docker excluded", outcomes[0].Message)
	assert.Equal(t, 0, spy.satisfiedRuns)
	assert.Equal(t, 0, spy.actionRuns)
}

func TestRunInconclusiveCheckFallsThroughToAction(t *testing.T) {
	ran := 0
	step := Step{
		Name: "flaky check",
		Satisfied: func(context.Context) (bool, string, error) {
			return false, "", fmt.Errorf("cannot stat destination")
		},
		Action: func(context.Context) error {
			ran++
			return nil
		},
	}

	runner := NewRunner(Policy{}, nil)
	outcomes, err := runner.Run(context.Background(), []Step{step})

	require.NoError(t, err)
	assert.Equal(t, types.ClassSucceeded, outcomes[0].Class)
	assert.Equal(t, 1, ran)
}

func TestRunEveryAttemptedStepHasExactlyOneOutcome(t *testing.T) {
	list := []Step{
		(&spyStep{satisfied: true}).step("a", false),
		(&spyStep{}).step("b", false),
		(&spyStep{actionErr: fmt.Errorf("nope")}).step("c", false),
	}

	runner := NewRunner(Policy{}, nil)
	outcomes, err := runner.Run(context.Background(), list)

	require.NoError(t, err)
	require.Len(t, outcomes, len(list))
	for i, o := range outcomes {
		assert.Equal(t, list[i].Name, o.Step)
		assert.False(t, o.Timestamp.IsZero())
	}
}

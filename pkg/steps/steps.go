// Package steps implements the idempotent step runner: each unit of
// installation or configuration work runs exactly when needed, and an
// optional unit's failure never sinks the whole run.
package steps

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/benchkit/benchkit/pkg/errors"
	"github.com/benchkit/benchkit/pkg/logging"
	"github.com/benchkit/benchkit/pkg/types"
)

// Step describes one idempotent unit of work.
type Step struct {
	// Name identifies the step in logs and the run report.
	Name string

	// Required marks a step whose failure halts the run (unless the
	// keep-going policy is set).
	Required bool

	// Gate names a capability the step depends on; empty means
	// ungated. A step whose gate is absent is never attempted.
	Gate string

	// Skip withholds the step entirely (e.g. its subsystem was
	// excluded with --skip). SkipReason explains why in the report.
	Skip       bool
	SkipReason string

	// Satisfied reports whether the step's goal state already holds.
	// It must be side-effect free.
	Satisfied func(ctx context.Context) (bool, string, error)

	// Action performs the work when the goal state does not hold.
	Action func(ctx context.Context) error
}

// Policy carries the ambient run options the runner consults.
type Policy struct {
	// KeepGoing tolerates required-step failures and proceeds.
	KeepGoing bool

	// DryRun withholds actions; unsatisfied steps classify as
	// skipped.
	DryRun bool
}

// Runner executes steps strictly in the order supplied. Step N's
// action never starts before step N-1's outcome is classified.
type Runner struct {
	policy Policy
	caps   types.CapabilityMap
	logger zerolog.Logger
	now    func() time.Time
}

// NewRunner builds a runner for one invocation.
func NewRunner(policy Policy, caps types.CapabilityMap) *Runner {
	return &Runner{
		policy: policy,
		caps:   caps,
		logger: logging.GetLogger("steps"),
		now:    time.Now,
	}
}

// Run attempts every step in order and returns one outcome per
// attempted step. A required step's hard failure stops all later
// steps (unless keep-going) and the returned error carries the
// hard-failure code; soft failures are recorded and the run
// continues.
func (r *Runner) Run(ctx context.Context, list []Step) ([]types.StepOutcome, error) {
	outcomes := make([]types.StepOutcome, 0, len(list))

	for _, step := range list {
		outcome := r.attempt(ctx, step)
		r.logOutcome(outcome)
		outcomes = append(outcomes, outcome)

		if outcome.Class == types.ClassHardFailed {
			return outcomes, errors.Wrapf(outcome.Err, errors.ErrStepHardFailure,
				"required step %q failed", step.Name)
		}
	}
	return outcomes, nil
}

func (r *Runner) attempt(ctx context.Context, step Step) types.StepOutcome {
	outcome := types.StepOutcome{Step: step.Name, Timestamp: r.now()}

	if step.Skip {
		outcome.Class = types.ClassSkipped
		outcome.Message = step.SkipReason
		if outcome.Message == "" {
			outcome.Message = "skipped"
		}
		return outcome
	}

	if step.Gate != "" && !r.caps.Has(step.Gate) {
		outcome.Message = "requires missing capability: " + step.Gate
		outcome.MissingCapability = step.Gate
		if step.Required && !r.policy.KeepGoing {
			outcome.Class = types.ClassHardFailed
			outcome.Err = errors.Newf(errors.ErrStepAction,
				"capability %s not available", step.Gate)
		} else {
			outcome.Class = types.ClassSoftFailed
		}
		return outcome
	}

	if step.Satisfied != nil {
		ok, msg, err := step.Satisfied(ctx)
		if err != nil {
			// An inconclusive check is treated as unsatisfied; the
			// action decides the real outcome.
			r.logger.Debug().Str("step", step.Name).Err(err).
				Msg("Satisfied check inconclusive")
		} else if ok {
			outcome.Class = types.ClassSatisfied
			outcome.Message = msg
			if outcome.Message == "" {
				outcome.Message = "already satisfied"
			}
			outcome.Timestamp = r.now()
			return outcome
		}
	}

	if r.policy.DryRun {
		outcome.Class = types.ClassSkipped
		outcome.Message = "dry run"
		outcome.Timestamp = r.now()
		return outcome
	}

	err := step.Action(ctx)
	outcome.Timestamp = r.now()
	if err == nil {
		outcome.Class = types.ClassSucceeded
		outcome.Message = "done"
		return outcome
	}

	outcome.Err = err
	outcome.Message = err.Error()
	if step.Required && !r.policy.KeepGoing {
		outcome.Class = types.ClassHardFailed
	} else {
		outcome.Class = types.ClassSoftFailed
	}
	return outcome
}

// logOutcome emits exactly one log entry per classification, at the
// severity the classification maps to.
func (r *Runner) logOutcome(o types.StepOutcome) {
	event := r.logger.Info()
	switch o.Class {
	case types.ClassSoftFailed:
		event = r.logger.Warn()
	case types.ClassHardFailed:
		event = r.logger.Error()
	}
	if o.Err != nil {
		event = event.Err(o.Err)
	}
	event.Str("step", o.Step).
		Str("outcome", string(o.Class)).
		Msg(o.Message)
}

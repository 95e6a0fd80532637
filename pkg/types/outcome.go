package types

import "time"

// Classification is the terminal state of one step attempt.
type Classification string

const (
	// ClassSatisfied means the step's goal state already held and the
	// action was never invoked.
	ClassSatisfied Classification = "already-satisfied"

	// ClassSucceeded means the action ran and reported success.
	ClassSucceeded Classification = "succeeded"

	// ClassSoftFailed means the action failed but the step was
	// optional, its gating capability was absent, or the keep-going
	// policy tolerated the failure.
	ClassSoftFailed Classification = "soft-failed"

	// ClassHardFailed means a required step's action failed and the
	// run was halted.
	ClassHardFailed Classification = "hard-failed"

	// ClassSkipped means the action was withheld by dry-run mode or
	// an explicit subsystem skip, not by failure.
	ClassSkipped Classification = "skipped"
)

// Level maps a classification to the severity its log entry carries.
func (c Classification) Level() string {
	switch c {
	case ClassSatisfied, ClassSkipped:
		return "info"
	case ClassSucceeded:
		return "success"
	case ClassSoftFailed:
		return "warning"
	case ClassHardFailed:
		return "error"
	default:
		return "info"
	}
}

// StepOutcome is the immutable result of attempting one step. Every
// attempted step produces exactly one outcome.
type StepOutcome struct {
	Step      string
	Class     Classification
	Message   string
	Timestamp time.Time
	Err       error

	// MissingCapability names the gate that held the step back, when
	// that is why it did not run.
	MissingCapability string
}

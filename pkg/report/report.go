// Package report turns the outcomes of a run into the final summary
// printed to the user: what was already in place, what changed, what
// failed, and what to do about the failures.
package report

import (
	"sort"
	"time"

	"github.com/benchkit/benchkit/pkg/types"
)

// Report is the aggregated result of a single invocation.
type Report struct {
	// Outcomes in execution order, one per attempted step.
	Outcomes []types.StepOutcome

	// Capabilities detected before any step ran.
	Capabilities types.CapabilityMap

	// FinalState is the run state the invocation ended in.
	FinalState types.RunState

	// LogFile is the path of this invocation's log file.
	LogFile string

	// Started and Finished bound the run for the duration line.
	Started  time.Time
	Finished time.Time
}

// Counts holds per-classification outcome totals.
type Counts struct {
	Satisfied int
	Succeeded int
	SoftFails int
	HardFails int
	Skipped   int
}

// Count tallies outcomes per classification.
func (r *Report) Count() Counts {
	var c Counts
	for _, o := range r.Outcomes {
		switch o.Class {
		case types.ClassSatisfied:
			c.Satisfied++
		case types.ClassSucceeded:
			c.Succeeded++
		case types.ClassSoftFailed:
			c.SoftFails++
		case types.ClassHardFailed:
			c.HardFails++
		case types.ClassSkipped:
			c.Skipped++
		}
	}
	return c
}

// Grouped returns outcomes bucketed by classification, preserving
// execution order within each bucket.
func (r *Report) Grouped() map[types.Classification][]types.StepOutcome {
	groups := make(map[types.Classification][]types.StepOutcome)
	for _, o := range r.Outcomes {
		groups[o.Class] = append(groups[o.Class], o)
	}
	return groups
}

// Succeeded reports whether the run as a whole went fine: it reached
// a terminal state other than Aborted and no step hard-failed.
func (r *Report) Succeeded() bool {
	return r.FinalState == types.StateDone && r.Count().HardFails == 0
}

// ExitCode maps the report onto the process exit code. Soft failures
// never affect it.
func (r *Report) ExitCode() int {
	if r.Succeeded() {
		return 0
	}
	return 1
}

// Hints derives remediation advice from the detected capabilities and
// the failed outcomes. Every hint is a single actionable sentence.
func (r *Report) Hints() []string {
	seen := make(map[string]bool)
	var hints []string
	add := func(h string) {
		if h != "" && !seen[h] {
			seen[h] = true
			hints = append(hints, h)
		}
	}

	if !r.Capabilities.Has(types.CapPackageManager) {
		add("No package manager was found; install one (winget, apt-get or brew) and re-run.")
	}

	for _, o := range r.Outcomes {
		if o.Class != types.ClassSoftFailed && o.Class != types.ClassHardFailed {
			continue
		}
		add(hintFor(o))
	}

	sort.Strings(hints)
	return hints
}

// hintMap pairs a capability with the advice shown when a step was
// held back by its absence.
var hintMap = map[string]string{
	types.CapPackageManager:   "Install a package manager (winget, apt-get or brew) to enable package steps.",
	types.CapEditorCLI:        "Put the 'code' command on PATH (VS Code: Shell Command: Install 'code') to enable extension steps.",
	types.CapContainerRuntime: "Install Docker and start its daemon to enable container steps.",
	types.CapLinuxSubsystem:   "Enable WSL (wsl --install) to enable Linux subsystem steps.",
}

func hintFor(o types.StepOutcome) string {
	if h, ok := hintMap[o.MissingCapability]; ok {
		return h
	}
	return ""
}

// Package bootstrap assembles the pieces of a run: elevation, tool
// probing, step construction from the manifest, execution, and the
// final report. It owns the run state machine.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/benchkit/benchkit/pkg/checks"
	"github.com/benchkit/benchkit/pkg/elevation"
	"github.com/benchkit/benchkit/pkg/invocation"
	"github.com/benchkit/benchkit/pkg/logging"
	"github.com/benchkit/benchkit/pkg/manifest"
	"github.com/benchkit/benchkit/pkg/probe"
	"github.com/benchkit/benchkit/pkg/report"
	"github.com/benchkit/benchkit/pkg/steps"
	"github.com/benchkit/benchkit/pkg/types"
)

// Confirmer asks the user before actions run. prompt.Prompter
// satisfies it.
type Confirmer interface {
	Confirm(question string, def bool, assumeYes bool) bool
}

// Elevator runs the elevation decision. elevation.Guard satisfies it.
type Elevator interface {
	Ensure(ctx context.Context, command string, inv *invocation.Context) (elevation.Decision, int, error)
}

// Options carries everything a run needs. All fields except Manifest
// and Invocation have working defaults filled in by Run.
type Options struct {
	Invocation *invocation.Context
	Manifest   *manifest.Manifest

	// Command is the subcommand to forward on an elevated relaunch.
	Command string

	FS        types.FS
	Runner    types.CommandRunner
	Guard     Elevator
	Confirmer Confirmer

	// GOOS selects the platform probes; defaults to runtime.GOOS.
	GOOS string

	Now func() time.Time
}

// Result is what a finished (or aborted) run hands back to the
// command layer.
type Result struct {
	Report *report.Report

	// ExitCode is the code the process must exit with. When Relaunched
	// is set it is the elevated child's exit code.
	ExitCode int

	// Relaunched means an elevated copy did the work; Report is nil
	// and nothing further may execute in this process.
	Relaunched bool
}

// Run executes one full invocation. An error return means the run
// could not even be attempted (bad manifest wiring, elevation
// machinery failure); step failures are reported through the Result.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.GetLogger("bootstrap")
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}

	started := opts.Now()
	state := types.StateStart

	// Elevation. Dry runs have no side effects and never elevate.
	state, _ = types.Transition(state, types.StateElevating)
	if opts.Guard != nil && !opts.Invocation.DryRun {
		decision, code, err := opts.Guard.Ensure(ctx, opts.Command, opts.Invocation)
		switch decision {
		case elevation.ExitRelaunched:
			return &Result{ExitCode: code, Relaunched: true}, nil
		case elevation.Declined:
			state, _ = types.Transition(state, types.StateAborted)
			logger.Error().Err(err).Msg("Elevation declined")
			return &Result{
				Report:   abortedReport(started, opts.Now(), state),
				ExitCode: 1,
			}, err
		}
	}

	// Probing.
	state, _ = types.Transition(state, types.StateProbing)
	caps := probe.Run(ctx, opts.Runner, probe.Defaults(opts.GOOS))

	list := BuildSteps(opts.Manifest, caps, opts.Invocation, opts.FS, opts.Runner)
	logger.Info().Int("steps", len(list)).Msg("Run plan assembled")

	// Confirmation happens once, before any action.
	state, _ = types.Transition(state, types.StateRunning)
	if !opts.Invocation.DryRun && opts.Confirmer != nil && len(list) > 0 {
		question := fmt.Sprintf("Run %d setup steps?", len(list))
		if !opts.Confirmer.Confirm(question, true, opts.Invocation.Yes) {
			state, _ = types.Transition(state, types.StateAborted)
			rep := abortedReport(started, opts.Now(), state)
			rep.Capabilities = caps
			return &Result{Report: rep, ExitCode: 1}, nil
		}
	}

	// Running.
	runner := steps.NewRunner(steps.Policy{
		KeepGoing: opts.Invocation.KeepGoing,
		DryRun:    opts.Invocation.DryRun,
	}, caps)
	outcomes, runErr := runner.Run(ctx, list)

	if runErr != nil {
		state, _ = types.Transition(state, types.StateAborted)
	} else {
		state, _ = types.Transition(state, types.StateReporting)
		state, _ = types.Transition(state, types.StateDone)
	}

	rep := &report.Report{
		Outcomes:     outcomes,
		Capabilities: caps,
		FinalState:   state,
		LogFile:      logging.LogFilePath(),
		Started:      started,
		Finished:     opts.Now(),
	}
	return &Result{Report: rep, ExitCode: rep.ExitCode()}, nil
}

func abortedReport(started, finished time.Time, state types.RunState) *report.Report {
	return &report.Report{
		FinalState: state,
		LogFile:    logging.LogFilePath(),
		Started:    started,
		Finished:   finished,
	}
}

// BuildSteps translates the manifest into the ordered step list:
// packages first, then extensions, files, and package sources.
func BuildSteps(m *manifest.Manifest, caps types.CapabilityMap, inv *invocation.Context, fsys types.FS, runner types.CommandRunner) []steps.Step {
	skip := inv.SkipSet()
	var list []steps.Step

	pm, pmErr := checks.ManagerFor(caps[types.CapPackageManager].Command)
	for _, p := range m.Packages {
		step := steps.Step{
			Name:     "install " + p.DisplayName(),
			Required: p.Required,
			Gate:     types.CapPackageManager,
		}
		markSkipped(&step, p.Subsystem, skip)
		if pmErr != nil {
			err := pmErr
			step.Action = func(context.Context) error { return err }
		} else {
			step.Satisfied = checks.PackageInstalled(runner, pm, p.ID)
			step.Action = checks.InstallPackage(runner, pm, p.ID)
		}
		list = append(list, step)
	}

	editorCmd := caps[types.CapEditorCLI].Command
	if editorCmd == "" {
		editorCmd = "code"
	}
	for _, e := range m.Extensions {
		step := steps.Step{
			Name:      "install extension " + e.ID,
			Required:  e.Required,
			Gate:      types.CapEditorCLI,
			Satisfied: checks.ExtensionInstalled(runner, editorCmd, e.ID),
			Action:    checks.InstallExtension(runner, editorCmd, e.ID),
		}
		markSkipped(&step, e.Subsystem, skip)
		list = append(list, step)
	}

	for _, f := range m.Files {
		src, dest := ExpandHome(f.Source), ExpandHome(f.Dest)
		step := steps.Step{
			Name:      "copy " + filepath.Base(f.Dest),
			Required:  f.Required,
			Satisfied: checks.FileMatches(fsys, src, dest),
			Action:    checks.CopyFile(fsys, src, dest),
		}
		markSkipped(&step, f.Subsystem, skip)
		list = append(list, step)
	}

	for _, s := range m.Sources {
		path := ExpandHome(s.Path)
		step := steps.Step{
			Name:      "register package source " + s.Key,
			Required:  s.Required,
			Satisfied: checks.XMLSourcePresent(fsys, path, s.Key, s.Value),
			Action:    checks.EnsureXMLSource(fsys, path, s.Key, s.Value),
		}
		markSkipped(&step, s.Subsystem, skip)
		list = append(list, step)
	}

	for _, e := range m.Env {
		file := e.File
		if file == "" {
			file = "~/.profile"
		}
		path := ExpandHome(file)
		line := fmt.Sprintf("export %s=%q", e.Name, e.Value)
		step := steps.Step{
			Name:      "export " + e.Name,
			Required:  e.Required,
			Satisfied: checks.LineInFile(fsys, path, line),
			Action:    checks.AppendLine(fsys, path, line),
		}
		markSkipped(&step, e.Subsystem, skip)
		list = append(list, step)
	}

	return list
}

func markSkipped(step *steps.Step, subsystem string, skip map[string]bool) {
	if subsystem == "" {
		return
	}
	if skip[strings.ToLower(subsystem)] {
		step.Skip = true
		step.SkipReason = "subsystem " + subsystem + " excluded"
	}
}

// ExpandHome resolves a leading ~ to the current user's home
// directory. Paths without one come back unchanged.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

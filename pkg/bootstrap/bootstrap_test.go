package bootstrap_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchkit/benchkit/pkg/bootstrap"
	"github.com/benchkit/benchkit/pkg/elevation"
	"github.com/benchkit/benchkit/pkg/invocation"
	"github.com/benchkit/benchkit/pkg/manifest"
	"github.com/benchkit/benchkit/pkg/testutil"
	"github.com/benchkit/benchkit/pkg/types"
)

// scriptedRunner maps full command lines to canned results.
type scriptedRunner struct {
	outputs map[string]string
	fail    map[string]error
	calls   []string
}

func newScriptedRunner() *scriptedRunner {
	return &scriptedRunner{outputs: map[string]string{}, fail: map[string]error{}}
}

func (r *scriptedRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, line)
	if err, ok := r.fail[line]; ok {
		return "", err
	}
	if out, ok := r.outputs[line]; ok {
		return out, nil
	}
	return "", fmt.Errorf("command not scripted: %s", line)
}

type fakeGuard struct {
	decision elevation.Decision
	code     int
	err      error
	calls    int
}

func (g *fakeGuard) Ensure(context.Context, string, *invocation.Context) (elevation.Decision, int, error) {
	g.calls++
	return g.decision, g.code, g.err
}

type fakeConfirmer struct {
	answer bool
	asked  []string
}

func (c *fakeConfirmer) Confirm(question string, _ bool, assumeYes bool) bool {
	c.asked = append(c.asked, question)
	return assumeYes || c.answer
}

// linuxTools scripts a minimal healthy linux host.
func linuxTools(r *scriptedRunner) {
	r.outputs["git --version"] = "git version 2.45.1"
	r.outputs["apt-get --version"] = "apt 2.7.14 (amd64)"
	r.fail["code --version"] = fmt.Errorf("executable file not found")
	r.fail["docker --version"] = fmt.Errorf("executable file not found")
	r.fail["node --version"] = fmt.Errorf("executable file not found")
	r.fail["go version"] = fmt.Errorf("executable file not found")
}

func baseOptions(r *scriptedRunner, m *manifest.Manifest, inv *invocation.Context) bootstrap.Options {
	return bootstrap.Options{
		Invocation: inv,
		Manifest:   m,
		Command:    "up",
		FS:         testutil.NewMemoryFS(),
		Runner:     r,
		Guard:      &fakeGuard{decision: elevation.Proceed},
		Confirmer:  &fakeConfirmer{answer: true},
		GOOS:       "linux",
	}
}

func TestRunInstallsMissingPackage(t *testing.T) {
	r := newScriptedRunner()
	linuxTools(r)
	r.fail["apt-get -qq list --installed ripgrep"] = fmt.Errorf("exit status 1")
	r.outputs["apt-get install -y ripgrep"] = "Setting up ripgrep"

	m := &manifest.Manifest{Packages: []manifest.Package{{ID: "ripgrep"}}}
	res, err := bootstrap.Run(context.Background(), baseOptions(r, m, &invocation.Context{}))
	require.NoError(t, err)

	require.NotNil(t, res.Report)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, types.StateDone, res.Report.FinalState)
	require.Len(t, res.Report.Outcomes, 1)
	assert.Equal(t, types.ClassSucceeded, res.Report.Outcomes[0].Class)
	assert.Contains(t, r.calls, "apt-get install -y ripgrep")
}

func TestRunAlreadySatisfiedTouchesNothing(t *testing.T) {
	r := newScriptedRunner()
	linuxTools(r)
	r.outputs["apt-get -qq list --installed ripgrep"] = "ripgrep/stable,now 14.1.0 amd64 [installed]"

	m := &manifest.Manifest{Packages: []manifest.Package{{ID: "ripgrep"}}}
	res, err := bootstrap.Run(context.Background(), baseOptions(r, m, &invocation.Context{}))
	require.NoError(t, err)

	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, types.ClassSatisfied, res.Report.Outcomes[0].Class)
	assert.NotContains(t, r.calls, "apt-get install -y ripgrep")
}

func TestRunRelaunchedExitsWithChildCode(t *testing.T) {
	r := newScriptedRunner()
	m := &manifest.Manifest{}
	opts := baseOptions(r, m, &invocation.Context{})
	opts.Guard = &fakeGuard{decision: elevation.ExitRelaunched, code: 7}

	res, err := bootstrap.Run(context.Background(), opts)
	require.NoError(t, err)

	assert.True(t, res.Relaunched)
	assert.Equal(t, 7, res.ExitCode)
	assert.Nil(t, res.Report, "the non-elevated process must run nothing")
	assert.Empty(t, r.calls, "no probe may run before exiting")
}

func TestRunElevationDeclinedAborts(t *testing.T) {
	r := newScriptedRunner()
	opts := baseOptions(r, &manifest.Manifest{}, &invocation.Context{})
	opts.Guard = &fakeGuard{decision: elevation.Declined, code: 1, err: fmt.Errorf("refused")}

	res, err := bootstrap.Run(context.Background(), opts)
	require.Error(t, err)

	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, types.StateAborted, res.Report.FinalState)
	assert.Empty(t, r.calls)
}

func TestRunDryRunSkipsElevation(t *testing.T) {
	r := newScriptedRunner()
	linuxTools(r)
	r.fail["apt-get -qq list --installed ripgrep"] = fmt.Errorf("exit status 1")

	guard := &fakeGuard{decision: elevation.Declined, code: 1, err: fmt.Errorf("refused")}
	m := &manifest.Manifest{Packages: []manifest.Package{{ID: "ripgrep"}}}
	opts := baseOptions(r, m, &invocation.Context{DryRun: true})
	opts.Guard = guard

	res, err := bootstrap.Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 0, guard.calls, "dry runs never elevate")
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, types.ClassSkipped, res.Report.Outcomes[0].Class)
	assert.NotContains(t, r.calls, "apt-get install -y ripgrep")
}

func TestRunConfirmationDeclinedAborts(t *testing.T) {
	r := newScriptedRunner()
	linuxTools(r)

	m := &manifest.Manifest{Packages: []manifest.Package{{ID: "ripgrep"}}}
	opts := baseOptions(r, m, &invocation.Context{})
	opts.Confirmer = &fakeConfirmer{answer: false}

	res, err := bootstrap.Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, types.StateAborted, res.Report.FinalState)
	assert.Empty(t, res.Report.Outcomes)
}

func TestRunYesBypassesConfirmation(t *testing.T) {
	r := newScriptedRunner()
	linuxTools(r)
	r.outputs["apt-get -qq list --installed ripgrep"] = "ripgrep/stable,now 14.1.0 amd64 [installed]"

	m := &manifest.Manifest{Packages: []manifest.Package{{ID: "ripgrep"}}}
	opts := baseOptions(r, m, &invocation.Context{Yes: true})
	opts.Confirmer = &fakeConfirmer{answer: false}

	res, err := bootstrap.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
}

func TestRunRequiredFailureAbortsWithReport(t *testing.T) {
	r := newScriptedRunner()
	linuxTools(r)
	r.fail["apt-get -qq list --installed ripgrep"] = fmt.Errorf("exit status 1")
	r.fail["apt-get install -y ripgrep"] = fmt.Errorf("exit status 100")
	r.fail["apt-get -qq list --installed fd-find"] = fmt.Errorf("exit status 1")

	m := &manifest.Manifest{Packages: []manifest.Package{
		{ID: "ripgrep", Required: true},
		{ID: "fd-find"},
	}}
	res, err := bootstrap.Run(context.Background(), baseOptions(r, m, &invocation.Context{}))
	require.NoError(t, err, "step failures surface through the report, not the error")

	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, types.StateAborted, res.Report.FinalState)
	require.Len(t, res.Report.Outcomes, 1, "nothing runs after a hard failure")
	assert.Equal(t, types.ClassHardFailed, res.Report.Outcomes[0].Class)
}

func TestRunOptionalFailureKeepsExitZero(t *testing.T) {
	r := newScriptedRunner()
	linuxTools(r)
	r.fail["apt-get -qq list --installed ripgrep"] = fmt.Errorf("exit status 1")
	r.fail["apt-get install -y ripgrep"] = fmt.Errorf("exit status 100")

	m := &manifest.Manifest{Packages: []manifest.Package{{ID: "ripgrep"}}}
	res, err := bootstrap.Run(context.Background(), baseOptions(r, m, &invocation.Context{}))
	require.NoError(t, err)

	assert.Equal(t, 0, res.ExitCode, "optional failures never change the exit code")
	assert.Equal(t, types.StateDone, res.Report.FinalState)
	assert.Equal(t, types.ClassSoftFailed, res.Report.Outcomes[0].Class)
}

func TestBuildStepsSkipsExcludedSubsystem(t *testing.T) {
	m := &manifest.Manifest{Packages: []manifest.Package{
		{ID: "docker-ce", Subsystem: "docker"},
		{ID: "ripgrep"},
	}}
	caps := types.CapabilityMap{
		types.CapPackageManager: {Name: types.CapPackageManager, Present: true, Command: "apt-get"},
	}
	inv := &invocation.Context{Skip: []string{"Docker"}}

	list := bootstrap.BuildSteps(m, caps, inv, testutil.NewMemoryFS(), newScriptedRunner())
	require.Len(t, list, 2)
	assert.True(t, list[0].Skip)
	assert.Contains(t, list[0].SkipReason, "docker")
	assert.False(t, list[1].Skip)
}

func TestBuildStepsGatesExtensionsOnEditorCLI(t *testing.T) {
	m := &manifest.Manifest{Extensions: []manifest.Extension{{ID: "golang.go"}}}
	list := bootstrap.BuildSteps(m, types.CapabilityMap{}, &invocation.Context{}, testutil.NewMemoryFS(), newScriptedRunner())

	require.Len(t, list, 1)
	assert.Equal(t, types.CapEditorCLI, list[0].Gate)
	assert.Equal(t, "install extension golang.go", list[0].Name)
}

func TestBuildStepsOrdering(t *testing.T) {
	m := &manifest.Manifest{
		Packages:   []manifest.Package{{ID: "git"}},
		Extensions: []manifest.Extension{{ID: "golang.go"}},
		Files:      []manifest.File{{Source: "a", Dest: "b/settings.json"}},
		Sources:    []manifest.Source{{Path: "NuGet.Config", Key: "internal", Value: "https://x"}},
		Env:        []manifest.Env{{Name: "GOPATH", Value: "~/go"}},
	}
	list := bootstrap.BuildSteps(m, types.CapabilityMap{}, &invocation.Context{}, testutil.NewMemoryFS(), newScriptedRunner())

	require.Len(t, list, 5)
	assert.Equal(t, "install git", list[0].Name)
	assert.Equal(t, "install extension golang.go", list[1].Name)
	assert.Equal(t, "copy settings.json", list[2].Name)
	assert.Equal(t, "register package source internal", list[3].Name)
	assert.Equal(t, "export GOPATH", list[4].Name)
}

func TestBuildStepsEnvIdempotence(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	m := &manifest.Manifest{Env: []manifest.Env{{Name: "GOPATH", Value: "~/go", File: "/home/dev/.profile"}}}
	list := bootstrap.BuildSteps(m, types.CapabilityMap{}, &invocation.Context{}, fsys, newScriptedRunner())
	require.Len(t, list, 1)

	ctx := context.Background()
	ok, _, err := list[0].Satisfied(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, list[0].Action(ctx))
	ok, _, err = list[0].Satisfied(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "the appended export line satisfies the next run")
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/dev")
	assert.Equal(t, "/home/dev/.config/x", bootstrap.ExpandHome("~/.config/x"))
	assert.Equal(t, "/home/dev", bootstrap.ExpandHome("~"))
	assert.Equal(t, "/etc/x", bootstrap.ExpandHome("/etc/x"))
	assert.Equal(t, "rel/x", bootstrap.ExpandHome("rel/x"))
}

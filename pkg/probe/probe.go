// Package probe answers "is external tool X present, and which
// version?" for every dependency later steps may gate on. Probes are
// side-effect free: a version query or a path lookup, never an
// install. Any failure maps to "absent"; a probe never aborts a run.
package probe

import (
	"context"
	"regexp"

	"github.com/benchkit/benchkit/pkg/logging"
	"github.com/benchkit/benchkit/pkg/types"
)

// Probe describes one capability query.
type Probe struct {
	// Name is the canonical capability name (see pkg/types).
	Name string

	// Command and Args form the version query, e.g. `git --version`.
	Command string
	Args    []string

	// Parse extracts a version string from the query output. Nil
	// keeps the raw first line.
	Parse func(output string) string
}

var (
	semverRe  = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)*)`)
	gitRe     = regexp.MustCompile(`git version (\d+\.\d+(?:\.\d+)*)`)
	goRe      = regexp.MustCompile(`go(\d+\.\d+(?:\.\d+)*)`)
	dockerRe  = regexp.MustCompile(`Docker version (\d+\.\d+(?:\.\d+)*)`)
	firstLine = regexp.MustCompile(`^[^\r\n]*`)
)

func semver(out string) string {
	if m := semverRe.FindStringSubmatch(out); len(m) > 1 {
		return m[1]
	}
	return ""
}

func matchOr(re *regexp.Regexp, fallback func(string) string) func(string) string {
	return func(out string) string {
		if m := re.FindStringSubmatch(out); len(m) > 1 {
			return m[1]
		}
		return fallback(out)
	}
}

// Defaults returns the static probe list for the given GOOS value.
// Probes are independent of one another and run in any order.
func Defaults(goos string) []Probe {
	probes := []Probe{
		{Name: types.CapGit, Command: "git", Args: []string{"--version"}, Parse: matchOr(gitRe, semver)},
		{Name: types.CapEditorCLI, Command: "code", Args: []string{"--version"}, Parse: semver},
		{Name: types.CapContainerRuntime, Command: "docker", Args: []string{"--version"}, Parse: matchOr(dockerRe, semver)},
		{Name: types.CapNodeRuntime, Command: "node", Args: []string{"--version"}, Parse: semver},
		{Name: types.CapGoRuntime, Command: "go", Args: []string{"version"}, Parse: matchOr(goRe, semver)},
	}

	if goos == "windows" {
		probes = append(probes,
			Probe{Name: types.CapPackageManager, Command: "winget", Args: []string{"--version"}, Parse: semver},
			Probe{Name: types.CapLinuxSubsystem, Command: "wsl", Args: []string{"--status"}},
			Probe{Name: types.CapTerminal, Command: "wt", Args: []string{"--version"}, Parse: semver},
		)
		return probes
	}

	if goos == "darwin" {
		probes = append(probes,
			Probe{Name: types.CapPackageManager, Command: "brew", Args: []string{"--version"}, Parse: semver})
		return probes
	}

	probes = append(probes,
		Probe{Name: types.CapPackageManager, Command: "apt-get", Args: []string{"--version"}, Parse: semver})
	return probes
}

// Run evaluates every probe against the runner and returns the
// capability map. Probing is re-done on every invocation; nothing is
// cached across runs.
func Run(ctx context.Context, runner types.CommandRunner, probes []Probe) types.CapabilityMap {
	logger := logging.GetLogger("probe")
	caps := make(types.CapabilityMap, len(probes))

	for _, p := range probes {
		out, err := runner.Run(ctx, p.Command, p.Args...)
		result := types.Capability{Name: p.Name, Command: p.Command}

		if err != nil {
			logger.Debug().Str("capability", p.Name).Str("command", p.Command).
				Err(err).Msg("Capability absent")
			caps[p.Name] = result
			continue
		}

		result.Present = true
		if p.Parse != nil {
			result.Version = p.Parse(out)
		} else {
			result.Version = firstLine.FindString(out)
		}
		logger.Debug().Str("capability", p.Name).Str("version", result.Version).
			Msg("Capability present")
		caps[p.Name] = result
	}

	return caps
}

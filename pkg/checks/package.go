package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/benchkit/benchkit/pkg/errors"
	"github.com/benchkit/benchkit/pkg/types"
)

// PackageManager abstracts the platform package manager's install and
// list surfaces. Only the flags the orchestration needs are modeled;
// the manager's own semantics stay external.
type PackageManager struct {
	// Command is the manager binary (winget, apt-get, brew).
	Command string

	// ListArgs asks whether a package is installed; the id is
	// appended.
	ListArgs []string

	// InstallArgs performs an unattended install; the id is appended.
	InstallArgs []string
}

// ManagerFor returns the conventions for a probed package-manager
// command.
func ManagerFor(command string) (PackageManager, error) {
	switch command {
	case "winget":
		return PackageManager{
			Command:     "winget",
			ListArgs:    []string{"list", "--exact", "--id"},
			InstallArgs: []string{"install", "--exact", "--silent", "--accept-package-agreements", "--accept-source-agreements", "--id"},
		}, nil
	case "apt-get":
		return PackageManager{
			Command:     "apt-get",
			ListArgs:    []string{"-qq", "list", "--installed"},
			InstallArgs: []string{"install", "-y"},
		}, nil
	case "brew":
		return PackageManager{
			Command:     "brew",
			ListArgs:    []string{"list", "--versions"},
			InstallArgs: []string{"install"},
		}, nil
	}
	return PackageManager{}, errors.Newf(errors.ErrInvalidInput, "unknown package manager %q", command)
}

// PackageInstalled queries the manager's list surface for the id. A
// zero exit with the id echoed back counts as installed.
func PackageInstalled(runner types.CommandRunner, pm PackageManager, id string) func(context.Context) (bool, string, error) {
	return func(ctx context.Context) (bool, string, error) {
		out, err := runner.Run(ctx, pm.Command, append(pm.ListArgs, id)...)
		if err != nil {
			return false, "", nil
		}
		if strings.Contains(out, id) {
			return true, fmt.Sprintf("package %s already installed", id), nil
		}
		return false, "", nil
	}
}

// InstallPackage runs the manager's unattended install for the id.
func InstallPackage(runner types.CommandRunner, pm PackageManager, id string) func(context.Context) error {
	return func(ctx context.Context) error {
		out, err := runner.Run(ctx, pm.Command, append(pm.InstallArgs, id)...)
		if err != nil {
			return errors.Wrapf(err, errors.ErrCommandExit,
				"%s install %s failed: %s", pm.Command, id, lastLine(out))
		}
		return nil
	}
}

// ExtensionInstalled asks the editor CLI for its installed extension
// list and looks for the identifier, case-insensitively (the editor
// reports lowercased ids).
func ExtensionInstalled(runner types.CommandRunner, editorCmd, ext string) func(context.Context) (bool, string, error) {
	return func(ctx context.Context) (bool, string, error) {
		out, err := runner.Run(ctx, editorCmd, "--list-extensions")
		if err != nil {
			return false, "", nil
		}
		for _, line := range strings.Split(out, "\n") {
			if strings.EqualFold(strings.TrimSpace(line), ext) {
				return true, fmt.Sprintf("extension %s already installed", ext), nil
			}
		}
		return false, "", nil
	}
}

// InstallExtension registers an editor extension through the CLI.
func InstallExtension(runner types.CommandRunner, editorCmd, ext string) func(context.Context) error {
	return func(ctx context.Context) error {
		out, err := runner.Run(ctx, editorCmd, "--install-extension", ext, "--force")
		if err != nil {
			return errors.Wrapf(err, errors.ErrCommandExit,
				"installing extension %s failed: %s", ext, lastLine(out))
		}
		return nil
	}
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return lines[len(lines)-1]
}

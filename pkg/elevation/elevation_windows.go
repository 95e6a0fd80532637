//go:build windows

package elevation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/windows"

	"github.com/benchkit/benchkit/pkg/execx"
)

// declinedExitCode is the sentinel the relaunch script exits with
// when Start-Process throws, which is how a refused UAC prompt
// surfaces.
const declinedExitCode = 223

// windowsChecker queries the process token's elevation bit.
type windowsChecker struct{}

func newChecker() Checker { return windowsChecker{} }

func (windowsChecker) Elevated() (bool, error) {
	return windows.GetCurrentProcessToken().IsElevated(), nil
}

// runasLauncher relaunches through PowerShell's Start-Process with
// the RunAs verb, which raises the UAC consent prompt. -Wait plus
// -PassThru lets the original process block and forward the elevated
// process's exit code.
type runasLauncher struct{}

func newLauncher() Launcher { return runasLauncher{} }

func (runasLauncher) Relaunch(ctx context.Context, exe string, args []string) (int, error) {
	// ComposeCommandLine applies the Windows quoting rules, so flag
	// values with spaces or quotes survive the round trip.
	argList := windows.ComposeCommandLine(args)
	script := fmt.Sprintf(
		`try { $p = Start-Process -FilePath '%s' -ArgumentList '%s' -Verb RunAs -Wait -PassThru -ErrorAction Stop; exit $p.ExitCode } catch { exit %d }`,
		escapeSingleQuotes(exe), escapeSingleQuotes(argList), declinedExitCode)

	cmd := exec.CommandContext(ctx, "powershell.exe",
		"-NoProfile", "-NonInteractive", "-Command", script)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := execx.ExitCode(err)
		if code == declinedExitCode {
			return 1, fmt.Errorf("elevation prompt was declined")
		}
		return code, nil
	}
	return 1, err
}

func escapeSingleQuotes(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			out = append(out, '\'', '\'')
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

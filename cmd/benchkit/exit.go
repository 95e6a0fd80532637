package benchkit

import "fmt"

// exitError carries a specific process exit code up to main. It is
// how a relaunched elevated run's code survives the cobra error path.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// ExitCode maps an Execute error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := err.(exitError); ok {
		return e.code
	}
	return 1
}

// IsExitError reports whether err only carries an exit code and its
// message should not be printed.
func IsExitError(err error) bool {
	_, ok := err.(exitError)
	return ok
}

package types

import (
	"context"
	"io/fs"
)

// FS is the filesystem interface required for benchkit's file steps
// and idempotence checks. Production code uses the synthfs OS
// implementation; tests use an in-memory one.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
}

// CommandRunner executes an external command and returns its combined
// output. A non-nil error covers both "binary missing" and non-zero
// exit; callers that care which can use execx.ExitCode.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

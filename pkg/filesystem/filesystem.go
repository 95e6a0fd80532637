// Package filesystem provides the production types.FS
// implementations. Steps go through types.FS so tests can swap in a
// memory filesystem and assert that probing never writes.
package filesystem

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	synthfsfs "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"

	"github.com/benchkit/benchkit/pkg/types"
)

// osFS implements types.FS using the OS filesystem
type osFS struct{}

// NewOS creates a new OS filesystem implementation
func NewOS() types.FS {
	return &osFS{}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (o *osFS) Remove(name string) error {
	return os.Remove(name)
}

// synthFS implements types.FS on a synthfs path-aware filesystem,
// which accepts absolute paths directly.
type synthFS struct {
	fs synthfsfs.FullFileSystem
}

// NewSynth creates a types.FS backed by synthfs rooted at /.
func NewSynth() types.FS {
	osfs := synthfsfs.NewOSFileSystem("/")
	return &synthFS{fs: synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()}
}

func (s *synthFS) Stat(name string) (fs.FileInfo, error) {
	return s.fs.Stat(name)
}

func (s *synthFS) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(s.fs, name)
}

func (s *synthFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return s.fs.WriteFile(name, data, perm)
}

func (s *synthFS) MkdirAll(path string, perm fs.FileMode) error {
	return s.fs.MkdirAll(path, perm)
}

func (s *synthFS) Remove(name string) error {
	return s.fs.Remove(name)
}

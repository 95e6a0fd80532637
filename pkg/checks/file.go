// Package checks provides the reusable "already satisfied?"
// predicates and matching actions the bootstrap steps are built
// from: config-file copies, package installs, editor extensions and
// XML package-source registration. Predicates are side-effect free;
// each has a paired action that establishes the goal state.
package checks

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"

	stderrors "errors"

	"github.com/benchkit/benchkit/pkg/errors"
	"github.com/benchkit/benchkit/pkg/types"
)

// FileMatches reports whether dest exists with exactly src's content,
// comparing sha256 digests.
func FileMatches(fsys types.FS, src, dest string) func(context.Context) (bool, string, error) {
	return func(context.Context) (bool, string, error) {
		srcSum, err := checksum(fsys, src)
		if err != nil {
			return false, "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read source %s", src)
		}

		destSum, err := checksum(fsys, dest)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return false, "", nil
			}
			return false, "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read destination %s", dest)
		}

		if srcSum == destSum {
			return true, fmt.Sprintf("%s already matches source", dest), nil
		}
		return false, "", nil
	}
}

// CopyFile writes src's content to dest, creating parent directories
// as needed.
func CopyFile(fsys types.FS, src, dest string) func(context.Context) error {
	return func(context.Context) error {
		content, err := fsys.ReadFile(src)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot read source %s", src)
		}
		if err := fsys.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", dest)
		}
		if err := fsys.WriteFile(dest, content, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dest)
		}
		return nil
	}
}

func checksum(fsys types.FS, path string) (string, error) {
	content, err := fsys.ReadFile(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", sha256.Sum256(content)), nil
}

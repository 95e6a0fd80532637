package checks

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	stderrors "errors"

	"github.com/benchkit/benchkit/pkg/errors"
	"github.com/benchkit/benchkit/pkg/types"
)

// LineInFile reports whether path contains line exactly (ignoring
// surrounding whitespace). A missing file is simply unsatisfied.
func LineInFile(fsys types.FS, path, line string) func(context.Context) (bool, string, error) {
	want := strings.TrimSpace(line)
	return func(context.Context) (bool, string, error) {
		content, err := fsys.ReadFile(path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return false, "", nil
			}
			return false, "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
		}
		for _, have := range strings.Split(string(content), "\n") {
			if strings.TrimSpace(have) == want {
				return true, fmt.Sprintf("%s already in %s", want, path), nil
			}
		}
		return false, "", nil
	}
}

// AppendLine appends line to path, creating the file and its parents
// when missing. Existing content is preserved and a trailing newline
// is guaranteed before the new line.
func AppendLine(fsys types.FS, path, line string) func(context.Context) error {
	return func(context.Context) error {
		content, err := fsys.ReadFile(path)
		if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
		}

		var b strings.Builder
		b.Write(content)
		if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		b.WriteByte('\n')

		if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", path)
		}
		if err := fsys.WriteFile(path, []byte(b.String()), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
		}
		return nil
	}
}

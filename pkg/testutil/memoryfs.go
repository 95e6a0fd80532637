package testutil

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// MemoryFS implements types.FS with in-memory storage, so file steps
// and idempotence checks can run without touching the real system.
type MemoryFS struct {
	files map[string][]byte
	dirs  map[string]bool

	// Writes counts mutating calls, letting tests assert that
	// supposedly side-effect-free code never wrote anything.
	Writes int
}

// NewMemoryFS creates an empty in-memory filesystem.
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files: make(map[string][]byte),
		dirs:  map[string]bool{"/": true},
	}
}

func normalize(name string) string {
	name = filepath.ToSlash(name)
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	return path.Clean(name)
}

// Stat implements types.FS.
func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	name = normalize(name)
	if content, ok := m.files[name]; ok {
		return memInfo{name: path.Base(name), size: int64(len(content))}, nil
	}
	if m.dirs[name] {
		return memInfo{name: path.Base(name), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

// ReadFile implements types.FS.
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	name = normalize(name)
	content, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}

// WriteFile implements types.FS.
func (m *MemoryFS) WriteFile(name string, data []byte, _ os.FileMode) error {
	name = normalize(name)
	parent := path.Dir(name)
	if parent != "/" && !m.dirs[parent] {
		return &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.files[name] = stored
	m.Writes++
	return nil
}

// MkdirAll implements types.FS.
func (m *MemoryFS) MkdirAll(dir string, _ os.FileMode) error {
	dir = normalize(dir)
	for d := dir; d != "/"; d = path.Dir(d) {
		m.dirs[d] = true
	}
	m.Writes++
	return nil
}

// Remove implements types.FS.
func (m *MemoryFS) Remove(name string) error {
	name = normalize(name)
	if _, ok := m.files[name]; ok {
		delete(m.files, name)
		m.Writes++
		return nil
	}
	if m.dirs[name] {
		delete(m.dirs, name)
		m.Writes++
		return nil
	}
	return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
}

type memInfo struct {
	name string
	size int64
	dir  bool
}

func (i memInfo) Name() string       { return i.name }
func (i memInfo) Size() int64        { return i.size }
func (i memInfo) Mode() fs.FileMode  { return modeFor(i.dir) }
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return i.dir }
func (i memInfo) Sys() interface{}   { return nil }

func modeFor(dir bool) fs.FileMode {
	if dir {
		return fs.ModeDir | 0755
	}
	return 0644
}

// Package manifest loads the declarative description of what a
// machine should end up with: packages, editor extensions, config
// files and package-source registrations. TOML is the primary
// format; YAML is accepted for people who keep everything in YAML.
package manifest

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/benchkit/benchkit/pkg/errors"
	"github.com/benchkit/benchkit/pkg/logging"
	"github.com/benchkit/benchkit/pkg/paths"
)

// Package declares one package-manager install.
type Package struct {
	// ID is the package identifier in the platform manager's
	// namespace (winget id, apt package name, brew formula).
	ID string `toml:"id" yaml:"id"`

	// Name is an optional display name; ID is used when empty.
	Name string `toml:"name" yaml:"name"`

	// Required marks the install as run-halting on failure.
	Required bool `toml:"required" yaml:"required"`

	// Subsystem groups the entry under a --skip name (e.g. docker).
	Subsystem string `toml:"subsystem" yaml:"subsystem"`
}

// Extension declares one editor extension.
type Extension struct {
	ID        string `toml:"id" yaml:"id"`
	Required  bool   `toml:"required" yaml:"required"`
	Subsystem string `toml:"subsystem" yaml:"subsystem"`
}

// File declares one config file copy.
type File struct {
	Source    string `toml:"source" yaml:"source"`
	Dest      string `toml:"dest" yaml:"dest"`
	Required  bool   `toml:"required" yaml:"required"`
	Subsystem string `toml:"subsystem" yaml:"subsystem"`
}

// Env declares one environment variable exported from a shell
// profile file.
type Env struct {
	Name  string `toml:"name" yaml:"name"`
	Value string `toml:"value" yaml:"value"`

	// File is the profile file the export line lives in; defaults to
	// ~/.profile.
	File      string `toml:"file" yaml:"file"`
	Required  bool   `toml:"required" yaml:"required"`
	Subsystem string `toml:"subsystem" yaml:"subsystem"`
}

// Source declares one XML package-source registration.
type Source struct {
	Path      string `toml:"path" yaml:"path"`
	Key       string `toml:"key" yaml:"key"`
	Value     string `toml:"value" yaml:"value"`
	Required  bool   `toml:"required" yaml:"required"`
	Subsystem string `toml:"subsystem" yaml:"subsystem"`
}

// Manifest is the full declarative bootstrap description.
type Manifest struct {
	Packages   []Package   `toml:"packages" yaml:"packages"`
	Extensions []Extension `toml:"extensions" yaml:"extensions"`
	Files      []File      `toml:"files" yaml:"files"`
	Sources    []Source    `toml:"sources" yaml:"sources"`
	Env        []Env       `toml:"env" yaml:"env"`
}

// Load reads and validates a manifest file, choosing the parser by
// extension.
func Load(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "cannot read manifest %s", path)
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(content, &m)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &m)
	default:
		return nil, errors.Newf(errors.ErrManifestLoad,
			"unsupported manifest format %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "cannot parse manifest %s", path)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Discover finds the manifest: the explicit path when given,
// otherwise the first candidate on the search path.
func Discover(explicit string) (*Manifest, string, error) {
	logger := logging.GetLogger("manifest")

	if explicit != "" {
		m, err := Load(explicit)
		return m, explicit, err
	}

	for _, candidate := range paths.ManifestCandidates() {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		logger.Debug().Str("path", candidate).Msg("Manifest discovered")
		m, err := Load(candidate)
		return m, candidate, err
	}

	return nil, "", errors.Newf(errors.ErrManifestLoad,
		"no manifest found; create %s.toml or pass --manifest", paths.ManifestBaseName)
}

// Validate rejects entries the runner could not act on.
func (m *Manifest) Validate() error {
	for i, p := range m.Packages {
		if p.ID == "" {
			return errors.Newf(errors.ErrManifestInvalid, "packages[%d]: id is required", i)
		}
	}
	for i, e := range m.Extensions {
		if e.ID == "" {
			return errors.Newf(errors.ErrManifestInvalid, "extensions[%d]: id is required", i)
		}
	}
	for i, f := range m.Files {
		if f.Source == "" || f.Dest == "" {
			return errors.Newf(errors.ErrManifestInvalid, "files[%d]: source and dest are required", i)
		}
	}
	for i, s := range m.Sources {
		if s.Path == "" || s.Key == "" || s.Value == "" {
			return errors.Newf(errors.ErrManifestInvalid, "sources[%d]: path, key and value are required", i)
		}
	}
	for i, e := range m.Env {
		if e.Name == "" {
			return errors.Newf(errors.ErrManifestInvalid, "env[%d]: name is required", i)
		}
	}
	return nil
}

// DisplayName returns the package's presentation name.
func (p Package) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// Package paths provides centralized path handling for benchkit. It
// follows the XDG Base Directory specification and keeps every
// filesystem convention in one place.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// EnvConfigDir overrides the XDG config directory for benchkit
const EnvConfigDir = "BENCHKIT_CONFIG_DIR"

const (
	appDirName = "benchkit"

	// ManifestBaseName is the manifest file name without extension.
	ManifestBaseName = "benchkit"
)

// ManifestExtensions lists the accepted manifest formats, in
// preference order.
var ManifestExtensions = []string{".toml", ".yaml", ".yml"}

// ConfigDir returns the directory searched for the manifest.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, appDirName)
}

// ManifestCandidates returns every path checked when no explicit
// --manifest flag is given: the working directory first, then the
// config directory.
func ManifestCandidates() []string {
	var candidates []string
	for _, dir := range []string{".", ConfigDir()} {
		for _, ext := range ManifestExtensions {
			candidates = append(candidates, filepath.Join(dir, ManifestBaseName+ext))
		}
	}
	return candidates
}

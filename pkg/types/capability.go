package types

// Canonical capability names. Probes report against these; steps gate
// on them.
const (
	CapPackageManager   = "package-manager"
	CapContainerRuntime = "container-runtime"
	CapLinuxSubsystem   = "linux-subsystem"
	CapEditorCLI        = "editor-cli"
	CapGit              = "git"
	CapTerminal         = "terminal"
	CapNodeRuntime      = "node"
	CapGoRuntime        = "go"
)

// Capability records whether an external tool or distribution is
// present on the host. It is created once during probing and is
// read-only afterwards; nothing is cached across runs.
type Capability struct {
	Name    string
	Present bool
	Version string
	// Command is the binary the probe resolved, useful when a
	// capability has platform-specific providers (winget vs apt).
	Command string
}

// CapabilityMap maps capability names to their probe results.
type CapabilityMap map[string]Capability

// Has reports whether the named capability was probed and found
// present.
func (m CapabilityMap) Has(name string) bool {
	return m[name].Present
}

// Version returns the detected version string for a capability, or
// the empty string if it is absent or versionless.
func (m CapabilityMap) Version(name string) string {
	return m[name].Version
}

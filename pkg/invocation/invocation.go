// Package invocation models the flags a benchkit process was started
// with. The context is parsed once at startup, never mutated, and can
// be serialized back to an argument vector so a relaunched (elevated)
// process sees exactly the flags the original one did.
package invocation

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/benchkit/benchkit/pkg/errors"
)

// Context holds every flag shared across benchkit commands. All
// fields take documented defaults when the flag is omitted; no flag
// is positional.
type Context struct {
	// Yes runs without interaction: timed prompts resolve to their
	// default immediately.
	Yes bool

	// KeepGoing continues past step failures instead of halting on
	// the first required failure.
	KeepGoing bool

	// DryRun classifies unsatisfied steps as skipped instead of
	// running their actions.
	DryRun bool

	// NoElevate refuses self-elevation; the run fails if elevation
	// would be required.
	NoElevate bool

	// Skip names subsystems whose steps are withheld (e.g. wsl,
	// docker).
	Skip []string

	// Manifest is an explicit manifest path; empty means discover.
	Manifest string

	// LogFile overrides the per-invocation log file path.
	LogFile string

	// Verbosity counts -v occurrences.
	Verbosity int
}

// AddFlags registers the shared flags on a flag set. Both cobra's
// persistent flags and the round-trip parser go through here, so the
// two can never drift apart.
func AddFlags(fs *pflag.FlagSet, c *Context) {
	fs.BoolVarP(&c.Yes, "yes", "y", false, "Run without interaction; prompts resolve to their defaults")
	fs.BoolVar(&c.KeepGoing, "keep-going", false, "Continue past step failures instead of aborting")
	fs.BoolVar(&c.DryRun, "dry-run", false, "Preview steps without executing their actions")
	fs.BoolVar(&c.NoElevate, "no-elevate", false, "Never self-elevate; fail if elevation is required")
	fs.StringArrayVar(&c.Skip, "skip", nil, "Skip a subsystem's steps (repeatable)")
	fs.StringVar(&c.Manifest, "manifest", "", "Path to the manifest file")
	fs.StringVar(&c.LogFile, "log-file", "", "Override the log file path")
	fs.CountVarP(&c.Verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
}

// Parse builds a Context from an argument vector. Unknown flags are
// an error; a relaunched process must never silently drop a flag.
func Parse(args []string) (*Context, error) {
	c := &Context{}
	fs := pflag.NewFlagSet("benchkit", pflag.ContinueOnError)
	AddFlags(fs, c)
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "cannot parse invocation flags")
	}
	if len(fs.Args()) > 0 {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"unexpected positional arguments: %s", strings.Join(fs.Args(), " "))
	}
	return c, nil
}

// Args serializes the context back to an argument vector. For any
// context, Parse(ctx.Args()) yields an equivalent context: booleans
// survive as present/absent switches, string values survive verbatim
// including whitespace and quotes (the vector is handed to the OS as
// discrete arguments, never re-split), and repeatable flags keep
// their order.
func (c *Context) Args() []string {
	var args []string
	if c.Yes {
		args = append(args, "--yes")
	}
	if c.KeepGoing {
		args = append(args, "--keep-going")
	}
	if c.DryRun {
		args = append(args, "--dry-run")
	}
	if c.NoElevate {
		args = append(args, "--no-elevate")
	}
	for _, s := range c.Skip {
		args = append(args, fmt.Sprintf("--skip=%s", s))
	}
	if c.Manifest != "" {
		args = append(args, fmt.Sprintf("--manifest=%s", c.Manifest))
	}
	if c.LogFile != "" {
		args = append(args, fmt.Sprintf("--log-file=%s", c.LogFile))
	}
	for i := 0; i < c.Verbosity; i++ {
		args = append(args, "-v")
	}
	return args
}

// SkipSet returns the skip list as a lookup set, lowercased.
func (c *Context) SkipSet() map[string]bool {
	set := make(map[string]bool, len(c.Skip))
	for _, s := range c.Skip {
		set[strings.ToLower(s)] = true
	}
	return set
}

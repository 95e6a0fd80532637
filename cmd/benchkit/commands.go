package benchkit

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/benchkit/benchkit/internal/version"
	"github.com/benchkit/benchkit/pkg/invocation"
	"github.com/benchkit/benchkit/pkg/logging"
	"github.com/benchkit/benchkit/pkg/manifest"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	inv := &invocation.Context{}

	rootCmd := &cobra.Command{
		Use:     "benchkit",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(inv.Verbosity, inv.LogFile)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags. The same registration backs the elevated-relaunch
	// round trip, so the flag surface cannot drift.
	invocation.AddFlags(rootCmd.PersistentFlags(), inv)

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom usage template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newUpCmd(inv))
	rootCmd.AddCommand(newDoctorCmd(inv))
	rootCmd.AddCommand(newPlanCmd(inv))
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// loadManifest resolves the manifest for commands that need one.
func loadManifest(inv *invocation.Context) (*manifest.Manifest, string, error) {
	m, path, err := manifest.Discover(inv.Manifest)
	if err != nil {
		return nil, "", fmt.Errorf(MsgErrLoadManifest, err)
	}
	log.Debug().Str("manifest", path).Msg("Manifest loaded")
	return m, path, nil
}

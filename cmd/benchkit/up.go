package benchkit

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/benchkit/benchkit/pkg/bootstrap"
	"github.com/benchkit/benchkit/pkg/elevation"
	"github.com/benchkit/benchkit/pkg/execx"
	"github.com/benchkit/benchkit/pkg/filesystem"
	"github.com/benchkit/benchkit/pkg/invocation"
	"github.com/benchkit/benchkit/pkg/prompt"
	"github.com/benchkit/benchkit/pkg/report"
)

func newUpCmd(inv *invocation.Context) *cobra.Command {
	return &cobra.Command{
		Use:     "up",
		Short:   MsgUpShort,
		Long:    MsgUpLong,
		Example: MsgUpExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, path, err := loadManifest(inv)
			if err != nil {
				return err
			}

			log.Info().
				Str("manifest", path).
				Bool("dry_run", inv.DryRun).
				Msg("Starting run")

			res, err := bootstrap.Run(cmd.Context(), bootstrap.Options{
				Invocation: inv,
				Manifest:   m,
				Command:    "up",
				FS:         filesystem.NewSynth(),
				Runner:     execx.NewRunner(),
				Guard:      elevation.NewGuard(),
				Confirmer:  prompt.New(),
			})
			if err != nil && res == nil {
				return fmt.Errorf(MsgErrRun, err)
			}

			if res.Relaunched {
				// The elevated copy did the work; mirror its exit code
				// and execute nothing further.
				return exitError{code: res.ExitCode}
			}

			report.NewRenderer(os.Stdout).Render(res.Report)
			if inv.DryRun {
				fmt.Println(MsgDryRunNotice)
			}

			if err != nil {
				return fmt.Errorf(MsgErrRun, err)
			}
			if res.ExitCode != 0 {
				return exitError{code: res.ExitCode}
			}
			return nil
		},
	}
}

package benchkit

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/benchkit/benchkit/pkg/bootstrap"
	"github.com/benchkit/benchkit/pkg/execx"
	"github.com/benchkit/benchkit/pkg/filesystem"
	"github.com/benchkit/benchkit/pkg/invocation"
	"github.com/benchkit/benchkit/pkg/probe"
	"github.com/benchkit/benchkit/pkg/steps"
	"github.com/benchkit/benchkit/pkg/types"
)

func newPlanCmd(inv *invocation.Context) *cobra.Command {
	return &cobra.Command{
		Use:     "plan",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, path, err := loadManifest(inv)
			if err != nil {
				return err
			}

			runner := execx.NewRunner()
			caps := probe.Run(cmd.Context(), runner, probe.Defaults(runtime.GOOS))
			list := bootstrap.BuildSteps(m, caps, inv, filesystem.NewSynth(), runner)

			if len(list) == 0 {
				fmt.Println(MsgNoSteps)
				return nil
			}

			fmt.Fprintf(os.Stdout, "Plan from %s (%d steps):\n", path, len(list))
			for _, step := range list {
				fmt.Fprintf(os.Stdout, "  %-10s %s\n", planMarker(cmd.Context(), step, caps), step.Name)
			}
			return nil
		},
	}
}

// planMarker summarizes what up would do with the step. Only the
// side-effect-free satisfied check runs.
func planMarker(ctx context.Context, step steps.Step, caps types.CapabilityMap) string {
	if step.Skip {
		return "skip"
	}
	if step.Gate != "" && !caps.Has(step.Gate) {
		return "blocked"
	}
	if step.Satisfied != nil {
		if ok, _, err := step.Satisfied(ctx); err == nil && ok {
			return "satisfied"
		}
	}
	return "run"
}

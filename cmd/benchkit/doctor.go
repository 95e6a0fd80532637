package benchkit

import (
	"fmt"
	"os"
	"runtime"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/benchkit/benchkit/pkg/execx"
	"github.com/benchkit/benchkit/pkg/invocation"
	"github.com/benchkit/benchkit/pkg/probe"
)

func newDoctorCmd(inv *invocation.Context) *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		Short:   MsgDoctorShort,
		Long:    MsgDoctorLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caps := probe.Run(cmd.Context(), execx.NewRunner(), probe.Defaults(runtime.GOOS))

			names := make([]string, 0, len(caps))
			for name := range caps {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				c := caps[name]
				if c.Present {
					version := c.Version
					if version == "" {
						version = "present"
					}
					fmt.Fprintf(os.Stdout, "%s %-18s %s\n", statusGlyph(true), name, version)
				} else {
					fmt.Fprintf(os.Stdout, "%s %-18s not found (%s)\n", statusGlyph(false), name, c.Command)
				}
			}
			return nil
		},
	}
}

func statusGlyph(present bool) string {
	if present {
		return pterm.NewStyle(pterm.FgGreen).Sprint("ok")
	}
	return pterm.NewStyle(pterm.FgRed).Sprint("--")
}

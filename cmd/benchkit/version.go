package benchkit

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benchkit/benchkit/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("benchkit %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}

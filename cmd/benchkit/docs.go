package benchkit

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "docs [topic]",
		Short:     MsgDocsShort,
		Long:      MsgDocsLong,
		GroupID:   "misc",
		ValidArgs: topicNames(),
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Println("Available topics:")
				for _, name := range topicNames() {
					fmt.Printf("  %s\n", name)
				}
				return nil
			}

			content, err := topicFiles.ReadFile("topics/" + args[0] + ".md")
			if err != nil {
				return fmt.Errorf("unknown topic %q", args[0])
			}

			// Plain passthrough when output is piped.
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				fmt.Print(string(content))
				return nil
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				fmt.Print(string(content))
				return nil
			}
			out, err := renderer.Render(string(content))
			if err != nil {
				fmt.Print(string(content))
				return nil
			}
			fmt.Print(out)
			return nil
		},
	}
}

func topicNames() []string {
	entries, err := topicFiles.ReadDir("topics")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}

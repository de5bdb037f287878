// Command livellm drives the renderer from the terminal: it renders a
// markdown file in one shot, replays a token stream line-by-line to
// exercise the incremental renderer, validates a directive body against
// a registered component's schema, or lists the component registry.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/livellm/livellm/pkg/livellm/monitoring"
)

func main() {
	var profileAddr string

	root := &cobra.Command{
		Use:           "livellm",
		Short:         "Render LLM-produced Markdown into a live, interactive document",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if profileAddr == "" {
				return nil
			}
			return monitoring.EnableProfiling(profileAddr)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if profileAddr != "" {
				monitoring.StopProfiling()
			}
		},
	}
	root.PersistentFlags().StringVar(&profileAddr, "profile-addr", "",
		"bind address for a pprof debug server (e.g. localhost:6060); disabled when empty")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newStreamCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newComponentsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

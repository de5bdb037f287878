package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/livellm/livellm/pkg/livellm/registry"
)

func newComponentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "components",
		Short: "Inspect the component registry",
	}
	cmd.AddCommand(newComponentsListCmd())
	return cmd
}

func newComponentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every registered component type",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			reg := registry.Default()
			for _, name := range reg.List() {
				d, _ := reg.Get(name)
				fmt.Printf("%-20s %s\n", name, d.Category)
			}
			return nil
		},
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/livellm/livellm/pkg/livellm/registry"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <component-type> [props.json]",
		Short: "Validate a directive body's JSON props against a registered component's schema",
		Long: `validate applies the named component's declared defaults to the
given JSON props object, runs schema validation, and reports either
"valid" with the defaults-applied props or every validation error.
Reads props from stdin when no file is given or the file is "-".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runValidate,
	}
	return cmd
}

func runValidate(_ *cobra.Command, args []string) error {
	typeName := args[0]
	reg := registry.Default()

	if !reg.Has(typeName) {
		return fmt.Errorf("unknown component type %q", typeName)
	}

	data, err := readPropsInput(args[1:])
	if err != nil {
		return err
	}

	var props map[string]interface{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &props); err != nil {
			return fmt.Errorf("parsing props JSON: %w", err)
		}
	}

	props = reg.ApplyDefaults(typeName, props)
	result := reg.Validate(typeName, props)

	if result.Valid {
		out, _ := json.MarshalIndent(props, "", "  ")
		fmt.Printf("valid\n%s\n", out)
		return nil
	}

	fmt.Println("invalid")
	for _, e := range result.Errors {
		fmt.Println("  -", e.Error())
	}
	return fmt.Errorf("%q failed validation with %d error(s)", typeName, len(result.Errors))
}

func readPropsInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

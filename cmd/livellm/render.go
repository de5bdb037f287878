package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/livellm/livellm/config"
	"github.com/livellm/livellm/container/headless"
	"github.com/livellm/livellm/pkg/livellm/bus"
	"github.com/livellm/livellm/pkg/livellm/detect"
	"github.com/livellm/livellm/pkg/livellm/parser"
	"github.com/livellm/livellm/pkg/livellm/registry"
	"github.com/livellm/livellm/pkg/livellm/render"
)

func newRenderCmd() *cobra.Command {
	cfgFlags := config.NewFlags().NewFileFlags()
	var explain bool

	cmd := &cobra.Command{
		Use:   "render [file.md]",
		Short: "Render a complete Markdown document in one shot",
		Long: `render runs a finished Markdown document through the one-shot
transform -> parse pipeline (no sanitiser is set), and prints the
resulting document's plain-text content.
Reads from stdin when no file is given or the file is "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRender(cfgFlags, args, explain)
		},
	}

	cfgFlags.RegisterFlags(cmd.Flags())
	_ = cfgFlags.RegisterCompletions(cmd)
	cmd.Flags().BoolVar(&explain, "explain", false,
		"print each accepted detector match's span, confidence and bonus trace to stderr before rendering")
	return cmd
}

func runRender(cfgFlags *config.FileFlags, args []string, explain bool) error {
	cfg, err := cfgFlags.Load()
	if err != nil {
		return err
	}

	source, err := readInput(args)
	if err != nil {
		return err
	}

	reg := registry.Default()
	if !cfg.AllComponents() {
		reg = registry.Filtered(reg, cfg.Components)
	}
	b := bus.New(nil)
	b.SetDebug(cfg.Debug)

	md := parser.New(reg, b, cfg.Security.MaxJSONSize)
	r := render.New(md, b)

	if cfg.Transformer.Mode != config.TransformerOff {
		t := detect.NewTransformer(b, nil)
		t.RegisterBuiltIns()
		t.Mode = detect.Mode(cfg.Transformer.Mode)
		t.ConfidenceThreshold = cfg.Transformer.ConfidenceThreshold
		if !cfg.AllDetectors() {
			disableAllExcept(t, cfg.Transformer.Detectors)
		}
		if explain {
			transformed, traces := t.TransformTrace(source)
			printExplainTraces(os.Stderr, traces)
			source = transformed
		} else {
			r.Transformer = t
		}
	}

	c := headless.New()
	r.Render(source, c)
	fmt.Println(c.Text())
	return nil
}

// printExplainTraces writes one line per accepted detector match: its
// detector name, source span, confidence and any bonus explanations that
// fired, in source order. Used by --explain; otherwise traces are
// computed and discarded.
func printExplainTraces(w io.Writer, traces []detect.Trace) {
	if len(traces) == 0 {
		fmt.Fprintln(w, "explain: no detector matches accepted")
		return
	}
	for _, tr := range traces {
		fmt.Fprintf(w, "explain: %s [%d:%d] confidence=%.2f", tr.Detector, tr.Start, tr.End, tr.Confidence)
		if len(tr.Explain) > 0 {
			fmt.Fprintf(w, " (%s)", strings.Join(tr.Explain, "; "))
		}
		fmt.Fprintln(w)
	}
}

// disableAllExcept turns off every built-in detector not named in keep.
func disableAllExcept(t *detect.Transformer, keep []string) {
	allowed := make(map[string]bool, len(keep))
	for _, name := range keep {
		allowed[name] = true
	}
	for _, name := range []string{"table", "question", "address", "code", "link", "list", "data"} {
		if !allowed[name] {
			t.Disable(name)
		}
	}
}

func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

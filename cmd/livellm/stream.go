package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/livellm/livellm/config"
	"github.com/livellm/livellm/container/headless"
	"github.com/livellm/livellm/container/termdoc"
	"github.com/livellm/livellm/pkg/livellm/action"
	"github.com/livellm/livellm/pkg/livellm/bus"
	"github.com/livellm/livellm/pkg/livellm/parser"
	"github.com/livellm/livellm/pkg/livellm/protocol"
	"github.com/livellm/livellm/pkg/livellm/registry"
	"github.com/livellm/livellm/pkg/livellm/stream"
	"github.com/livellm/livellm/pkg/livellm/widgets"
)

func newStreamCmd() *cobra.Command {
	cfgFlags := config.NewFlags().NewFileFlags()
	var live bool

	cmd := &cobra.Command{
		Use:   "stream [file]",
		Short: "Replay a token stream through the incremental renderer",
		Long: `stream reads newline-delimited wire-protocol frames (one JSON
object per line, or the legacy "[DONE]" sentinel) and dispatches them
into the character-level state-machine renderer, exercising the same
placeholder/replace cadence a live token feed would drive.
Reads from stdin when no file is given or the file is "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runStream(cfgFlags, args, live)
		},
	}

	cfgFlags.RegisterFlags(cmd.Flags())
	_ = cfgFlags.RegisterCompletions(cmd)
	cmd.Flags().BoolVar(&live, "live", false, "render into a live terminal UI instead of printing plain text at the end")
	return cmd
}

func runStream(cfgFlags *config.FileFlags, args []string, live bool) error {
	cfg, err := cfgFlags.Load()
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(args)
	if err != nil {
		return err
	}
	defer closeIn()

	reg := registry.Default()
	if !cfg.AllComponents() {
		reg = registry.Filtered(reg, cfg.Components)
	}
	b := bus.New(nil)
	b.SetDebug(cfg.Debug)
	md := parser.New(reg, b, cfg.Security.MaxJSONSize)

	router := action.NewRouter(b)
	router.AutoSend = cfg.Actions.AutoSend

	if live {
		return runStreamLive(in, reg, md, b, router, cfg)
	}
	return runStreamHeadless(in, reg, md, b, router, cfg)
}

func runStreamHeadless(in io.Reader, reg *registry.Registry, md *parser.Parser, b *bus.Bus, router *action.Router, cfg config.Config) error {
	c := headless.New()
	r := stream.New(c, reg, md, b, stream.SyncScheduler{})
	r.SkeletonDelay = time.Duration(cfg.Streaming.SkeletonDelayMS) * time.Millisecond
	c.BindActions(router.HandleEvent)

	if err := pumpFrames(in, protocol.NewDispatcher(r)); err != nil {
		return err
	}
	fmt.Println(c.Text())
	return nil
}

func runStreamLive(in io.Reader, reg *registry.Registry, md *parser.Parser, b *bus.Bus, router *action.Router, cfg config.Config) error {
	c := termdoc.New(widgets.DefaultTheme)
	sched := stream.NewTickerScheduler(16 * time.Millisecond)
	r := stream.New(c, reg, md, b, sched)
	r.SkeletonDelay = time.Duration(cfg.Streaming.SkeletonDelayMS) * time.Millisecond
	c.BindActions(router.HandleEvent)

	p := c.Program(tea.WithAltScreen())
	disp := protocol.NewDispatcher(r)
	disp.OnError = func(e protocol.ErrorInfo) {
		c.Dispatch(map[string]interface{}{"component": "termdoc", "action": "stream-error", "data": e.Message})
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- pumpFrames(in, disp)
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("live stream UI: %w", err)
	}
	return <-errCh
}

// pumpFrames reads one wire frame per line from in and dispatches each
// through disp until a terminal frame arrives or input is exhausted. A
// non-recoverable error frame stops the read loop but is not itself
// returned as an error — the renderer has already ended the stream and
// painted a fallback card for any in-progress component, matching the
// wire-protocol's own recovery semantics.
func pumpFrames(in io.Reader, disp *protocol.Dispatcher) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if disp.Dispatch(line) {
			return nil
		}
	}
	return scanner.Err()
}

func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", args[0], err)
	}
	return f, func() { f.Close() }, nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"irkit/internal/config"
	"irkit/internal/observ"
	"irkit/internal/prof"
	"irkit/internal/snapshot"
	"irkit/internal/trace"
	"irkit/internal/version"
)

// rootOptions holds the global flags and what they resolve to once the
// config file has been merged in.
type rootOptions struct {
	configPath string
	format     string
	color      string
	trace      string
	traceLevel string
	traceMode  string
	timings    bool
	profiles   prof.Options

	cfg      config.Config
	output   snapshot.Format
	useColor bool
	tracer   trace.Tracer
	timer    *observ.Timer
	profiler *prof.Session
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "irkit",
		Short:         "Inspect the code-generation IR",
		Long:          `irkit translates generic parameter lists, types and data declarations into the IR and prints what it built.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to irkit.toml (default: nearest one above the working directory)")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "", "output format (text|json|yaml|msgpack)")
	cmd.PersistentFlags().StringVar(&opts.color, "color", "", "colorize output (auto|always|never)")
	cmd.PersistentFlags().StringVar(&opts.trace, "trace", "", "trace output file (- for stderr)")
	cmd.PersistentFlags().StringVar(&opts.traceLevel, "trace-level", "", "trace level (off|error|phase|detail|debug)")
	cmd.PersistentFlags().StringVar(&opts.traceMode, "trace-mode", "", "trace storage (stream|ring|both); ring is dumped to stderr on failure")
	cmd.PersistentFlags().BoolVar(&opts.timings, "timings", false, "print phase timings to stderr")
	cmd.PersistentFlags().StringVar(&opts.profiles.CPU, "cpuprofile", "", "write a CPU profile to this file")
	cmd.PersistentFlags().StringVar(&opts.profiles.Mem, "memprofile", "", "write a heap profile to this file on exit")
	cmd.PersistentFlags().StringVar(&opts.profiles.Trace, "runtime-trace", "", "write a Go runtime trace to this file")

	cmd.AddCommand(newTypeCommand(opts))
	cmd.AddCommand(newGenericsCommand(opts))
	cmd.AddCommand(newBatchCommand(opts))
	cmd.AddCommand(newVersionCommand(opts))
	return cmd
}

// resolve merges irkit.toml with the flags that were set explicitly.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	var err error
	if o.configPath != "" {
		o.cfg, err = config.Load(o.configPath)
	} else {
		o.cfg, _, err = config.Discover(".")
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		o.cfg.Output.Format = o.format
	}
	if flags.Changed("color") {
		o.cfg.Output.Color = o.color
	}
	if flags.Changed("trace") {
		o.cfg.Trace.Output = o.trace
		if !flags.Changed("trace-level") && o.cfg.Trace.Level == "off" {
			o.cfg.Trace.Level = "phase"
		}
	}
	if flags.Changed("trace-level") {
		o.cfg.Trace.Level = o.traceLevel
	}
	if flags.Changed("trace-mode") {
		o.cfg.Trace.Mode = o.traceMode
		if !flags.Changed("trace-level") && o.cfg.Trace.Level == "off" {
			o.cfg.Trace.Level = "phase"
		}
	}
	if err := o.cfg.Validate(); err != nil {
		return err
	}

	o.output, err = snapshot.ParseFormat(o.cfg.Output.Format)
	if err != nil {
		return err
	}
	mode, err := config.ParseColor(o.cfg.Output.Color)
	if err != nil {
		return err
	}
	o.useColor = useColor(mode, cmd.OutOrStdout())

	tc, err := o.cfg.TraceConfig()
	if err != nil {
		return err
	}
	o.tracer, err = trace.New(tc)
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), o.tracer))
	if o.timings {
		o.timer = observ.NewTimer()
	}
	if o.profiles.Enabled() {
		if o.profiler, err = prof.Start(o.profiles); err != nil {
			return fmt.Errorf("failed to start profiling: %w", err)
		}
	}
	return nil
}

// close releases what resolve acquired. A ring tracer is dumped when the
// command failed so the events leading up to the error are not lost.
func (o *rootOptions) close(errOut io.Writer, cmdErr error) {
	if err := o.profiler.Stop(); err != nil {
		fmt.Fprintf(errOut, "profile: %v\n", err)
	}
	o.profiler = nil
	if o.timer != nil {
		_ = o.timer.Summary(o.useColor).Render(errOut)
		o.timer = nil
	}
	if o.tracer == nil {
		return
	}
	if d, ok := o.tracer.(trace.Dumper); ok && cmdErr != nil {
		fmt.Fprintln(errOut, "trace: recent events")
		if err := d.Dump(errOut, trace.FormatText); err != nil {
			fmt.Fprintf(errOut, "trace: dump error: %v\n", err)
		}
	}
	if err := o.tracer.Flush(); err != nil {
		fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
	}
	if err := o.tracer.Close(); err != nil {
		fmt.Fprintf(errOut, "trace: close error: %v\n", err)
	}
	o.tracer = nil
}

func useColor(mode config.ColorMode, out io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := out.(*os.File)
	return ok && isTerminal(f)
}

// checkBinaryOutput refuses to write msgpack to a terminal.
func (o *rootOptions) checkBinaryOutput(out io.Writer) error {
	if !o.output.Binary() {
		return nil
	}
	if f, ok := out.(*os.File); ok && isTerminal(f) {
		return fmt.Errorf("refusing to write %s to a terminal; redirect the output", o.output)
	}
	return nil
}

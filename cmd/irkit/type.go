package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"irkit/internal/diagfmt"
	"irkit/internal/driver"
	"irkit/internal/ir"
	"irkit/internal/snapshot"
	"irkit/internal/source"
	"irkit/internal/trace"
	"irkit/internal/ui"
)

type typeOptions struct {
	generics string
	where    []string
	snapshot bool
}

func newTypeCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &typeOptions{}
	cmd := &cobra.Command{
		Use:   "type <type>...",
		Short: "Translate types and print them back",
		Example: `  irkit type --generics "<'a, T>" "&'a mut Vec<T>"
  irkit type "dyn Iterator<Item = &'static str> + Send"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runType(cmd, rootOpts, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.generics, "generics", "", "parameter list the types may refer to, e.g. \"<'a, T: Clone>\"")
	cmd.Flags().StringArrayVar(&opts.where, "where", nil, "where-clause predicate (repeatable)")
	cmd.Flags().BoolVar(&opts.snapshot, "snapshot", false, "print the whole context instead of the type list")
	return cmd
}

func runType(cmd *cobra.Command, rootOpts *rootOptions, opts *typeOptions, args []string) error {
	out := cmd.OutOrStdout()
	if err := rootOpts.checkBinaryOutput(out); err != nil {
		return err
	}
	ctx := ir.NewContext(ir.WithTracer(trace.FromContext(cmd.Context())))

	var g *ir.Generics
	err := ctx.Run("generics", func() error {
		var err error
		g, err = driver.TranslateGenerics(ctx, opts.generics, opts.where)
		return err
	})
	if err != nil {
		printError(cmd, rootOpts, err, ctx.Fragments())
		return fmt.Errorf("generics: %w", err)
	}

	phase := rootOpts.timer.Begin("translate")
	report := &ui.Report{Title: "types", Color: rootOpts.useColor}
	sec := report.Section("translated")
	failed := 0
	for _, text := range args {
		err := ctx.Run("type", func() error {
			t, err := ctx.ParseType(text, g.Names)
			if err != nil {
				return err
			}
			sec.Row(t.Kind().String(), t.String(), symbolList(ctx, ctx.TypeSymbols(t)))
			return nil
		})
		if err != nil {
			failed++
			printError(cmd, rootOpts, err, ctx.Fragments())
		}
	}

	rootOpts.timer.End(phase, fmt.Sprintf("%d types", len(args)))

	defer rootOpts.timer.End(rootOpts.timer.Begin("render"), "")
	if rootOpts.output != snapshot.FormatText || opts.snapshot {
		s := snapshot.Take(ctx, "type", snapshot.Named{Name: "scope", Generics: g})
		if err := snapshot.Encode(out, s, snapshot.EncodeOptions{Format: rootOpts.output, Color: rootOpts.useColor}); err != nil {
			return err
		}
	} else if err := report.Render(out); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d types failed", failed, len(args))
	}
	return nil
}

func symbolList(ctx *ir.Context, ps []ir.Param) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = ctx.ParamName(p)
	}
	return strings.Join(names, " ")
}

func printError(cmd *cobra.Command, rootOpts *rootOptions, err error, fs *source.FragmentSet) {
	_ = diagfmt.Pretty(cmd.ErrOrStderr(), err, fs, diagfmt.PrettyOpts{Color: rootOpts.useColor, Context: true})
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"irkit/internal/driver"
	"irkit/internal/ir"
	"irkit/internal/snapshot"
	"irkit/internal/trace"
	"irkit/internal/ui"
)

type genericsOptions struct {
	where []string
	fresh bool
}

func newGenericsCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &genericsOptions{}
	cmd := &cobra.Command{
		Use:   "generics <params>",
		Short: "Translate a generic parameter list",
		Long: `Translate a generic parameter list and its where-clauses. With --fresh
the declaration is also cloned with fresh symbols and the renaming is shown.`,
		Example: `  irkit generics "<'a, T: Clone + 'a>" --where "T: Iterator<Item = &'a str>" --fresh`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerics(cmd, rootOpts, opts, args[0])
		},
	}
	cmd.Flags().StringArrayVar(&opts.where, "where", nil, "where-clause predicate (repeatable)")
	cmd.Flags().BoolVar(&opts.fresh, "fresh", false, "also clone the declaration with fresh symbols")
	return cmd
}

func runGenerics(cmd *cobra.Command, rootOpts *rootOptions, opts *genericsOptions, params string) error {
	out := cmd.OutOrStdout()
	if err := rootOpts.checkBinaryOutput(out); err != nil {
		return err
	}
	ctx := ir.NewContext(ir.WithTracer(trace.FromContext(cmd.Context())))

	var (
		g, clone *ir.Generics
		subst    *ir.Subst
	)
	phase := rootOpts.timer.Begin("translate")
	err := ctx.Run("generics", func() error {
		var err error
		if g, err = driver.TranslateGenerics(ctx, params, opts.where); err != nil {
			return err
		}
		if opts.fresh {
			clone, subst, err = g.CloneFresh()
		}
		return err
	})
	rootOpts.timer.End(phase, "")
	if err != nil {
		printError(cmd, rootOpts, err, ctx.Fragments())
		return fmt.Errorf("generics: %w", err)
	}

	if rootOpts.output != snapshot.FormatText {
		named := []snapshot.Named{{Name: "declared", Generics: g}}
		if clone != nil {
			named = append(named, snapshot.Named{Name: "fresh", Generics: clone})
		}
		return snapshot.Encode(out, snapshot.Take(ctx, "generics", named...), snapshot.EncodeOptions{Format: rootOpts.output})
	}

	report := &ui.Report{Title: "generics", Color: rootOpts.useColor}
	sec := report.Section("declared")
	sec.Row("params", g.ParamList())
	sec.Row("where", whereList(g))
	sec.Row("symbols", symbolList(ctx, g.Symbols()))
	if clone != nil {
		fresh := report.Section("fresh")
		fresh.Row("params", clone.ParamList())
		fresh.Row("where", whereList(clone))
		renames := report.Section("substitution")
		for _, pair := range subst.Pairs() {
			renames.Row(pair.From.Kind.String(), symbolID(ctx, pair.From), "->", symbolID(ctx, pair.To))
		}
	}
	return report.Render(out)
}

func whereList(g *ir.Generics) string {
	if len(g.Constraints) == 0 {
		return "-"
	}
	return g.WhereClause()
}

// symbolID shows the minted number next to the name, since fresh symbols
// inherit the names of the ones they replace.
func symbolID(ctx *ir.Context, p ir.Param) string {
	return fmt.Sprintf("%s#%d", ctx.ParamName(p), p.ID)
}

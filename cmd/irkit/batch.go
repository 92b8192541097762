package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"irkit/internal/diagfmt"
	"irkit/internal/driver"
	"irkit/internal/snapshot"
	"irkit/internal/ui"
)

type batchOptions struct {
	jobs int
}

// batchEntry is the structured form of one file's result.
type batchEntry struct {
	Path        string                   `json:"path" yaml:"path" msgpack:"path"`
	OK          bool                     `json:"ok" yaml:"ok" msgpack:"ok"`
	Snapshot    *snapshot.Snapshot       `json:"snapshot,omitempty" yaml:"snapshot,omitempty" msgpack:"snapshot,omitempty"`
	Diagnostics []diagfmt.DiagnosticJSON `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
}

func newBatchCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &batchOptions{}
	cmd := &cobra.Command{
		Use:   "batch [file-or-dir]...",
		Short: "Translate fragment files in parallel",
		Long: `Translate every fragment file (*.toml) given, or found under the given
directories. Each file is translated in its own context; files run in
parallel.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, rootOpts, opts, args)
		},
	}
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "files translated at once (default: [batch] jobs, then GOMAXPROCS)")
	return cmd
}

func runBatch(cmd *cobra.Command, rootOpts *rootOptions, opts *batchOptions, args []string) error {
	out := cmd.OutOrStdout()
	if err := rootOpts.checkBinaryOutput(out); err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"."}
	}
	paths, err := collectBatchFiles(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no fragment files found")
	}

	jobs := opts.jobs
	if !cmd.Flags().Changed("jobs") {
		jobs = rootOpts.cfg.Batch.Jobs
	}
	phase := rootOpts.timer.Begin("batch")
	results, err := driver.RunBatch(cmd.Context(), paths, driver.Options{Jobs: jobs})
	rootOpts.timer.End(phase, fmt.Sprintf("%d files", len(paths)))
	if err != nil {
		return err
	}
	defer rootOpts.timer.End(rootOpts.timer.Begin("render"), "")

	failed := 0
	for i := range results {
		if !results[i].OK() {
			failed++
		}
	}

	if rootOpts.output != snapshot.FormatText {
		entries := make([]batchEntry, len(results))
		for i := range results {
			r := &results[i]
			entries[i] = batchEntry{Path: r.Path, OK: r.OK(), Snapshot: r.Snapshot, Diagnostics: r.Diagnostics()}
		}
		if err := snapshot.Marshal(out, entries, rootOpts.output); err != nil {
			return err
		}
	} else {
		report := &ui.Report{Title: "batch", Color: rootOpts.useColor}
		sec := report.Section("files")
		for i := range results {
			r := &results[i]
			switch {
			case r.Err != nil:
				sec.Row(ui.Status("error", r.Path, "not loaded")...)
			case len(r.Failures) > 0:
				sec.Row(ui.Status("error", r.Path, fmt.Sprintf("%d failed", len(r.Failures)))...)
			default:
				sec.Row(ui.Status("ok", r.Path, fmt.Sprintf("%d types, %d values", r.Snapshot.Stats.Types, r.Snapshot.Stats.Values))...)
			}
		}
		if err := report.Render(out); err != nil {
			return err
		}
		for i := range results {
			r := &results[i]
			if r.Err != nil {
				printError(cmd, rootOpts, fmt.Errorf("%s: %w", r.Path, r.Err), nil)
			}
			for _, f := range r.Failures {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s:\n", r.Path, f.Fragment)
				printError(cmd, rootOpts, f.Err, r.Fragments())
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// collectBatchFiles expands directories; plain files are taken as given.
func collectBatchFiles(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := driver.ListFragmentFiles(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

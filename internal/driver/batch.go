package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"irkit/internal/config"
	"irkit/internal/diagfmt"
	"irkit/internal/ir"
	"irkit/internal/snapshot"
	"irkit/internal/source"
	"irkit/internal/trace"
)

// Options configures a batch run.
type Options struct {
	// Jobs bounds the number of files translated at once; <= 0 means GOMAXPROCS.
	Jobs int
	// Tracer defaults to the one carried by the context passed to RunBatch.
	Tracer trace.Tracer
}

// FileResult is the outcome of one batch file. Each file gets its own
// ir.Context, so results never share symbols.
type FileResult struct {
	Path     string
	Label    string
	Snapshot *snapshot.Snapshot
	Failures []Failure
	// Err is set when the file could not be loaded at all.
	Err error

	fragments *source.FragmentSet
}

// Failure is one fragment that did not translate.
type Failure struct {
	Fragment string
	Err      error
}

func (r *FileResult) OK() bool { return r.Err == nil && len(r.Failures) == 0 }

// Fragments resolves failure spans; nil when the file failed to load.
func (r *FileResult) Fragments() *source.FragmentSet { return r.fragments }

// Diagnostics converts every failure for structured output.
func (r *FileResult) Diagnostics() []diagfmt.DiagnosticJSON {
	var out []diagfmt.DiagnosticJSON
	if r.Err != nil {
		out = append(out, diagfmt.MakeDiagnostic(r.Err, nil))
	}
	for _, f := range r.Failures {
		out = append(out, diagfmt.MakeDiagnostic(f.Err, r.fragments))
	}
	return out
}

// ListFragmentFiles returns the *.toml batch files under dir in sorted
// order, skipping irkit.toml.
func ListFragmentFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".toml") && d.Name() != config.FileName {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// RunBatch translates every file in parallel. Results keep the order of
// paths. A file that fails does not stop the others; only cancellation of
// ctx does.
func RunBatch(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}

	span := trace.Begin(tracer, trace.ScopeDriver, "batch", trace.CurrentSpan(ctx)).WithExtra("files", fmt.Sprint(len(paths)))
	defer span.End("")

	g, gctx := errgroup.WithContext(trace.WithSpan(ctx, span))
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fspan := trace.Begin(tracer, trace.ScopePass, "file", trace.CurrentSpan(gctx)).WithExtra("path", path)
			f, err := config.LoadFragments(path)
			if err != nil {
				results[i] = FileResult{Path: path, Err: err}
				fspan.End("load failed")
				return nil
			}
			results[i] = RunFile(f, tracer)
			fspan.End(fmt.Sprintf("%d failures", len(results[i].Failures)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RunFile translates one loaded file in a fresh context.
func RunFile(f *config.Fragments, tracer trace.Tracer) FileResult {
	ictx := ir.NewContext(ir.WithTracer(tracer))
	res := FileResult{Path: f.Path, Label: f.Label, fragments: ictx.Fragments()}
	fail := func(fragment string, err error) {
		res.Failures = append(res.Failures, Failure{Fragment: fragment, Err: err})
	}

	scopes := make(map[string]*ir.Generics, len(f.Generics))
	var named []snapshot.Named
	for i, decl := range f.Generics {
		frag := fmt.Sprintf("generics[%d] %s", i, decl.Name)
		err := ictx.Run("generics", func() error {
			g, err := TranslateGenerics(ictx, decl.Params, decl.Where)
			if err != nil {
				return err
			}
			scopes[decl.Name] = g
			named = append(named, snapshot.Named{Name: decl.Name, Generics: g})
			if decl.Fresh {
				clone, _, err := g.CloneFresh()
				if err != nil {
					return err
				}
				named = append(named, snapshot.Named{Name: decl.Name + " (fresh)", Generics: clone})
			}
			return nil
		})
		if err != nil {
			fail(frag, err)
		}
	}

	for i, decl := range f.Types {
		frag := fmt.Sprintf("types[%d]", i)
		err := ictx.Run("type", func() error {
			var names *ir.NameMap
			if g, ok := scopes[decl.Scope]; ok {
				names = g.Names
			}
			t, err := ictx.ParseType(decl.Text, names)
			if err != nil {
				return err
			}
			if decl.Expect != "" && t.String() != decl.Expect {
				return fmt.Errorf("printed %q, expected %q", t.String(), decl.Expect)
			}
			return nil
		})
		if err != nil {
			fail(frag, err)
		}
	}

	for i, decl := range f.Data {
		frag := fmt.Sprintf("data[%d]", i)
		err := ictx.Run("data", func() error {
			_, err := ictx.ParseDataDecl(decl.Text)
			return err
		})
		if err != nil {
			fail(frag, err)
		}
	}

	res.Snapshot = snapshot.Take(ictx, f.Label, named...)
	return res
}

// TranslateGenerics builds a Generics from a parameter list such as
// "<'a, T: Clone>" and where-clauses such as "T: Iterator<Item = &'a str>".
// Either part may be empty.
func TranslateGenerics(ctx *ir.Context, params string, where []string) (*ir.Generics, error) {
	g := ctx.NewGenerics()
	if strings.TrimSpace(params) != "" {
		var err error
		if g, err = ctx.ParseGenerics(params); err != nil {
			return nil, err
		}
	}
	if len(where) > 0 {
		if err := g.SetConstraints(where...); err != nil {
			return nil, err
		}
	}
	return g, nil
}

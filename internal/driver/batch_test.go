package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"irkit/internal/config"
	"irkit/internal/diag"
	"irkit/internal/ir"
	"irkit/internal/trace"
)

const goodFile = `
label = "iterators"

[[generics]]
name = "impl"
params = "<'a, T: Clone>"
where = ["T: Iterator<Item = &'a str>"]
fresh = true

[[types]]
scope = "impl"
text = "&'a mut T"
expect = "&'a mut T"

[[data]]
text = "struct Wrapper<'a, T>(&'a T);"
`

const badFile = `
[[types]]
text = "&'zz str"

[[types]]
text = "str"
expect = "String"

[[data]]
text = "struct Array<const N: usize>;"
`

func writeBatch(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	}
	return dir
}

func TestListFragmentFiles(t *testing.T) {
	dir := writeBatch(t, map[string]string{
		"b.toml":        goodFile,
		"a/c.toml":      goodFile,
		config.FileName: "",
		"notes.txt":     "",
	})
	files, err := ListFragmentFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "a", "c.toml"), filepath.Join(dir, "b.toml")}, files)
}

func TestRunBatch(t *testing.T) {
	dir := writeBatch(t, map[string]string{
		"good.toml":   goodFile,
		"bad.toml":    badFile,
		"broken.toml": "[[types]\n",
	})
	paths := []string{
		filepath.Join(dir, "good.toml"),
		filepath.Join(dir, "bad.toml"),
		filepath.Join(dir, "broken.toml"),
		filepath.Join(dir, "missing.toml"),
	}
	tr := trace.NewRingTracer(256, trace.LevelPhase)
	results, err := RunBatch(context.Background(), paths, Options{Jobs: 2, Tracer: tr})
	require.NoError(t, err)
	require.Len(t, results, 4)

	good := results[0]
	require.True(t, good.OK(), "%+v", good.Failures)
	require.Equal(t, "iterators", good.Label)
	require.Len(t, good.Snapshot.Generics, 2)
	require.Equal(t, "impl (fresh)", good.Snapshot.Generics[1].Name)
	require.Equal(t, good.Snapshot.Generics[0].Text, good.Snapshot.Generics[1].Text)
	require.Equal(t, uint32(3), good.Snapshot.Stats.Lifetimes, "impl, its fresh clone and Wrapper each mint 'a")

	bad := results[1]
	require.False(t, bad.OK())
	require.Len(t, bad.Failures, 3)
	require.Equal(t, "types[0]", bad.Failures[0].Fragment)
	require.True(t, errorsIs(bad.Failures[0].Err, diag.IRUnknownName))
	require.Contains(t, bad.Failures[1].Err.Error(), `expected "String"`)
	require.True(t, diag.IsUnsupported(bad.Failures[2].Err))
	diags := bad.Diagnostics()
	require.Len(t, diags, 3)
	require.Equal(t, "'zz", diags[0].Location.Text)

	require.Error(t, results[2].Err)
	require.Error(t, results[3].Err)
	require.Nil(t, results[3].Fragments())

	require.Contains(t, tr.Names(), "batch")
	require.Contains(t, tr.Names(), "generics")
}

func TestRunBatchUsesContextTracer(t *testing.T) {
	dir := writeBatch(t, map[string]string{"good.toml": goodFile})
	tr := trace.NewRingTracer(256, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), tr)
	_, err := RunBatch(ctx, []string{filepath.Join(dir, "good.toml")}, Options{Jobs: 1})
	require.NoError(t, err)

	var batchID, fileParent uint64
	for _, ev := range tr.Snapshot() {
		if ev.Kind != trace.KindSpanBegin {
			continue
		}
		switch ev.Name {
		case "batch":
			batchID = ev.SpanID
		case "file":
			fileParent = ev.ParentID
		}
	}
	require.NotZero(t, batchID)
	require.Equal(t, batchID, fileParent)
}

func TestRunBatchCancelled(t *testing.T) {
	dir := writeBatch(t, map[string]string{"good.toml": goodFile})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunBatch(ctx, []string{filepath.Join(dir, "good.toml")}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunFileContextsAreIndependent(t *testing.T) {
	f := &config.Fragments{Generics: []config.GenericsDecl{{Name: "g", Params: "<T>"}}}
	a := RunFile(f, trace.Nop)
	b := RunFile(f, trace.Nop)
	require.NotEqual(t, a.Snapshot.Context, b.Snapshot.Context)
	require.Equal(t, a.Snapshot.Stats, b.Snapshot.Stats)
}

func TestTranslateGenerics(t *testing.T) {
	ctx := ir.NewContext()
	g, err := TranslateGenerics(ctx, "", nil)
	require.NoError(t, err)
	require.True(t, g.Empty())

	g, err = TranslateGenerics(ctx, "<T>", []string{"T: Clone"})
	require.NoError(t, err)
	require.Equal(t, "<T> where T: Clone", g.String())

	_, err = TranslateGenerics(ctx, "<T>", []string{"'b: 'static"})
	require.Error(t, err)
}

func errorsIs(err error, code diag.Code) bool {
	de, ok := err.(*diag.Error)
	return ok && de.Code == code
}

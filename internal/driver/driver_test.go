package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"fixit/internal/config"
	"fixit/internal/diag"
	"fixit/internal/driver"
	"fixit/internal/engine"
)

func tree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return root
}

func collect(ch <-chan driver.Result) map[string]driver.Result {
	out := make(map[string]driver.Result)
	for r := range ch {
		out[r.Path] = r
	}
	return out
}

func TestDiscoverSkipsHiddenAndExcluded(t *testing.T) {
	root := tree(t, map[string]string{
		"fixit.toml":           "[lint]\nexclude = [\"gen\"]\n",
		"a.py":                 "",
		"pkg/b.py":             "",
		"pkg/c.pyi":            "",
		"pkg/readme.txt":       "",
		".venv/lib/x.py":       "",
		"venv/y.py":            "",
		"pkg/__pycache__/z.py": "",
		"gen/out.py":           "",
	})
	files, err := driver.Discover([]string{root}, config.NewCache(0))
	require.NoError(t, err)

	var rel []string
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	require.Equal(t, []string{"a.py", "pkg/b.py", "pkg/c.pyi"}, rel)

	explicit := filepath.Join(root, "gen", "out.py")
	files, err = driver.Discover([]string{explicit, explicit}, config.NewCache(0))
	require.NoError(t, err)
	require.Equal(t, []string{explicit}, files)
}

func TestLintPathsUnorderedResults(t *testing.T) {
	root := tree(t, map[string]string{
		"ok.py":      "x = 1\n",
		"bad.py":     "x = (\n",
		"cmp.py":     "x == None\n",
		"sub/cls.py": "class A(object):\n    pass\n",
	})
	events := make(chan driver.Event, 64)
	files, ch, err := driver.LintPaths(context.Background(), []string{root}, driver.Options{
		Configs:  config.NewCache(0),
		Jobs:     2,
		Progress: driver.ChannelSink{Ch: events},
	})
	require.NoError(t, err)
	require.Len(t, files, 4)

	got := collect(ch)
	require.Len(t, got, 4)

	require.NoError(t, got[filepath.Join(root, "ok.py")].Err)
	require.Empty(t, got[filepath.Join(root, "ok.py")].Diagnostics)

	bad := got[filepath.Join(root, "bad.py")]
	require.ErrorIs(t, bad.Err, engine.ErrParse)
	require.True(t, bad.Failed())

	cmp := got[filepath.Join(root, "cmp.py")]
	require.NoError(t, cmp.Err)
	require.Len(t, cmp.Diagnostics, 1)
	require.Equal(t, "CompareSingletonPrimitivesByIs", string(cmp.Diagnostics[0].Code))

	close(events)
	var done, failed int
	for ev := range events {
		switch ev.Status {
		case driver.StatusDone:
			done++
		case driver.StatusError:
			failed++
		}
	}
	require.Equal(t, 3, done)
	require.Equal(t, 1, failed)
}

func TestConfigDisablesRules(t *testing.T) {
	root := tree(t, map[string]string{
		"fixit.toml": "[lint]\ndisable = [\"CompareSingletonPrimitivesByIs\"]\n",
		"cmp.py":     "x == None\n",
	})
	res := driver.LintFile(context.Background(), filepath.Join(root, "cmp.py"), driver.Options{Configs: config.NewCache(0)})
	require.NoError(t, res.Err)
	require.Empty(t, res.Diagnostics)

	res = driver.LintFile(context.Background(), filepath.Join(root, "cmp.py"), driver.Options{})
	require.Len(t, res.Diagnostics, 1, "without the config cache defaults apply")
}

func TestEnableKeepsUnusedSuppressionCheck(t *testing.T) {
	root := tree(t, map[string]string{"a.py": "x = 1  # noqa\n"})
	res := driver.LintFile(context.Background(), filepath.Join(root, "a.py"), driver.Options{
		Enable: []diag.Code{"NoBareExcept"},
	})
	require.NoError(t, res.Err)
	require.Len(t, res.Diagnostics, 1)
	require.Equal(t, "UnusedSuppression", string(res.Diagnostics[0].Code))
}

func TestResultCacheRoundTrip(t *testing.T) {
	root := tree(t, map[string]string{"cmp.py": "x == None\n"})
	cache, err := driver.NewResultCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	opts := driver.Options{Cache: cache}
	path := filepath.Join(root, "cmp.py")

	first := driver.LintFile(context.Background(), path, opts)
	require.NoError(t, first.Err)
	require.False(t, first.Cached)

	second := driver.LintFile(context.Background(), path, opts)
	require.NoError(t, second.Err)
	require.True(t, second.Cached)
	require.Len(t, second.Diagnostics, len(first.Diagnostics))
	for i := range first.Diagnostics {
		require.Equal(t, first.Diagnostics[i].Code, second.Diagnostics[i].Code)
		require.Equal(t, first.Diagnostics[i].Pos, second.Diagnostics[i].Pos)
		require.Equal(t, first.Diagnostics[i].Message, second.Diagnostics[i].Message)
	}

	require.NoError(t, os.WriteFile(path, []byte("x == True\n"), 0o644))
	third := driver.LintFile(context.Background(), path, opts)
	require.False(t, third.Cached, "content change misses")

	require.NoError(t, cache.DropAll())
	fourth := driver.LintFile(context.Background(), path, opts)
	require.False(t, fourth.Cached)
}

func TestFixWritesAndReportsDiff(t *testing.T) {
	root := tree(t, map[string]string{"a.py": "x == None  # noqa: NoBareExcept\n"})
	path := filepath.Join(root, "a.py")
	res := driver.LintFile(context.Background(), path, driver.Options{Fix: true, Write: true})
	require.NoError(t, res.Err)
	require.True(t, res.Changed)
	require.True(t, res.Written)
	require.Len(t, res.Fixed, 2)
	require.Empty(t, res.Diagnostics)
	require.Contains(t, res.Diff, "+x is None")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "x is None\n", string(got))
}

func TestLintSourceNeverWrites(t *testing.T) {
	res := driver.LintSource(context.Background(), "<stdin>", []byte("class A(object):\n    pass\n"), driver.Options{Fix: true, Write: true})
	require.NoError(t, res.Err)
	require.True(t, res.Changed)
	require.False(t, res.Written)
	require.Contains(t, res.Diff, "+class A:")
}

func TestTimings(t *testing.T) {
	root := tree(t, map[string]string{"a.py": "x = 1\n"})
	res := driver.LintFile(context.Background(), filepath.Join(root, "a.py"), driver.Options{Timings: true})
	require.NoError(t, res.Err)
	require.NotNil(t, res.Timings)
	var names []string
	for _, p := range res.Timings.Phases {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	require.Contains(t, names, "tokenize")
	require.Contains(t, names, "visit")
}

func TestSuppressFileInsertsAndSilences(t *testing.T) {
	root := tree(t, map[string]string{
		"fixit.toml": "[suppress]\nkind = \"lint-ignore\"\n",
		"a.py":       "def f():\n    if x == None:\n        pass\n",
	})
	path := filepath.Join(root, "a.py")
	opts := driver.Options{Configs: config.NewCache(0), Write: true}

	res := driver.SuppressFile(context.Background(), path, opts, driver.SuppressOptions{})
	require.NoError(t, res.Err)
	require.Equal(t, 1, res.Inserted)
	require.True(t, res.Written)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(got), "    # lint-ignore: CompareSingletonPrimitivesByIs")

	again := driver.LintFile(context.Background(), path, opts)
	require.NoError(t, again.Err)
	require.Empty(t, again.Diagnostics, "the inserted comment is used, not reported")

	none := driver.SuppressFile(context.Background(), path, opts, driver.SuppressOptions{})
	require.NoError(t, none.Err)
	require.Zero(t, none.Inserted)
	require.False(t, none.Changed)
}

func TestSuppressFileDryRun(t *testing.T) {
	root := tree(t, map[string]string{"a.py": "x == None\n"})
	path := filepath.Join(root, "a.py")
	res := driver.SuppressFile(context.Background(), path, driver.Options{}, driver.SuppressOptions{Kind: "lint-fixme"})
	require.NoError(t, res.Err)
	require.True(t, res.Changed)
	require.False(t, res.Written)
	require.Contains(t, res.Diff, "+# lint-fixme: CompareSingletonPrimitivesByIs")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "x == None\n", string(got))
}

func TestDirsSkipsHidden(t *testing.T) {
	root := tree(t, map[string]string{
		"a.py":           "",
		"pkg/sub/b.py":   "",
		".git/config":    "",
		"venv/lib/c.py":  "",
		"node_modules/x": "",
	})
	dirs, err := driver.Dirs([]string{root, filepath.Join(root, "a.py")})
	require.NoError(t, err)
	require.Equal(t, []string{root, filepath.Join(root, "pkg"), filepath.Join(root, "pkg", "sub")}, dirs)
	require.True(t, driver.IsPython("m.pyi"))
	require.False(t, driver.IsPython("m.pyc"))
}

package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fixit/internal/cst"
	"fixit/internal/diag"
	"fixit/internal/engine"
	"fixit/internal/lexer"
	"fixit/internal/patch"
	"fixit/internal/rule"
	"fixit/internal/rules"
	"fixit/internal/source"
	"fixit/internal/suppress"
)

func builtin(t *testing.T) []rule.Factory {
	t.Helper()
	fs, err := rules.Builtin().Select(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return fs
}

func opts(t *testing.T) engine.Options {
	return engine.Options{Rules: builtin(t), UseIgnoreComments: true}
}

func load(src string) (*source.FileSet, *source.File) {
	fs := source.NewFileSet()
	return fs, fs.Get(fs.AddVirtual("t.py", []byte(src)))
}

func lint(t *testing.T, src string, o engine.Options) *engine.Report {
	t.Helper()
	_, f := load(src)
	rep, err := engine.Lint(context.Background(), f, o)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	return rep
}

type brief struct {
	Code diag.Code
	Line uint32
	Col  uint32
}

func briefs(ds []diag.Diagnostic) []brief {
	out := []brief{}
	for _, d := range ds {
		out = append(out, brief{d.Code, d.Pos.Line, d.Pos.Col})
	}
	return out
}

func TestLintReportsPositions(t *testing.T) {
	src := "x = None\nif x == None:\n    pass\n"
	got := briefs(lint(t, src, opts(t)).Diagnostics)
	want := []brief{{"CompareSingletonPrimitivesByIs", 2, 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got)\n%s", diff)
	}
}

func TestNoqaSuppressesAndIsUsed(t *testing.T) {
	src := "x = None\ny = x == None  # noqa: CompareSingletonPrimitivesByIs\n"
	rep := lint(t, src, opts(t))
	if len(rep.Diagnostics) != 0 || rep.Suppressed != 1 {
		t.Fatalf("got %v, suppressed %d", briefs(rep.Diagnostics), rep.Suppressed)
	}
}

func TestUnusedNoqaRemovedByFix(t *testing.T) {
	fs, f := load("x = 1  # noqa\n")
	res, err := engine.Fix(context.Background(), fs, f, opts(t))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(res.File.Content); got != "x = 1\n" {
		t.Fatalf("got %q", got)
	}
	if len(res.Fixed) != 1 || res.Fixed[0].Code != rules.UnusedSuppressionCode {
		t.Fatalf("fixed: %v", briefs(res.Fixed))
	}
	if len(res.Remaining) != 0 {
		t.Fatalf("remaining: %v", briefs(res.Remaining))
	}
}

func TestLintIgnoreCreditedBeforeNoqa(t *testing.T) {
	src := "x = None\n" +
		"# lint-ignore: CompareSingletonPrimitivesByIs\n" +
		"y = x == None  # noqa\n"
	rep := lint(t, src, opts(t))

	var ignore, noqa *suppress.Comment
	for _, c := range rep.Index.Local.Comments {
		switch c.Kind {
		case suppress.KindLintIgnore:
			ignore = c
		case suppress.KindNoqa:
			noqa = c
		}
	}
	if ignore == nil || noqa == nil {
		t.Fatal("both comments must be parsed")
	}
	if !ignore.Used() || noqa.Used() {
		t.Fatalf("lint-ignore used=%v, noqa used=%v", ignore.Used(), noqa.Used())
	}
	want := []brief{{rules.UnusedSuppressionCode, 3, 15}}
	if diff := cmp.Diff(want, briefs(rep.Diagnostics)); diff != "" {
		t.Fatalf("(-want +got)\n%s", diff)
	}
}

func TestNarrowingKeepsNeededCodeAndReason(t *testing.T) {
	src := "x = None\n" +
		"# lint-fixme: CompareSingletonPrimitivesByIs, NoBareExcept: keep it\n" +
		"# lint: for now\n" +
		"y = x == None\n"
	fs, f := load(src)
	res, err := engine.Fix(context.Background(), fs, f, opts(t))
	if err != nil {
		t.Fatal(err)
	}
	want := "x = None\n" +
		"# lint-fixme: CompareSingletonPrimitivesByIs: keep it\n" +
		"# lint: for now\n" +
		"y = x == None\n"
	if diff := cmp.Diff(want, string(res.File.Content)); diff != "" {
		t.Fatalf("(-want +got)\n%s", diff)
	}
	if len(res.Fixed) != 1 || len(res.Remaining) != 0 {
		t.Fatalf("fixed %v, remaining %v", briefs(res.Fixed), briefs(res.Remaining))
	}
	if res.Fixed[0].Message == "" || res.Fixed[0].Message == (&rules.UnusedSuppression{}).Message() {
		t.Fatalf("narrowing message should name the code: %q", res.Fixed[0].Message)
	}
}

func TestSuppressionForRuleThatDidNotRunSurvivesFix(t *testing.T) {
	src := "x = None\n" +
		"# lint-fixme: CompareSingletonPrimitivesByIs: legacy code\n" +
		"y = x == None\n"
	factories, err := rules.Builtin().Select([]diag.Code{"NoBareExcept", rules.UnusedSuppressionCode}, nil)
	if err != nil {
		t.Fatal(err)
	}
	fs, f := load(src)
	res, err := engine.Fix(context.Background(), fs, f, engine.Options{Rules: factories, UseIgnoreComments: true})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(src, string(res.File.Content)); diff != "" {
		t.Fatalf("(-want +got)\n%s", diff)
	}
	if len(res.Fixed) != 0 || len(res.Remaining) != 0 {
		t.Fatalf("fixed %v, remaining %v", briefs(res.Fixed), briefs(res.Remaining))
	}

	// глобально отключённое правило тоже не делает код лишним
	src = "# noqa-file: NoBareExcept: generated\n" +
		"try:\n    pass\nexcept:  # noqa: NoBareExcept\n    pass\n"
	rep := lint(t, src, opts(t))
	if len(rep.Diagnostics) != 0 {
		t.Fatalf("got %v", briefs(rep.Diagnostics))
	}
}

func TestContinuationLineCovered(t *testing.T) {
	src := "x = None\n" +
		"# lint-ignore: CompareSingletonPrimitivesByIs\n" +
		"y = 1 + \\\n" +
		"    (x == None)\n"
	rep := lint(t, src, opts(t))
	if len(rep.Diagnostics) != 0 || rep.Suppressed != 1 {
		t.Fatalf("got %v, suppressed %d", briefs(rep.Diagnostics), rep.Suppressed)
	}
}

type countingRule struct {
	rule.BaseVisitor
	code   diag.Code
	visits *int
}

func (r *countingRule) Code() diag.Code   { return r.code }
func (r *countingRule) Message() string   { return "counted" }
func (r *countingRule) Kinds() []cst.Kind { return nil }
func (r *countingRule) Visit(*rule.Context, cst.Node) error {
	*r.visits++
	return nil
}

func TestGlobalSuppressionSkipsRules(t *testing.T) {
	for _, src := range []string{
		"# flake8: noqa\nx == None\n",
		"# noqa-file: Counted, CompareSingletonPrimitivesByIs, UnusedSuppression: legacy\nx == None\n",
	} {
		visits := 0
		o := opts(t)
		o.Rules = append(o.Rules, func() rule.Rule { return &countingRule{code: "Counted", visits: &visits} })
		rep := lint(t, src, o)
		if len(rep.Diagnostics) != 0 {
			t.Errorf("%q: got %v", src, briefs(rep.Diagnostics))
		}
		if visits != 0 {
			t.Errorf("%q: globally ignored rule visited %d nodes", src, visits)
		}
	}
}

func TestIgnoreCommentsOff(t *testing.T) {
	o := opts(t)
	o.UseIgnoreComments = false
	rep := lint(t, "x = None\ny = x == None  # noqa\n", o)
	want := []brief{{"CompareSingletonPrimitivesByIs", 2, 4}}
	if diff := cmp.Diff(want, briefs(rep.Diagnostics)); diff != "" {
		t.Fatalf("(-want +got)\n%s", diff)
	}
}

func TestFixAppliesOnePatchPerPass(t *testing.T) {
	src := "class A(object):\n    pass\n\nif x == None:\n    pass\n"
	fs, f := load(src)
	res, err := engine.Fix(context.Background(), fs, f, opts(t))
	if err != nil {
		t.Fatal(err)
	}
	want := "class A:\n    pass\n\nif x is None:\n    pass\n"
	if diff := cmp.Diff(want, string(res.File.Content)); diff != "" {
		t.Fatalf("(-want +got)\n%s", diff)
	}
	if res.Iterations != 2 || len(res.Fixed) != 2 || res.Capped {
		t.Fatalf("iterations=%d fixed=%d capped=%v", res.Iterations, len(res.Fixed), res.Capped)
	}
	if string(f.Content) != src {
		t.Fatal("input file version changed")
	}
}

// growRule always has one more fix to offer.
type growRule struct{ rule.BaseVisitor }

func (growRule) Code() diag.Code   { return "Grow" }
func (growRule) Message() string   { return "grow" }
func (growRule) Kinds() []cst.Kind { return []cst.Kind{cst.KindModule} }
func (growRule) Visit(ctx *rule.Context, n cst.Node) error {
	p := patch.FromSpan(ctx.File, source.Span{File: ctx.File.ID}, "x")
	return ctx.Report(n, "", rule.WithPatch(p))
}

func TestFixStopsAtIterationCap(t *testing.T) {
	fs, f := load("pass\n")
	o := engine.Options{Rules: []rule.Factory{func() rule.Rule { return growRule{} }}, MaxIterations: 3}
	res, err := engine.Fix(context.Background(), fs, f, o)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(res.File.Content); got != "xxxpass\n" {
		t.Fatalf("got %q", got)
	}
	if !res.Capped || res.Iterations != 3 || len(res.Remaining) != 1 {
		t.Fatalf("capped=%v iterations=%d remaining=%d", res.Capped, res.Iterations, len(res.Remaining))
	}
}

type silentRule struct{ rule.BaseVisitor }

func (silentRule) Code() diag.Code   { return "Silent" }
func (silentRule) Message() string   { return "" }
func (silentRule) Kinds() []cst.Kind { return []cst.Kind{cst.KindModule} }
func (silentRule) Visit(ctx *rule.Context, n cst.Node) error {
	return ctx.Report(n, "")
}

func TestMissingMessageFailsFile(t *testing.T) {
	_, f := load("pass\n")
	_, err := engine.Lint(context.Background(), f, engine.Options{Rules: []rule.Factory{func() rule.Rule { return silentRule{} }}})
	if !errors.Is(err, rule.ErrMissingMessage) {
		t.Fatalf("got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	_, f := load("x = (\n")
	_, err := engine.Lint(context.Background(), f, opts(t))
	var lexErr *lexer.Error
	if !errors.Is(err, engine.ErrParse) || !errors.As(err, &lexErr) {
		t.Fatalf("tokenize failure: %v", err)
	}

	_, f = load("def f(:)\n    pass\n")
	_, err = engine.Lint(context.Background(), f, opts(t))
	var perr *cst.ParseError
	if !errors.Is(err, engine.ErrParse) || !errors.As(err, &perr) {
		t.Fatalf("syntax error: %v", err)
	}
}

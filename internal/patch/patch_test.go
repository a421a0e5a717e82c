package patch_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fixit/internal/patch"
	"fixit/internal/source"
)

type patchCase struct {
	name       string
	src        string
	start, end uint32
	repl       string
}

var cases = []patchCase{
	{"compare", "x = a == None\n", 4, 13, "a is None"},
	{"multiline", "foo(\n  1)\n", 0, 9, "foo(\n  2)"},
	{"crlf", "foo(\r\n  1)\r\n", 0, 10, "foo(\r\n  2)"},
	{"lone cr", "a\rb\r", 0, 3, "a\rc"},
	{"split crlf", "a\r\nb", 0, 4, "a\rXb"},
	{"unicode", "s = 'é'\n", 4, 8, "'è'"},
	{"removal", "class A(object):\n", 7, 15, ""},
	{"insertion", "x\n", 1, 1, "  # noqa"},
	{"shrink", "aa\n", 0, 2, "a"},
	{"identical", "same\n", 0, 4, "same"},
	{"grow", "ab\n", 0, 2, "aXb"},
}

func newFile(src string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("p.py", []byte(src)))
}

func TestMinimizeKeepsApplyResult(t *testing.T) {
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFile(c.src)
			p := patch.FromSpan(f, source.Span{File: f.ID, Start: c.start, End: c.end}, c.repl)
			m := p.Minimize()
			if got, want := m.Apply(c.src), p.Apply(c.src); got != want {
				t.Fatalf("minimized apply = %q, full apply = %q", got, want)
			}
			if diff := cmp.Diff(m, m.Minimize()); diff != "" {
				t.Errorf("Minimize is not a fixpoint (-once +twice):\n%s", diff)
			}
			if m.Start != f.Position(uint32(m.StartOffset)) {
				t.Errorf("start %v does not match offset %d (%v)", m.Start, m.StartOffset, f.Position(uint32(m.StartOffset)))
			}
			if _, err := m.ApplyChecked(c.src); err != nil {
				t.Errorf("ApplyChecked: %v", err)
			}
		})
	}
}

func TestMinimizeShape(t *testing.T) {
	f := newFile("x = a == None\n")
	p := patch.FromSpan(f, source.Span{Start: 4, End: 13}, "a is None").Minimize()
	want := patch.Patch{StartOffset: 6, Start: source.LineCol{Line: 1, Col: 6}, OldText: "==", NewText: "is"}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("minimized patch (-want +got):\n%s", diff)
	}

	f = newFile("foo(\n  1)\n")
	p = patch.FromSpan(f, source.Span{Start: 0, End: 9}, "foo(\n  2)").Minimize()
	want = patch.Patch{StartOffset: 7, Start: source.LineCol{Line: 2, Col: 2}, OldText: "1", NewText: "2"}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("minimized multiline patch (-want +got):\n%s", diff)
	}
}

func TestMinimizeNeverSplitsRunes(t *testing.T) {
	f := newFile("'é'")
	p := patch.FromSpan(f, source.Span{Start: 0, End: uint32(len("'é'"))}, "'è'").Minimize()
	if p.OldText != "é" || p.NewText != "è" {
		t.Errorf("got old=%q new=%q", p.OldText, p.NewText)
	}
}

func TestNoopPatchIsIdentity(t *testing.T) {
	src := "same\n"
	f := newFile(src)
	p := patch.FromSpan(f, source.Span{Start: 0, End: 4}, "same").Minimize()
	if !p.IsNoop() || p.OldText != "" || p.NewText != "" {
		t.Fatalf("expected empty no-op, got %v", p)
	}
	if got := p.Apply(src); got != src {
		t.Errorf("no-op changed source: %q", got)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	src := []byte("abc")
	p := patch.Patch{StartOffset: 1, OldText: "b", NewText: "XYZ"}
	got := p.Apply(string(src))
	if got != "aXYZc" || string(src) != "abc" {
		t.Errorf("Apply = %q, input now %q", got, src)
	}
}

func TestApplyCheckedMismatch(t *testing.T) {
	p := patch.Patch{StartOffset: 1, Start: source.LineCol{Line: 1, Col: 1}, OldText: "zz", NewText: "y"}
	src := "abc"
	got, err := p.ApplyChecked(src)
	if !errors.Is(err, patch.ErrMismatch) {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}
	if got != src {
		t.Errorf("source changed on mismatch: %q", got)
	}
	if _, err := (patch.Patch{StartOffset: 2, OldText: "cd"}).ApplyChecked(src); !errors.Is(err, patch.ErrMismatch) {
		t.Errorf("out of range: expected ErrMismatch, got %v", err)
	}
}

func TestUnifiedDiffAndStat(t *testing.T) {
	before := "a\nb\nc\n"
	after := "a\nB\nc\nd\n"
	text, err := patch.UnifiedDiff("x.py", before, after)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"--- a/x.py\n", "+++ b/x.py\n", "-b\n", "+B\n", "+d\n"} {
		if !strings.Contains(text, want) {
			t.Errorf("diff missing %q:\n%s", want, text)
		}
	}
	st, err := patch.DiffStat(text)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(patch.Stat{Files: 1, Added: 2, Deleted: 1}, st); diff != "" {
		t.Errorf("stat (-want +got):\n%s", diff)
	}

	if text, _ := patch.UnifiedDiff("x.py", before, before); text != "" {
		t.Errorf("identical inputs produced a diff: %q", text)
	}
}

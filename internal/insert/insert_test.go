package insert_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mattn/go-runewidth"

	"fixit/internal/diag"
	"fixit/internal/insert"
	"fixit/internal/lexer"
	"fixit/internal/linemap"
	"fixit/internal/source"
	"fixit/internal/suppress"
)

func virtual(src string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("t.py", []byte(src)))
}

func TestInsertUsesIndentation(t *testing.T) {
	f := virtual("def f():\n    x == None\n")
	res, err := insert.Insert(f, []insert.Request{{Line: 2, Codes: []diag.Code{"X"}, Message: "msg"}}, insert.Options{})
	if err != nil || res.Err() != nil {
		t.Fatalf("Insert: %v / %v", err, res.Err())
	}
	want := "def f():\n    # lint-fixme: X: msg\n    x == None\n"
	if res.Text != want {
		t.Errorf("got:\n%s\nwant:\n%s", res.Text, want)
	}
}

func TestInsertTargetsLogicalLine(t *testing.T) {
	f := virtual("a = 1\nfn3('''\n    multiline\n''')\n")
	res, err := insert.Insert(f, []insert.Request{{Line: 3, Codes: []diag.Code{"IG00"}}}, insert.Options{Kind: suppress.KindLintIgnore})
	if err != nil {
		t.Fatal(err)
	}
	want := "a = 1\n# lint-ignore: IG00\nfn3('''\n    multiline\n''')\n"
	if res.Text != want {
		t.Errorf("got:\n%s\nwant:\n%s", res.Text, want)
	}
}

func TestInsertKeepsNewlineConvention(t *testing.T) {
	f := virtual("a\r\nb\r\n")
	res, err := insert.Insert(f, []insert.Request{
		{Line: 2, Codes: []diag.Code{"B"}},
		{Line: 1, Codes: []diag.Code{"A"}},
	}, insert.Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := "# lint-fixme: A\r\na\r\n# lint-fixme: B\r\nb\r\n"
	if res.Text != want {
		t.Errorf("got %q, want %q", res.Text, want)
	}
}

func TestFailedInsertions(t *testing.T) {
	src := "x = 1\n"
	f := virtual(src)
	res, err := insert.Insert(f, []insert.Request{
		{Line: 1, Codes: []diag.Code{"A"}},
		{Line: 99, Codes: []diag.Code{"B"}},
		{Line: 2, Codes: []diag.Code{"C"}}, // ENDMARKER line
	}, insert.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Failed) != 2 {
		t.Fatalf("failed = %+v", res.Failed)
	}
	if !errors.Is(res.Err(), insert.ErrFailedInsertions) {
		t.Errorf("Err() = %v", res.Err())
	}
	if res.Text != "# lint-fixme: A\nx = 1\n" {
		t.Errorf("text = %q", res.Text)
	}
}

func TestRenderParagraphs(t *testing.T) {
	req := insert.Request{Codes: []diag.Code{"IG00"}, Message: "first block\n\nsecond block\nthird block"}
	got := insert.Render(req, "", insert.Options{})
	want := []string{
		"# lint-fixme: IG00: first block",
		"# lint:",
		"# lint: second block",
		"# lint: third block",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRenderTruncatesToOneLine(t *testing.T) {
	req := insert.Request{Codes: []diag.Code{"IG00"}, Message: "first block\n\nsecond block\nthird block"}
	opts := insert.Options{MaxLines: 1}
	got := insert.Render(req, "", opts)
	if len(got) != 1 {
		t.Fatalf("got %d lines: %q", len(got), got)
	}
	if got[0] != "# lint-fixme: IG00: first block [...]" {
		t.Errorf("line = %q", got[0])
	}
	if w := runewidth.StringWidth(got[0]); w > insert.DefaultCodeWidth {
		t.Errorf("width %d exceeds %d", w, insert.DefaultCodeWidth)
	}
}

func TestTruncateTrimsWholeWords(t *testing.T) {
	req := insert.Request{Codes: []diag.Code{"X"}, Message: "alpha beta gamma delta epsilon zeta eta theta iota kappa"}
	opts := insert.Options{CodeWidth: 40, MinCommentWidth: 10, MaxLines: 1}
	got := insert.Render(req, "", opts)
	want := []string{"# lint-fixme: X: alpha beta gamma [...]"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestTruncateKeepsContinuationMarker(t *testing.T) {
	req := insert.Request{Codes: []diag.Code{"X"}, Message: "a\n" + strings.Repeat("x", 60) + "\nmore"}
	opts := insert.Options{CodeWidth: 40, MinCommentWidth: 10, MaxLines: 2}
	got := insert.Render(req, "", opts)
	if len(got) != 2 || got[1] != "# lint: [...]" {
		t.Errorf("got %q", got)
	}
}

func TestWrappedLinesFitWidth(t *testing.T) {
	msg := strings.Repeat("lorem ipsum dolor sit amet ", 12) + "\n" + strings.Repeat("verylongwordwithoutbreaks", 5)
	opts := insert.Options{CodeWidth: 60, MinCommentWidth: 30}
	indent := "        "
	width := 60 - len(indent)
	for _, line := range insert.Render(insert.Request{Codes: []diag.Code{"W"}, Message: msg}, indent, opts) {
		if w := runewidth.StringWidth(line); w > width {
			t.Errorf("line %q is %d wide, budget %d", line, w, width)
		}
	}
}

func TestMinCommentWidthWins(t *testing.T) {
	opts := insert.Options{CodeWidth: 20, MinCommentWidth: 40}
	lines := insert.Render(insert.Request{Codes: []diag.Code{"W"}, Message: strings.Repeat("word ", 20)}, "                ", opts)
	for _, line := range lines {
		if runewidth.StringWidth(line) > 40 {
			t.Errorf("line %q exceeds minimum comment width budget", line)
		}
	}
	if len(lines) < 2 {
		t.Errorf("expected wrapping, got %q", lines)
	}
}

func TestInsertedCommentParsesBack(t *testing.T) {
	src := "foo(1)\nbar(2)\n"
	f := virtual(src)
	msg := "first block\n\nsecond block\nthird block"
	res, err := insert.Insert(f, []insert.Request{{Line: 2, Codes: []diag.Code{"A", "B"}, Message: msg}}, insert.Options{})
	if err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	toks, err := lexer.Tokenize(fs.Get(fs.AddVirtual("t.py", []byte(res.Text))), lexer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	ix := suppress.Build(linemap.Build(toks), linemap.BuildComments(toks))
	if len(ix.Local.Comments) != 1 {
		t.Fatalf("expected one suppression, got %d", len(ix.Local.Comments))
	}
	c := ix.Local.Comments[0]
	if diff := cmp.Diff([]diag.Code{"A", "B"}, c.Codes); diff != "" {
		t.Errorf("codes (-want +got):\n%s", diff)
	}
	if c.Reason != "first block\n\nsecond block third block" {
		t.Errorf("reason = %q", c.Reason)
	}
	// bar(2) is now on line 6
	if !ix.ShouldIgnore(diag.Diagnostic{Code: "B", Pos: source.LineCol{Line: 6}}) {
		t.Error("inserted comment does not suppress its target")
	}
}

func TestInsertReencodesLatin1(t *testing.T) {
	raw := []byte("# -*- coding: latin-1 -*-\nx = 'caf\xe9'\n")
	fs := source.NewFileSet()
	id, err := fs.AddRaw("l.py", raw)
	if err != nil {
		t.Fatal(err)
	}
	res, err := insert.Insert(fs.Get(id), []insert.Request{{Line: 2, Codes: []diag.Code{"Q"}}}, insert.Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := "# -*- coding: latin-1 -*-\n# lint-fixme: Q\nx = 'caf\xe9'\n"
	if string(res.Content) != want {
		t.Errorf("content = %q", res.Content)
	}
}

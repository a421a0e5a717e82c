package lexer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"fixit/internal/lexer"
	"fixit/internal/source"
	"fixit/internal/token"
)

// tok — компактная запись токена для сравнения: вид, текст, позиции
type tok struct {
	Kind       string
	Text       string
	Start, End [2]uint32
}

func tokenize(t *testing.T, input string) []tok {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.py", []byte(input)))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}
	out := make([]tok, 0, len(toks))
	for _, tk := range toks {
		out = append(out, tok{
			Kind:  tk.Kind.String(),
			Text:  tk.Text,
			Start: [2]uint32{tk.Start.Line, tk.Start.Col},
			End:   [2]uint32{tk.End.Line, tk.End.Col},
		})
	}
	return out
}

func TestSimpleStatement(t *testing.T) {
	want := []tok{
		{"ENCODING", "utf-8", [2]uint32{0, 0}, [2]uint32{0, 0}},
		{"NAME", "x", [2]uint32{1, 0}, [2]uint32{1, 1}},
		{"OP", "=", [2]uint32{1, 2}, [2]uint32{1, 3}},
		{"NUMBER", "1", [2]uint32{1, 4}, [2]uint32{1, 5}},
		{"NEWLINE", "\n", [2]uint32{1, 5}, [2]uint32{1, 6}},
		{"ENDMARKER", "", [2]uint32{2, 0}, [2]uint32{2, 0}},
	}
	if diff := cmp.Diff(want, tokenize(t, "x = 1\n")); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestIndentDedent(t *testing.T) {
	got := tokenize(t, "if x:\n    y\n")
	want := []tok{
		{"ENCODING", "utf-8", [2]uint32{0, 0}, [2]uint32{0, 0}},
		{"NAME", "if", [2]uint32{1, 0}, [2]uint32{1, 2}},
		{"NAME", "x", [2]uint32{1, 3}, [2]uint32{1, 4}},
		{"OP", ":", [2]uint32{1, 4}, [2]uint32{1, 5}},
		{"NEWLINE", "\n", [2]uint32{1, 5}, [2]uint32{1, 6}},
		{"INDENT", "    ", [2]uint32{2, 0}, [2]uint32{2, 4}},
		{"NAME", "y", [2]uint32{2, 4}, [2]uint32{2, 5}},
		{"NEWLINE", "\n", [2]uint32{2, 5}, [2]uint32{2, 6}},
		{"DEDENT", "", [2]uint32{3, 0}, [2]uint32{3, 0}},
		{"ENDMARKER", "", [2]uint32{3, 0}, [2]uint32{3, 0}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestCommentLinesAndBracketsProduceNL(t *testing.T) {
	got := tokenize(t, "# c\nfoo(a,\n  b)\n")
	want := []tok{
		{"ENCODING", "utf-8", [2]uint32{0, 0}, [2]uint32{0, 0}},
		{"COMMENT", "# c", [2]uint32{1, 0}, [2]uint32{1, 3}},
		{"NL", "\n", [2]uint32{1, 3}, [2]uint32{1, 4}},
		{"NAME", "foo", [2]uint32{2, 0}, [2]uint32{2, 3}},
		{"OP", "(", [2]uint32{2, 3}, [2]uint32{2, 4}},
		{"NAME", "a", [2]uint32{2, 4}, [2]uint32{2, 5}},
		{"OP", ",", [2]uint32{2, 5}, [2]uint32{2, 6}},
		{"NL", "\n", [2]uint32{2, 6}, [2]uint32{2, 7}},
		{"NAME", "b", [2]uint32{3, 2}, [2]uint32{3, 3}},
		{"OP", ")", [2]uint32{3, 3}, [2]uint32{3, 4}},
		{"NEWLINE", "\n", [2]uint32{3, 4}, [2]uint32{3, 5}},
		{"ENDMARKER", "", [2]uint32{4, 0}, [2]uint32{4, 0}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTripleQuotedStringSpansLines(t *testing.T) {
	got := tokenize(t, "s = '''a\nb'''\n")
	if got[3].Kind != "STRING" || got[3].Text != "'''a\nb'''" {
		t.Fatalf("expected multi-line STRING, got %+v", got[3])
	}
	if got[3].Start != [2]uint32{1, 4} || got[3].End != [2]uint32{2, 4} {
		t.Errorf("STRING positions = %v..%v", got[3].Start, got[3].End)
	}
	if got[4].Kind != "NEWLINE" || got[4].Start != [2]uint32{2, 4} {
		t.Errorf("expected NEWLINE at 2:4, got %+v", got[4])
	}
}

func TestMissingTrailingNewline(t *testing.T) {
	got := tokenize(t, "x")
	want := []tok{
		{"ENCODING", "utf-8", [2]uint32{0, 0}, [2]uint32{0, 0}},
		{"NAME", "x", [2]uint32{1, 0}, [2]uint32{1, 1}},
		{"NEWLINE", "", [2]uint32{1, 1}, [2]uint32{1, 2}},
		{"ENDMARKER", "", [2]uint32{2, 0}, [2]uint32{2, 0}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestLineContinuationHasNoToken(t *testing.T) {
	got := tokenize(t, "x = 1 + \\\n    2\n")
	var kinds []string
	for _, tk := range got {
		kinds = append(kinds, tk.Kind)
	}
	want := "ENCODING NAME OP NUMBER OP NUMBER NEWLINE ENDMARKER"
	if strings.Join(kinds, " ") != want {
		t.Fatalf("kinds = %v, want %s", kinds, want)
	}
	if got[5].Start != [2]uint32{2, 4} {
		t.Errorf("continued NUMBER at %v, want 2:4", got[5].Start)
	}
}

func TestNewlineConventions(t *testing.T) {
	crlf := tokenize(t, "a\r\nb\r\n")
	if crlf[2].Text != "\r\n" || crlf[2].End != [2]uint32{1, 3} {
		t.Errorf("CRLF NEWLINE = %+v", crlf[2])
	}
	if crlf[3].Start != [2]uint32{2, 0} {
		t.Errorf("name after CRLF at %v", crlf[3].Start)
	}

	cr := tokenize(t, "a\rb\r")
	if cr[2].Kind != "NEWLINE" || cr[2].Text != "\r" {
		t.Errorf("lone CR should be a NEWLINE, got %+v", cr[2])
	}
	if cr[3].Start != [2]uint32{2, 0} {
		t.Errorf("name after CR at %v", cr[3].Start)
	}
}

func TestTrailingCommentAndPrefixes(t *testing.T) {
	got := tokenize(t, "x = rb'a' + F\"b\"  # noqa\n")
	if got[3].Kind != "STRING" || got[3].Text != "rb'a'" {
		t.Errorf("prefixed bytes literal: %+v", got[3])
	}
	if got[5].Kind != "STRING" || got[5].Text != "F\"b\"" {
		t.Errorf("prefixed f-string: %+v", got[5])
	}
	if got[6].Kind != "COMMENT" || got[6].Text != "# noqa" {
		t.Errorf("trailing comment: %+v", got[6])
	}
}

func TestOperatorsGreedy(t *testing.T) {
	got := tokenize(t, "a **= b // c -> d := e...\n")
	var ops []string
	for _, tk := range got {
		if tk.Kind == "OP" {
			ops = append(ops, tk.Text)
		}
	}
	want := []string{"**=", "//", "->", ":=", "..."}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		name, input, msg string
	}{
		{"unterminated triple", "x = '''abc\n", "unterminated triple-quoted"},
		{"unterminated single", "x = 'abc\n", "unterminated string"},
		{"open bracket at eof", "foo(\n", "multi-line statement"},
		{"bad dedent", "if x:\n    a\n  b\n", "unindent does not match"},
		{"continuation at eof", "x = \\\n", "multi-line statement"},
		{"garbage after backslash", "x = \\ 1\n", "after line continuation"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("bad.py", []byte(c.input)))
			_, err := lexer.Tokenize(file, lexer.Options{})
			var lexErr *lexer.Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *lexer.Error, got %v", err)
			}
			if !strings.Contains(lexErr.Msg, c.msg) {
				t.Errorf("message %q does not mention %q", lexErr.Msg, c.msg)
			}
		})
	}
}

func TestNextAfterEndKeepsReturningEndMarker(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("e.py", nil))
	lx := lexer.New(file, lexer.Options{})
	if k := lx.Next().Kind; k != token.Encoding {
		t.Fatalf("first token = %s", k)
	}
	for i := 0; i < 3; i++ {
		tk := lx.Next()
		if tk.Kind != token.EndMarker {
			t.Fatalf("call %d: got %s, want ENDMARKER", i, tk.Kind)
		}
		if tk.Start.Line != 1 {
			t.Fatalf("ENDMARKER of empty file on line %d, want 1", tk.Start.Line)
		}
	}
}

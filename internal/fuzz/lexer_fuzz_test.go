package fuzztests

import (
	"testing"

	"fixit/internal/lexer"
	"fixit/internal/linemap"
	"fixit/internal/source"
	"fixit/internal/suppress"
	"fixit/internal/testkit"
	"fixit/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.py", clampInput(input)))

		toks, err := lexer.Tokenize(file, lexer.Options{})
		if err != nil {
			return
		}
		if err := testkit.CheckTokenInvariants(file, toks); err != nil {
			t.Fatalf("%v\ninput: %q", err, input)
		}
		if err := testkit.CheckLineMapInvariants(file, linemap.Build(toks)); err != nil {
			t.Fatalf("%v\ninput: %q", err, input)
		}
	})
}

// FuzzLexerNextSticky checks that Next keeps returning the final token.
func FuzzLexerNextSticky(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.py", clampInput(input)))

		lx := lexer.New(file, lexer.Options{})
		var last token.Token
		for i := 0; ; i++ {
			last = lx.Next()
			if last.Kind == token.EndMarker || last.Kind == token.Invalid {
				break
			}
			if i > 4*len(input)+16 {
				t.Fatalf("lexer does not terminate on %q", input)
			}
		}
		if again := lx.Next(); again.Kind != last.Kind {
			t.Fatalf("Next after %s returned %s", last.Kind, again.Kind)
		}
		if (last.Kind == token.Invalid) != (lx.Err() != nil) {
			t.Fatalf("final token %s with err %v", last.Kind, lx.Err())
		}
	})
}

func FuzzSuppressIndex(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("x = 1  # noqa\n"))
	f.Add([]byte("# lint-ignore: A, B: why\n# lint: because\nx = (\n  1)\n"))
	f.Add([]byte("# noqa-file: A\n# flake8: noqa\n"))
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.py", clampInput(input)))

		toks, err := lexer.Tokenize(file, lexer.Options{})
		if err != nil {
			return
		}
		lines := linemap.Build(toks)
		ix := suppress.Build(lines, linemap.BuildComments(toks))
		for _, c := range ix.Comments() {
			if c.LastLine() < c.Line() {
				t.Fatalf("comment spans lines %d..%d", c.Line(), c.LastLine())
			}
			if c.Used() {
				t.Fatalf("fresh comment on line %d already used", c.Line())
			}
		}
	})
}

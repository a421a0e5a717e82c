package fuzztests

import (
	"context"
	"testing"
	"time"

	"fixit/internal/cst"
	"fixit/internal/source"
)

// parseTimeout is the maximum time allowed for parsing a single input.
const parseTimeout = 5 * time.Second

// FuzzParserNoHang checks that the tree-sitter parse returns on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("def f(:\n"))
	f.Add([]byte("class A(((((\n"))
	f.Add([]byte("x = [\n" + "1,\n"))
	f.Add([]byte("if x:\n\tpass\n        pass\n"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.py", input))
			tree, err := cst.Parse(ctx, file)
			if err == nil {
				tree.Close()
			}
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}

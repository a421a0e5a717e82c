package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// pythonSeeds cover the token shapes the line map and suppression index care about.
var pythonSeeds = []string{
	"",
	"x = 1\n",
	"x == None  # noqa: CompareSingleton\n",
	"def f(a,\n      b):\n    return a + \\\n        b\n",
	"s = '''line\n# not a comment\n'''\n",
	"if x:\r\n    pass\r\n",
	"class A(object):\n\tpass\n",
	"# lint-fixme: A: first\n# lint: second\ntry:\n    pass\nexcept:\n    pass\n",
	"# flake8: noqa\n",
	"f'{x!r:>{width}}'\n",
	"x = 1\rprint(x)\r",
	"\xef\xbb\xbfx = 1\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range pythonSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.py файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".py" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

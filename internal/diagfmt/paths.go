package diagfmt

import (
	"os"
	"path/filepath"

	"fixit/internal/source"
)

func displayPath(p string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := source.AbsolutePath(p); err == nil {
			return abs
		}
	case PathModeRelative:
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := source.RelativePath(p, baseDir); err == nil {
			return rel
		}
	case PathModeBasename:
		return source.BaseName(p)
	}
	return filepath.ToSlash(p)
}

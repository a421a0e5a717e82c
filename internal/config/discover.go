package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Find walks up from startDir and returns the nearest config file.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range Names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadFor returns the config governing files in dir, or defaults.
func LoadFor(dir string) (*Config, error) {
	p, ok, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(p)
}

// IsConfigFile reports whether a file name is one of Names.
func IsConfigFile(path string) bool {
	return slices.Contains(Names, filepath.Base(path))
}

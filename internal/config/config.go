// Package config loads fixit.toml / .fixit.yaml.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"fixit/internal/diag"
)

// Names are tried in this order in every directory.
var Names = []string{"fixit.toml", ".fixit.yaml", ".fixit.yml"}

var ErrInvalid = errors.New("invalid config")

type Config struct {
	// Path is the file this came from; empty for defaults.
	Path string `toml:"-" yaml:"-"`

	Lint     LintConfig     `toml:"lint" yaml:"lint"`
	Fix      FixConfig      `toml:"fix" yaml:"fix"`
	Suppress SuppressConfig `toml:"suppress" yaml:"suppress"`
	Run      RunConfig      `toml:"run" yaml:"run"`
}

type LintConfig struct {
	Enable            []string `toml:"enable" yaml:"enable"`
	Disable           []string `toml:"disable" yaml:"disable"`
	UseIgnoreComments bool     `toml:"use_ignore_comments" yaml:"use_ignore_comments"`
	// Exclude — glob-шаблоны относительно каталога конфига
	Exclude []string `toml:"exclude" yaml:"exclude"`
}

type FixConfig struct {
	MaxIterations int `toml:"max_iterations" yaml:"max_iterations"`
	// Formatter is an argv reading source on stdin and writing it to stdout.
	Formatter []string `toml:"formatter" yaml:"formatter"`
}

type SuppressConfig struct {
	Kind            string `toml:"kind" yaml:"kind"`
	CodeWidth       int    `toml:"code_width" yaml:"code_width"`
	MinCommentWidth int    `toml:"min_comment_width" yaml:"min_comment_width"`
	MaxLines        int    `toml:"max_lines" yaml:"max_lines"`
}

type RunConfig struct {
	Jobs  int  `toml:"jobs" yaml:"jobs"`
	Cache bool `toml:"cache" yaml:"cache"`
}

func Default() *Config {
	return &Config{
		Lint: LintConfig{UseIgnoreComments: true},
		Fix:  FixConfig{MaxIterations: 100},
		Suppress: SuppressConfig{
			Kind:            "lint-fixme",
			CodeWidth:       88,
			MinCommentWidth: 40,
			MaxLines:        3,
		},
		Run: RunConfig{Cache: true},
	}
}

// Dir is the directory exclude patterns are relative to.
func (c *Config) Dir() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// Load reads one config file; the format follows the extension.
func Load(p string) (*Config, error) {
	cfg := Default()
	cfg.Path = p
	switch filepath.Ext(p) {
	case ".toml":
		meta, err := toml.DecodeFile(p, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", p, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: %w: unknown key %q", p, ErrInvalid, undecoded[0].String())
		}
		if meta.IsDefined("fix", "formatter") && len(cfg.Fix.Formatter) == 0 {
			return nil, fmt.Errorf("%s: %w: fix.formatter is empty", p, ErrInvalid)
		}
	case ".yaml", ".yml":
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: failed to parse YAML: %w", p, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w: unsupported config format", p, ErrInvalid)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Suppress.Kind {
	case "lint-fixme", "lint-ignore":
	default:
		return fmt.Errorf("%w: suppress.kind must be lint-fixme or lint-ignore, got %q", ErrInvalid, c.Suppress.Kind)
	}
	if c.Fix.MaxIterations < 0 {
		return fmt.Errorf("%w: fix.max_iterations is negative", ErrInvalid)
	}
	if c.Suppress.CodeWidth <= 0 || c.Suppress.MinCommentWidth <= 0 || c.Suppress.MaxLines < 0 {
		return fmt.Errorf("%w: suppress widths must be positive", ErrInvalid)
	}
	for _, list := range [][]string{c.Lint.Enable, c.Lint.Disable} {
		for _, code := range list {
			if !diag.Code(code).Valid() {
				return fmt.Errorf("%w: bad rule code %q", ErrInvalid, code)
			}
		}
	}
	for _, pat := range c.Lint.Exclude {
		if _, err := path.Match(pat, ""); err != nil {
			return fmt.Errorf("%w: exclude pattern %q: %w", ErrInvalid, pat, err)
		}
	}
	return nil
}

// Codes converts a configured code list.
func Codes(list []string) []diag.Code {
	out := make([]diag.Code, 0, len(list))
	for _, s := range list {
		out = append(out, diag.Code(strings.TrimSpace(s)))
	}
	return out
}

// Excluded reports whether file matches an exclude pattern. Patterns are
// matched against every run of path elements relative to the config
// directory: "build" excludes "pkg/build/x.py", "gen/*.py" excludes "a/gen/b.py".
func (c *Config) Excluded(file string) bool {
	if len(c.Lint.Exclude) == 0 {
		return false
	}
	rel := file
	if dir := c.Dir(); dir != "" {
		if r, err := filepath.Rel(dir, file); err == nil {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)
	parts := strings.Split(rel, "/")
	for i := range parts {
		for j := i + 1; j <= len(parts); j++ {
			run := strings.Join(parts[i:j], "/")
			for _, pat := range c.Lint.Exclude {
				if ok, _ := path.Match(pat, run); ok {
					return true
				}
			}
		}
	}
	return false
}

package driver

import (
	"io"
	"path/filepath"
	"slices"

	"github.com/sirupsen/logrus"

	"fixit/internal/config"
	"fixit/internal/diag"
	"fixit/internal/engine"
	"fixit/internal/fix"
	"fixit/internal/rule"
	"fixit/internal/rules"
)

// Options are shared by every file of a run. Zero values defer to the
// config file found for each file.
type Options struct {
	Registry *rule.Registry // nil = rules.Builtin()
	Configs  *config.Cache  // nil = defaults everywhere

	// Enable replaces the configured enable list when non-empty;
	// Disable is added to the configured one.
	Enable, Disable  []diag.Code
	NoIgnoreComments bool
	Jobs             int

	// Fix runs the autofix loop; Write stores the result.
	Fix, Write bool
	// Formatter overrides fix.formatter from config.
	Formatter []string

	Cache    *ResultCache // только для запусков без фикса
	Progress ProgressSink
	Logger   logrus.FieldLogger
	Timings  bool
}

func (o *Options) logger() logrus.FieldLogger {
	if o.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Logger = l
	}
	return o.Logger
}

func (o *Options) registry() *rule.Registry {
	if o.Registry == nil {
		o.Registry = rules.Builtin()
	}
	return o.Registry
}

func (o *Options) configFor(path string) (*config.Config, error) {
	if o.Configs == nil {
		return config.Default(), nil
	}
	return o.Configs.Get(filepath.Dir(path))
}

// plan is everything needed to lint one file.
type plan struct {
	cfg       *config.Config
	engine    engine.Options
	codes     []diag.Code
	formatter *fix.Formatter
}

func (o *Options) plan(cfg *config.Config) (*plan, error) {
	reg := o.registry()
	enable := o.Enable
	if len(enable) == 0 {
		enable = config.Codes(cfg.Lint.Enable)
	}
	disable := append(config.Codes(cfg.Lint.Disable), o.Disable...)
	// проверка неиспользуемых подавлений не требует явного включения
	if len(enable) > 0 && !slices.Contains(enable, rules.UnusedSuppressionCode) {
		if _, ok := reg.Get(rules.UnusedSuppressionCode); ok {
			enable = append(slices.Clone(enable), rules.UnusedSuppressionCode)
		}
	}
	factories, err := reg.Select(enable, disable)
	if err != nil {
		return nil, err
	}
	codes := make([]diag.Code, len(factories))
	for i, f := range factories {
		codes[i] = f().Code()
	}
	argv := o.Formatter
	if len(argv) == 0 {
		argv = cfg.Fix.Formatter
	}
	return &plan{
		cfg: cfg,
		engine: engine.Options{
			Rules:             factories,
			UseIgnoreComments: cfg.Lint.UseIgnoreComments && !o.NoIgnoreComments,
			MaxIterations:     cfg.Fix.MaxIterations,
			Logger:            o.logger(),
		},
		codes:     codes,
		formatter: fix.NewFormatter(argv),
	}, nil
}

func (o *Options) normalize() {
	o.logger()
	o.registry()
}

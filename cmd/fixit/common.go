package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"fixit/internal/config"
	"fixit/internal/diag"
	"fixit/internal/diagfmt"
	"fixit/internal/driver"
)

// addRunFlags registers the flags shared by lint, fix and suppress.
func addRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSlice("rules", nil, "only run these rule codes (comma separated)")
	flags.StringSlice("disable", nil, "skip these rule codes")
	flags.Bool("no-ignore-comments", false, "ignore noqa / lint-ignore / lint-fixme comments")
	flags.IntP("jobs", "j", 0, "parallel workers (0 = config or GOMAXPROCS)")
	flags.String("format", "pretty", "output format (pretty|short|json)")
	flags.String("ui", "auto", "progress UI for directory runs (auto|on|off)")
}

type runFlags struct {
	format diagfmt.Format
	ui     uiMode
	opts   driver.Options
}

func readRunFlags(cmd *cobra.Command, configs *config.Cache) (runFlags, error) {
	var rf runFlags
	flags := cmd.Flags()

	formatStr, _ := flags.GetString("format")
	format, err := diagfmt.ParseFormat(formatStr)
	if err != nil {
		return rf, err
	}
	uiStr, _ := flags.GetString("ui")
	ui, err := readUIMode(uiStr)
	if err != nil {
		return rf, err
	}
	enable, _ := flags.GetStringSlice("rules")
	disable, _ := flags.GetStringSlice("disable")
	noIgnore, _ := flags.GetBool("no-ignore-comments")
	jobs, _ := flags.GetInt("jobs")
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")

	rf.format = format
	rf.ui = ui
	rf.opts = driver.Options{
		Configs:          configs,
		Enable:           config.Codes(enable),
		Disable:          config.Codes(disable),
		NoIgnoreComments: noIgnore,
		Jobs:             jobs,
		Logger:           logger,
		Timings:          timings,
	}
	if err := checkCodes(rf.opts.Enable, rf.opts.Disable); err != nil {
		return rf, err
	}
	return rf, nil
}

func checkCodes(lists ...[]diag.Code) error {
	for _, list := range lists {
		for _, c := range list {
			if !c.Valid() {
				return fmt.Errorf("invalid rule code %q", c)
			}
		}
	}
	return nil
}

// jobsFor picks the worker count: flag, then the config next to the first
// path, then GOMAXPROCS.
func jobsFor(opts driver.Options, paths []string) int {
	if opts.Jobs > 0 || len(paths) == 0 {
		return opts.Jobs
	}
	dir := paths[0]
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	if cfg, err := opts.Configs.Get(dir); err == nil {
		return cfg.Run.Jobs
	}
	return 0
}

func defaultPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// collect lints files and gathers results sorted by path. With a TTY and
// more than one file the progress UI is shown meanwhile.
func collect(ctx context.Context, files []string, opts driver.Options, mode uiMode, title string) ([]driver.Result, error) {
	var results []driver.Result
	if len(files) > 1 && mode.enabled() {
		var err error
		results, err = runWithUI(ctx, title, files, opts)
		if err != nil {
			return nil, err
		}
	} else {
		for r := range driver.LintFiles(ctx, files, opts) {
			results = append(results, r)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, ctx.Err()
}

// render prints results in the chosen format and reports whether the run
// should fail.
func render(cmd *cobra.Command, w io.Writer, results []driver.Result, format diagfmt.Format, showDiff bool) (diagfmt.Summary, error) {
	var sum diagfmt.Summary
	switch format {
	case diagfmt.FormatJSON:
		if err := diagfmt.JSON(w, results, diagfmt.JSONOpts{IncludeFixes: true, IncludeDiffs: showDiff}); err != nil {
			return sum, err
		}
		sum = diagfmt.Summarize(results)
	case diagfmt.FormatShort:
		sum = diagfmt.Short(w, results, diagfmt.PrettyOpts{})
		if showDiff {
			diagfmt.WriteDiff(w, diagfmt.Diffs(results), false)
		}
	default:
		colored := useColor(cmd, os.Stdout)
		sum = diagfmt.Pretty(w, results, diagfmt.NewLines(), diagfmt.PrettyOpts{
			Color:    colored,
			Context:  true,
			ShowDiff: showDiff,
		})
		quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
		if !quiet {
			diagfmt.WriteSummary(cmd.ErrOrStderr(), sum, useColor(cmd, os.Stderr))
		}
	}
	printTimings(cmd.ErrOrStderr(), results)
	return sum, nil
}

func printTimings(w io.Writer, results []driver.Result) {
	for _, r := range results {
		if r.Timings == nil {
			continue
		}
		fmt.Fprintf(w, "%s:\n", r.Path)
		r.Timings.Write(w)
	}
}

func errInvalidKind(kind string) error {
	return fmt.Errorf("invalid --kind %q (expected lint-fixme or lint-ignore)", kind)
}

func writeDiff(cmd *cobra.Command, w io.Writer, diff string) {
	diagfmt.WriteDiff(w, diff, useColor(cmd, os.Stdout))
}

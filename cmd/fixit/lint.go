package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fixit/internal/config"
	"fixit/internal/driver"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] [paths...]",
	Short: "Report lint diagnostics",
	Long: `Lint checks Python files and directories (default: the current directory).
A single "-" reads source from stdin; name it with --stdin-filename so the
right config applies.`,
	RunE: runLint,
}

func init() {
	addRunFlags(lintCmd)
	lintCmd.Flags().String("stdin-filename", "stdin.py", "path used for source read from stdin")
	lintCmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	lintCmd.Flags().BoolP("watch", "w", false, "re-lint files as they change")
}

func runLint(cmd *cobra.Command, args []string) error {
	configs := config.NewCache(0)
	rf, err := readRunFlags(cmd, configs)
	if err != nil {
		return err
	}
	noCache, _ := cmd.Flags().GetBool("no-cache")
	if !noCache {
		rf.opts.Cache = openCache(configs, args)
	}

	if len(args) == 1 && args[0] == "-" {
		name, _ := cmd.Flags().GetString("stdin-filename")
		return lintStdin(cmd, name, rf)
	}

	paths := defaultPaths(args)
	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return watchPaths(cmd, paths, configs, rf)
	}

	ctx := cmd.Context()
	files, err := driver.Discover(paths, configs)
	if err != nil {
		return err
	}
	rf.opts.Jobs = jobsFor(rf.opts, paths)
	results, err := collect(ctx, files, rf.opts, rf.ui, "linting")
	if err != nil {
		return err
	}
	sum, err := render(cmd, cmd.OutOrStdout(), results, rf.format, false)
	if err != nil {
		return err
	}
	if sum.Failed() {
		return errProblems
	}
	return nil
}

func lintStdin(cmd *cobra.Command, name string, rf runFlags) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	res := driver.LintSource(cmd.Context(), name, content, rf.opts)
	sum, err := render(cmd, cmd.OutOrStdout(), []driver.Result{res}, rf.format, false)
	if err != nil {
		return err
	}
	if sum.Failed() {
		return errProblems
	}
	return nil
}

// openCache returns the result cache unless the governing config turns it
// off. Failures only disable caching.
func openCache(configs *config.Cache, args []string) *driver.ResultCache {
	dir := "."
	if len(args) > 0 && args[0] != "-" {
		dir = args[0]
		if info, err := os.Stat(dir); err == nil && !info.IsDir() {
			dir = filepath.Dir(dir)
		}
	}
	if cfg, err := configs.Get(dir); err == nil && !cfg.Run.Cache {
		return nil
	}
	cache, err := driver.OpenResultCache("fixit")
	if err != nil {
		logger.WithError(err).Debug("result cache disabled")
		return nil
	}
	return cache
}

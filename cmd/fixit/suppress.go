package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fixit/internal/config"
	"fixit/internal/driver"
)

var suppressCmd = &cobra.Command{
	Use:   "suppress [flags] [paths...]",
	Short: "Insert suppression comments for every remaining diagnostic",
	Long: `Suppress lints each file and writes a lint-fixme (or lint-ignore) comment
above every line that still has diagnostics, with the rule messages as the
reason. Use --diff to preview.`,
	RunE: runSuppress,
}

func init() {
	addRunFlags(suppressCmd)
	suppressCmd.Flags().String("kind", "", "comment kind (lint-fixme|lint-ignore); default from config")
	suppressCmd.Flags().Int("max-lines", 0, "max comment lines per suppression (0 = config, -1 = unlimited)")
	suppressCmd.Flags().Bool("diff", false, "print unified diffs instead of writing files")
}

func runSuppress(cmd *cobra.Command, args []string) error {
	configs := config.NewCache(0)
	rf, err := readRunFlags(cmd, configs)
	if err != nil {
		return err
	}
	kind, _ := cmd.Flags().GetString("kind")
	maxLines, _ := cmd.Flags().GetInt("max-lines")
	diffOnly, _ := cmd.Flags().GetBool("diff")
	sopts := driver.SuppressOptions{Kind: kind, MaxLines: maxLines}
	if kind != "" && kind != "lint-fixme" && kind != "lint-ignore" {
		return errInvalidKind(kind)
	}
	rf.opts.Write = !diffOnly

	paths := defaultPaths(args)
	files, err := driver.Discover(paths, configs)
	if err != nil {
		return err
	}
	jobs := jobsFor(rf.opts, paths)
	if jobs <= 0 {
		jobs = 4
	}

	results := make([]driver.Result, len(files))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			results[i] = driver.SuppressFile(ctx, path, rf.opts, sopts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	inserted := 0
	failed := false
	for _, r := range results {
		inserted += r.Inserted
		if r.Err != nil {
			failed = true
			logger.WithField("path", r.Path).WithError(r.Err).Error("suppress failed")
		}
	}
	out := cmd.OutOrStdout()
	if diffOnly {
		for _, r := range results {
			if r.Diff != "" {
				writeDiff(cmd, out, r.Diff)
			}
		}
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		verb := "inserted"
		if diffOnly {
			verb = "would insert"
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %d suppression comment(s)\n", verb, inserted)
	}
	if failed {
		return errProblems
	}
	return nil
}

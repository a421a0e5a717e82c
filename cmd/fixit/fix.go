package main

import (
	"strings"

	"github.com/spf13/cobra"

	"fixit/internal/config"
	"fixit/internal/driver"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [paths...]",
	Short: "Apply autofixes and write the files back",
	Long: `Fix runs the autofix loop on each file: lint, apply the first available
patch, lint again, until nothing fixable remains. Fixed files are written
back in their original encoding; --diff only prints what would change.`,
	RunE: runFix,
}

func init() {
	addRunFlags(fixCmd)
	fixCmd.Flags().Bool("diff", false, "print unified diffs instead of writing files")
	fixCmd.Flags().String("formatter", "", "command that formats fixed source from stdin to stdout")
}

func runFix(cmd *cobra.Command, args []string) error {
	configs := config.NewCache(0)
	rf, err := readRunFlags(cmd, configs)
	if err != nil {
		return err
	}
	diffOnly, _ := cmd.Flags().GetBool("diff")
	formatter, _ := cmd.Flags().GetString("formatter")

	rf.opts.Fix = true
	rf.opts.Write = !diffOnly
	rf.opts.Formatter = strings.Fields(formatter)

	paths := defaultPaths(args)
	files, err := driver.Discover(paths, configs)
	if err != nil {
		return err
	}
	rf.opts.Jobs = jobsFor(rf.opts, paths)
	results, err := collect(cmd.Context(), files, rf.opts, rf.ui, "fixing")
	if err != nil {
		return err
	}

	sum, err := render(cmd, cmd.OutOrStdout(), results, rf.format, diffOnly)
	if err != nil {
		return err
	}
	if sum.Failed() {
		return errProblems
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fixit/internal/version"
)

// errProblems means the run finished but something needs attention;
// the details have already been printed.
var errProblems = errors.New("problems found")

var rootCmd = &cobra.Command{
	Use:   "fixit",
	Short: "Lint Python sources and apply autofixes",
	Long: `fixit runs lint rules over Python files, honours noqa / lint-ignore / lint-fixme
suppression comments, reports suppressions that no longer suppress anything
and applies rule autofixes until the file is stable.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		stop, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		profileCleanup = stop
		return nil
	},
}

var (
	traceCleanup   = func(failed bool) {}
	profileCleanup = func() {}
)

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(suppressCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "only log errors")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error); overrides --quiet")
	rootCmd.PersistentFlags().Bool("timings", false, "print per-phase timings for each file")
	addTraceFlags(rootCmd)
	addProfileFlags(rootCmd)
}

// main executes the root command. Exit status is 1 when a command fails or
// leaves problems behind.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	profileCleanup()
	traceCleanup(err != nil && !errors.Is(err, errProblems))
	if err != nil {
		if !errors.Is(err, errProblems) {
			fmt.Fprintf(os.Stderr, "fixit: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on", "always":
		return true
	case "off", "never":
		return false
	}
	return isTerminal(f)
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fixit/internal/rule"
	"fixit/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the built-in rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := rules.Builtin()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, code := range reg.Codes() {
			f, _ := reg.Get(code)
			r := f()
			kind := "rule"
			if _, ok := r.(rule.SuppressionChecker); ok {
				kind = "meta"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", code, kind, r.Message())
		}
		return tw.Flush()
	},
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fixit/internal/diagfmt"
	"fixit/internal/lexer"
	"fixit/internal/linemap"
	"fixit/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.py",
	Short: "Dump the token stream and logical line map of a Python file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("lines", true, "print the physical to logical line map after the tokens (pretty only)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	showLines, _ := cmd.Flags().GetBool("lines")

	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return err
	}
	file := fs.Get(id)
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return diagfmt.FormatTokensJSON(out, toks)
	case "pretty":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err := diagfmt.FormatTokensPretty(out, toks); err != nil {
		return err
	}
	if !showLines {
		return nil
	}
	lines := linemap.Build(toks)
	fmt.Fprintln(out)
	for phys := uint32(1); int(phys) <= file.LineCount(); phys++ {
		logical, ok := lines.Logical(phys)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "%4d -> %d\n", phys, logical)
	}
	return nil
}

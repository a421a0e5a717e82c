package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"fixit/internal/token"
)

type TokenOutput struct {
	Kind       string `json:"kind"`
	Text       string `json:"text"`
	StartLine  uint32 `json:"start_line"`
	StartCol   uint32 `json:"start_col"`
	EndLine    uint32 `json:"end_line"`
	EndCol     uint32 `json:"end_col"`
	Structural bool   `json:"structural,omitempty"`
}

// FormatTokensPretty prints tokens the way Python's tokenize module does:
// "start-end: KIND 'text'".
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for _, tok := range tokens {
		pos := fmt.Sprintf("%d,%d-%d,%d:", tok.Start.Line, tok.Start.Col, tok.End.Line, tok.End.Col)
		if _, err := fmt.Fprintf(w, "%-20s%-15s%q\n", pos, tok.Kind.String(), tok.Text); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:       tok.Kind.String(),
			Text:       tok.Text,
			StartLine:  tok.Start.Line,
			StartCol:   tok.Start.Col,
			EndLine:    tok.End.Line,
			EndCol:     tok.End.Col,
			Structural: tok.Kind.IsStructural(),
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

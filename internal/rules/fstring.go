package rules

import (
	"strings"

	"fixit/internal/cst"
	"fixit/internal/diag"
	"fixit/internal/rule"
)

// NoRedundantFString drops the f prefix from f-strings without placeholders.
type NoRedundantFString struct{ rule.BaseVisitor }

func (*NoRedundantFString) Code() diag.Code { return "NoRedundantFString" }

func (*NoRedundantFString) Message() string {
	return "f-string doesn't have placeholders, remove redundant f-string."
}

func (*NoRedundantFString) Kinds() []cst.Kind { return []cst.Kind{cst.KindString} }

func (r *NoRedundantFString) Visit(ctx *rule.Context, n cst.Node) error {
	text := n.Text()
	quote := strings.IndexAny(text, `"'`)
	if quote <= 0 {
		return nil
	}
	prefix := text[:quote]
	if !strings.ContainsAny(prefix, "fF") {
		return nil
	}
	for _, c := range n.Children() {
		if c.Kind == cst.KindInterpolation {
			return nil
		}
	}
	body := text[quote:]
	// без плейсхолдеров {{ и }} значат просто скобки
	body = strings.NewReplacer("{{", "{", "}}", "}").Replace(body)
	prefix = strings.NewReplacer("f", "", "F", "").Replace(prefix)
	return ctx.Report(n, "", rule.WithReplacement(prefix+body))
}

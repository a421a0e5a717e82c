package rules

import (
	"fixit/internal/cst"
	"fixit/internal/diag"
	"fixit/internal/rule"
)

// NoBareExcept flags `except:` without an exception type. No autofix.
type NoBareExcept struct{ rule.BaseVisitor }

func (*NoBareExcept) Code() diag.Code { return "NoBareExcept" }

func (*NoBareExcept) Message() string {
	return "Bare except also catches KeyboardInterrupt and SystemExit. Catch Exception or a narrower type."
}

func (*NoBareExcept) Kinds() []cst.Kind { return []cst.Kind{cst.KindExcept} }

func (r *NoBareExcept) Visit(ctx *rule.Context, n cst.Node) error {
	for i := 0; i < n.NamedChildCount(); i++ {
		switch n.NamedChild(i).Type() {
		case "block", "comment":
		default:
			return nil
		}
	}
	return ctx.Report(n, "")
}

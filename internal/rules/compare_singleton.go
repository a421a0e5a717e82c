package rules

import (
	"fixit/internal/cst"
	"fixit/internal/diag"
	"fixit/internal/patch"
	"fixit/internal/rule"
)

// CompareSingletonPrimitivesByIs rewrites `x == None` to `x is None`
// and `x != True` to `x is not True`.
type CompareSingletonPrimitivesByIs struct{ rule.BaseVisitor }

func (*CompareSingletonPrimitivesByIs) Code() diag.Code { return "CompareSingletonPrimitivesByIs" }

func (*CompareSingletonPrimitivesByIs) Message() string {
	return "Comparisons to singleton primitives should not be done with == or !=, " +
		"as they check equality rather than identity. Use `is` or `is not` instead."
}

func (*CompareSingletonPrimitivesByIs) Kinds() []cst.Kind { return []cst.Kind{cst.KindComparison} }

func (r *CompareSingletonPrimitivesByIs) Visit(ctx *rule.Context, n cst.Node) error {
	children := n.Children()
	for i := 1; i+1 < len(children); i++ {
		op := children[i]
		var repl string
		switch op.Type() {
		case "==":
			repl = "is"
		case "!=":
			repl = "is not"
		default:
			continue
		}
		if !isSingleton(children[i-1]) && !isSingleton(children[i+1]) {
			continue
		}
		if err := ctx.Report(n, "", rule.WithPatch(patch.Get(ctx.File, op, repl))); err != nil {
			return err
		}
	}
	return nil
}

func isSingleton(n cst.Node) bool {
	switch n.Type() {
	case "none", "true", "false":
		return true
	}
	return false
}

package rules

import (
	"fixit/internal/cst"
	"fixit/internal/diag"
	"fixit/internal/patch"
	"fixit/internal/rule"
)

// NoInheritFromObject turns `class A(object):` into `class A:`.
type NoInheritFromObject struct{ rule.BaseVisitor }

func (*NoInheritFromObject) Code() diag.Code { return "NoInheritFromObject" }

func (*NoInheritFromObject) Message() string {
	return "Inheriting from object is a no-op. 'class Foo:' is just fine =)"
}

func (*NoInheritFromObject) Kinds() []cst.Kind { return []cst.Kind{cst.KindClassDef} }

func (r *NoInheritFromObject) Visit(ctx *rule.Context, n cst.Node) error {
	bases, ok := n.Field("superclasses")
	if !ok || bases.NamedChildCount() != 1 {
		return nil
	}
	base := bases.NamedChild(0)
	if base.Kind != cst.KindIdentifier || base.Text() != "object" {
		return nil
	}
	return ctx.Report(n, "", rule.WithPatch(patch.Get(ctx.File, bases, "")))
}

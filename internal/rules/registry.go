// Package rules is the built-in rule catalog.
package rules

import "fixit/internal/rule"

// Builtin returns a registry with every built-in rule, including the
// unused-suppression check.
func Builtin() *rule.Registry {
	reg := rule.NewRegistry()
	reg.Register(func() rule.Rule { return &CompareSingletonPrimitivesByIs{} })
	reg.Register(func() rule.Rule { return &NoRedundantFString{} })
	reg.Register(func() rule.Rule { return &NoInheritFromObject{} })
	reg.Register(func() rule.Rule { return &NoBareExcept{} })
	reg.Register(func() rule.Rule { return &UnusedSuppression{} })
	return reg
}

package rule

import (
	"fmt"
	"slices"
	"sort"

	"fixit/internal/diag"
)

// Registry maps codes to factories. It is built once at startup.
type Registry struct {
	factories map[diag.Code]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[diag.Code]Factory)}
}

// Register adds a factory; a duplicate code is a programming error.
func (r *Registry) Register(f Factory) {
	code := f().Code()
	if _, ok := r.factories[code]; ok {
		panic(fmt.Sprintf("rule %s registered twice", code))
	}
	r.factories[code] = f
}

func (r *Registry) Get(code diag.Code) (Factory, bool) {
	f, ok := r.factories[code]
	return f, ok
}

// Codes returns registered codes sorted.
func (r *Registry) Codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.factories))
	for c := range r.factories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Select returns factories for enable minus disable, in code order.
// An empty enable list means every registered rule. Unknown codes are an error.
func (r *Registry) Select(enable, disable []diag.Code) ([]Factory, error) {
	for _, list := range [][]diag.Code{enable, disable} {
		for _, c := range list {
			if _, ok := r.factories[c]; !ok {
				return nil, fmt.Errorf("unknown rule %q", c)
			}
		}
	}
	codes := r.Codes()
	if len(enable) > 0 {
		codes = slices.DeleteFunc(codes, func(c diag.Code) bool { return !slices.Contains(enable, c) })
	}
	codes = slices.DeleteFunc(codes, func(c diag.Code) bool { return slices.Contains(disable, c) })
	out := make([]Factory, len(codes))
	for i, c := range codes {
		out[i] = r.factories[c]
	}
	return out, nil
}

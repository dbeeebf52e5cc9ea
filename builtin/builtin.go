// Package builtin implements the host built-in registration protocol: a
// built-in is a (name, callable) pair injected into the root environment
// before evaluation starts (spec.md §6). This core only ships a small
// demonstration catalog — the full math/IO/network catalog is explicitly
// an external collaborator, not part of this package's job.
package builtin

import (
	"fmt"

	"github.com/akashmaji946/mini/evaluator"
	"github.com/akashmaji946/mini/object"
)

// Func is a host-implemented built-in. evalCall lets a built-in invoke a
// mini function value (closure or another built-in) without the builtin
// package importing the evaluator's Eval entry point directly at every call
// site — this is the callback-injection redesign spec.md §9 calls for, so
// that built-ins needing callback semantics (e.g. a list-mapping helper)
// don't require the evaluator to import builtin.
type Func func(args []*object.Value, evalCall EvalCallFunc) (*object.Value, error)

// EvalCallFunc invokes a mini function value with already-normalized args.
type EvalCallFunc func(fn *object.Value, args []*object.Value) (*object.Value, error)

// DefaultEvalCall is the evalCall implementation Bind wires in: it dispatches
// through the evaluator's own Call, the same path CALL expressions use.
func DefaultEvalCall(fn *object.Value, args []*object.Value) (*object.Value, error) {
	if fn.Kind != object.KindFunction {
		return nil, fmt.Errorf("value of kind %s is not callable", fn.Kind)
	}
	return evaluator.Call(fn.Func, args)
}

// Registry holds a set of named built-ins awaiting binding into a root
// environment. Registration order is preserved only for diagnostics; lookup
// is unordered by name.
type Registry struct {
	order   []string
	entries map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Func)}
}

// Register adds name -> fn. Re-registering a name overwrites it silently,
// matching a host that wants to shadow a demo built-in with its own.
func (r *Registry) Register(name string, fn Func) {
	if _, exists := r.entries[name]; !exists {
		r.order = append(r.order, name)
	}
	r.entries[name] = fn
}

// Names returns the registered built-in names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Bind installs every registered built-in into env as a function value,
// wiring DefaultEvalCall as each built-in's callback into the evaluator.
func (r *Registry) Bind(env *object.Environment) {
	for _, name := range r.order {
		fn := r.entries[name]
		env.Set(name, &object.Value{
			Kind: object.KindFunction,
			Func: &object.Function{
				Name: name,
				Builtin: &object.Builtin{
					Name: name,
					Fn: func(args []*object.Value) (*object.Value, error) {
						return fn(args, DefaultEvalCall)
					},
				},
			},
		})
	}
}

package builtin

import (
	"fmt"
	"time"

	"github.com/akashmaji946/mini/object"
)

// NewDemoRegistry returns the small catalog used to exercise the
// registration protocol end to end: printing, length, string conversion, a
// callback-invoking list mapper, and one artificially slow built-in. None of
// this is the math/IO/network catalog
// spec.md excludes from the core.
func NewDemoRegistry() *Registry {
	r := NewRegistry()
	r.Register("print", biPrint)
	r.Register("len", biLen)
	r.Register("str", biStr)
	r.Register("map_apply", biMapApply)
	r.Register("slow_identity", biSlowIdentity)
	return r
}

func biPrint(args []*object.Value, _ EvalCallFunc) (*object.Value, error) {
	parts := make([]any, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	fmt.Println(parts...)
	return object.Unit(), nil
}

func biLen(args []*object.Value, _ EvalCallFunc) (*object.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("len expects 1 argument, got %d", len(args))
	}
	v := args[0]
	switch v.Kind {
	case object.KindList:
		return object.Number(float64(len(v.List.Elements))), nil
	case object.KindTuple:
		return object.Number(float64(len(v.Tuple))), nil
	case object.KindString:
		return object.Number(float64(len(v.Str))), nil
	case object.KindMap:
		return object.Number(float64(v.Map.Len())), nil
	}
	return nil, fmt.Errorf("len is not defined for kind %s", v.Kind)
}

func biStr(args []*object.Value, _ EvalCallFunc) (*object.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("str expects 1 argument, got %d", len(args))
	}
	return object.String(args[0].String()), nil
}

// biMapApply demonstrates the evalCall callback: it invokes a user-supplied
// function once per list element and collects the results.
func biMapApply(args []*object.Value, evalCall EvalCallFunc) (*object.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("map_apply expects (list, fn), got %d argument(s)", len(args))
	}
	list, fn := args[0], args[1]
	if list.Kind != object.KindList {
		return nil, fmt.Errorf("map_apply's first argument must be a list")
	}
	if fn.Kind != object.KindFunction {
		return nil, fmt.Errorf("map_apply's second argument must be a function")
	}
	out := make([]*object.Value, len(list.List.Elements))
	for i, elem := range list.List.Elements {
		v, err := evalCall(fn, []*object.Value{elem})
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return object.List(out), nil
}

// biSlowIdentity sleeps for 2ms before returning its single argument
// unchanged. No test or benchmark in this repository calls it.
func biSlowIdentity(args []*object.Value, _ EvalCallFunc) (*object.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("slow_identity expects 1 argument, got %d", len(args))
	}
	time.Sleep(2 * time.Millisecond)
	return args[0], nil
}

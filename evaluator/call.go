package evaluator

import (
	"fmt"

	"github.com/akashmaji946/mini/ast"
	"github.com/akashmaji946/mini/object"
)

// evalCall implements CALL: the left operand evaluates to a function value,
// the right to the argument tuple. Args are normalized before dispatch: a
// tuple argument unpacks to positional args, unit becomes zero args,
// anything else is a single positional arg (this mirrors how Tuple
// evaluation itself collapses arity, so a 1-arg call and a bare expression
// argument are indistinguishable by the time they reach here).
func evalCall(n *ast.Binary, env *object.Environment) (*object.Value, error) {
	fnVal, err := Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	if fnVal.Kind != object.KindFunction {
		return nil, &TypeError{Msg: fmt.Sprintf("cannot call a value of kind %s", fnVal.Kind)}
	}
	argTuple, err := Eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	args := normalizeArgs(argTuple)
	return Call(fnVal.Func, args)
}

func normalizeArgs(v *object.Value) []*object.Value {
	switch v.Kind {
	case object.KindUnit:
		return nil
	case object.KindTuple:
		return v.Tuple
	default:
		return []*object.Value{v}
	}
}

// Call invokes fn with already-normalized args, dispatching to a closure
// (builds a fresh environment parented by the capturing environment) or a
// host builtin (invoked directly with the argument list).
func Call(fn *object.Function, args []*object.Value) (*object.Value, error) {
	if fn.Builtin != nil {
		return fn.Builtin.Fn(args)
	}
	if len(args) != len(fn.Params) {
		return nil, &TypeError{Msg: fmt.Sprintf("function %s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))}
	}
	callEnv := object.NewEnvironment(fmt.Sprintf("<call %s>", callLabel(fn)), fn.Env)
	for i, p := range fn.Params {
		callEnv.Set(p, args[i])
	}
	body, ok := fn.Body.(ast.Node)
	if !ok {
		return nil, &TypeError{Msg: "closure has no evaluable body"}
	}
	return Eval(body, callEnv)
}

func callLabel(fn *object.Function) string {
	if fn.Name != "" {
		return fn.Name
	}
	return "<lambda>"
}

// Package evaluator implements mini's tree-walking evaluator: a single
// recursive Eval dispatch over ast.Node, threading an *object.Environment
// as the only mutable substrate. There is no bytecode and no separate
// resolution pass; every name lookup walks the live environment chain.
package evaluator

import (
	"fmt"

	"github.com/akashmaji946/mini/ast"
	"github.com/akashmaji946/mini/object"
)

// NameError reports a lookup of an unbound identifier.
type NameError struct{ Name string }

func (e *NameError) Error() string { return fmt.Sprintf("NameError: undefined name %q", e.Name) }

// TypeError reports an operator or call applied to a value of the wrong kind.
type TypeError struct{ Msg string }

func (e *TypeError) Error() string { return "TypeError: " + e.Msg }

// IndexError reports an out-of-range list/tuple index.
type IndexError struct{ Msg string }

func (e *IndexError) Error() string { return "IndexError: " + e.Msg }

// KeyError reports a missing map key.
type KeyError struct{ Key string }

func (e *KeyError) Error() string { return fmt.Sprintf("KeyError: key %q not found", e.Key) }

// AssignmentError reports an assignment whose left-hand side is not a valid
// target.
type AssignmentError struct{ Msg string }

func (e *AssignmentError) Error() string { return "AssignmentError: " + e.Msg }

// EvalProgram evaluates every top-level expression in order and returns the
// value of the last one, or Unit if the program is empty.
func EvalProgram(prog *ast.Program, env *object.Environment) (*object.Value, error) {
	result := object.Unit()
	for _, expr := range prog.Expressions {
		v, err := Eval(expr, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// Eval evaluates a single AST node in env.
func Eval(node ast.Node, env *object.Environment) (*object.Value, error) {
	switch n := node.(type) {
	case *ast.Atomic:
		return evalAtomic(n, env)
	case *ast.Tuple:
		return evalTuple(n, env)
	case *ast.List:
		return evalList(n, env)
	case *ast.Map:
		return evalMap(n, env)
	case *ast.Block:
		return evalBlock(n, env)
	case *ast.Lambda:
		return &object.Value{Kind: object.KindFunction, Func: &object.Function{
			Params: n.Params,
			Body:   n.Body,
			Env:    env,
		}}, nil
	case *ast.If:
		return evalIf(n, env)
	case *ast.Unary:
		return evalUnary(n, env)
	case *ast.Binary:
		return evalBinary(n, env)
	}
	return nil, &TypeError{Msg: fmt.Sprintf("cannot evaluate node of type %T", node)}
}

func evalAtomic(n *ast.Atomic, env *object.Environment) (*object.Value, error) {
	switch n.Kind {
	case ast.KindIdentifier:
		name := n.Value.(string)
		v, ok := env.Lookup(name)
		if !ok {
			return nil, &NameError{Name: name}
		}
		return v, nil
	case ast.KindString:
		return object.String(n.Value.(string)), nil
	case ast.KindNumber:
		return object.Number(n.Value.(float64)), nil
	case ast.KindBool:
		return object.Bool(n.Value.(bool)), nil
	}
	return nil, &TypeError{Msg: fmt.Sprintf("unknown atomic kind %q", n.Kind)}
}

func evalTuple(n *ast.Tuple, env *object.Environment) (*object.Value, error) {
	elems, err := evalNodeList(n.Elements, env)
	if err != nil {
		return nil, err
	}
	return object.TupleOf(elems), nil
}

func evalList(n *ast.List, env *object.Environment) (*object.Value, error) {
	elems, err := evalNodeList(n.Elements, env)
	if err != nil {
		return nil, err
	}
	return object.List(elems), nil
}

func evalNodeList(nodes []ast.Node, env *object.Environment) ([]*object.Value, error) {
	out := make([]*object.Value, len(nodes))
	for i, e := range nodes {
		v, err := Eval(e, env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func evalMap(n *ast.Map, env *object.Environment) (*object.Value, error) {
	m := object.NewMapValue()
	for _, entry := range n.Entries {
		kv, err := Eval(entry.Key, env)
		if err != nil {
			return nil, err
		}
		key, err := object.MapKey(kv)
		if err != nil {
			return nil, &TypeError{Msg: err.Error()}
		}
		vv, err := Eval(entry.Value, env)
		if err != nil {
			return nil, err
		}
		m.Set(key, vv)
	}
	return object.Map(m), nil
}

func evalBlock(n *ast.Block, env *object.Environment) (*object.Value, error) {
	child := object.NewEnvironment("<block>", env)
	result := object.Unit()
	for _, expr := range n.Expressions {
		v, err := Eval(expr, child)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func evalIf(n *ast.If, env *object.Environment) (*object.Value, error) {
	cond, err := Eval(n.Condition, env)
	if err != nil {
		return nil, err
	}
	if cond.Kind != object.KindBool {
		return nil, &TypeError{Msg: "if condition must be bool"}
	}
	if cond.Bool {
		return Eval(n.Body, env)
	}
	for _, ei := range n.ElseIfs {
		c, err := Eval(ei.Condition, env)
		if err != nil {
			return nil, err
		}
		if c.Kind != object.KindBool {
			return nil, &TypeError{Msg: "else-if condition must be bool"}
		}
		if c.Bool {
			return Eval(ei.Body, env)
		}
	}
	if n.ElseBody != nil {
		return Eval(n.ElseBody, env)
	}
	return object.Unit(), nil
}

func evalUnary(n *ast.Unary, env *object.Environment) (*object.Value, error) {
	v, err := Eval(n.Operand, env)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.UnaryNeg:
		if v.Kind != object.KindNumber {
			return nil, &TypeError{Msg: "unary '-' requires a number"}
		}
		return object.Number(-v.Number), nil
	case ast.UnaryNot:
		if v.Kind != object.KindBool {
			return nil, &TypeError{Msg: "unary '!'/'not' requires a bool"}
		}
		return object.Bool(!v.Bool), nil
	}
	return nil, &TypeError{Msg: fmt.Sprintf("unknown unary operator %q", n.Op)}
}

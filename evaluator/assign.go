package evaluator

import (
	"fmt"

	"github.com/akashmaji946/mini/ast"
	"github.com/akashmaji946/mini/object"
)

// evalAssign implements ASSIGNMENT's three recognized left-hand shapes, per
// the shape of n.Left: bare identifier, a DOT/INDEX chain rooted at an
// identifier, or a CALL-shaped named-function definition. Anything else is
// an AssignmentError.
func evalAssign(n *ast.Binary, env *object.Environment) (*object.Value, error) {
	switch left := n.Left.(type) {
	case *ast.Atomic:
		if left.Kind != ast.KindIdentifier {
			return nil, &AssignmentError{Msg: "left-hand side of '=' must be an identifier, dot/index path, or function signature"}
		}
		rhs, err := Eval(n.Right, env)
		if err != nil {
			return nil, err
		}
		env.Set(left.Value.(string), rhs)
		return rhs, nil

	case *ast.Binary:
		switch left.Op {
		case ast.OpDot, ast.OpIndex:
			rhs, err := Eval(n.Right, env)
			if err != nil {
				return nil, err
			}
			if err := assignPath(left, env, rhs); err != nil {
				return nil, err
			}
			return rhs, nil

		case ast.OpCall:
			return evalFunctionDefinition(left, n.Right, env)
		}
	}
	return nil, &AssignmentError{Msg: "left-hand side of '=' is not a valid assignment target"}
}

// assignPath writes v into the container addressed by target, a DOT or
// INDEX Binary node. The container itself is resolved by evaluating
// target.Left (ordinary read semantics); only the final segment is a write.
func assignPath(target *ast.Binary, env *object.Environment, v *object.Value) error {
	container, err := Eval(target.Left, env)
	if err != nil {
		return err
	}

	switch target.Op {
	case ast.OpDot:
		name, err := dotFieldName(target.Right)
		if err != nil {
			return err
		}
		if container.Kind != object.KindMap {
			return &TypeError{Msg: fmt.Sprintf("'.' assignment requires a map, got %s", container.Kind)}
		}
		container.Map.Set(name, v)
		return nil

	case ast.OpIndex:
		if _, isSlice := target.Right.(*ast.Slice); isSlice {
			return &AssignmentError{Msg: "slice assignment is not supported"}
		}
		idx, err := Eval(target.Right, env)
		if err != nil {
			return err
		}
		switch container.Kind {
		case object.KindList:
			i, err := intIndex(idx, len(container.List.Elements))
			if err != nil {
				return err
			}
			container.List.Elements[i] = v
			return nil
		case object.KindMap:
			key, err := object.MapKey(idx)
			if err != nil {
				return &TypeError{Msg: err.Error()}
			}
			container.Map.Set(key, v)
			return nil
		case object.KindTuple, object.KindString, object.KindNumber:
			return &AssignmentError{Msg: fmt.Sprintf("%s is immutable; only list and map support indexed assignment", container.Kind)}
		}
		return &TypeError{Msg: fmt.Sprintf("cannot index-assign into %s", container.Kind)}
	}
	return &AssignmentError{Msg: "unsupported assignment path shape"}
}

// evalFunctionDefinition recognizes Binary(ASSIGNMENT, Binary(CALL,
// Atomic(fname), Tuple(params)), body) as a named-function definition: the
// params tuple must contain only identifier atoms.
func evalFunctionDefinition(callNode *ast.Binary, body ast.Node, env *object.Environment) (*object.Value, error) {
	fnameAtom, ok := callNode.Left.(*ast.Atomic)
	if !ok || fnameAtom.Kind != ast.KindIdentifier {
		return nil, &AssignmentError{Msg: "function definition requires an identifier name"}
	}
	paramsTuple, ok := callNode.Right.(*ast.Tuple)
	if !ok {
		return nil, &AssignmentError{Msg: "function definition requires a parameter list"}
	}
	params := make([]string, len(paramsTuple.Elements))
	for i, p := range paramsTuple.Elements {
		atom, ok := p.(*ast.Atomic)
		if !ok || atom.Kind != ast.KindIdentifier {
			return nil, &AssignmentError{Msg: "function parameters must all be identifiers"}
		}
		params[i] = atom.Value.(string)
	}

	fname := fnameAtom.Value.(string)
	fn := &object.Value{Kind: object.KindFunction, Func: &object.Function{
		Name:   fname,
		Params: params,
		Body:   body,
		Env:    env,
	}}
	env.Set(fname, fn)
	return fn, nil
}

var compoundOps = map[ast.BinaryOp]ast.BinaryOp{
	ast.OpPlusEq:  ast.OpAdd,
	ast.OpMinusEq: ast.OpSub,
	ast.OpTimesEq: ast.OpMul,
	ast.OpDivEq:   ast.OpDiv,
	ast.OpModEq:   ast.OpMod,
	ast.OpPowEq:   ast.OpPow,
}

// evalCompoundAssign implements "+=" and, by analogy (spec.md §9 open
// question, resolved in favor of extending the same pattern), "-=" "*="
// "/=" "%=" "^=": the left must be an identifier; both sides are evaluated,
// the corresponding binary op applied, and the identifier rebound in the
// current frame.
func evalCompoundAssign(n *ast.Binary, env *object.Environment) (*object.Value, error) {
	atom, ok := n.Left.(*ast.Atomic)
	if !ok || atom.Kind != ast.KindIdentifier {
		return nil, &AssignmentError{Msg: "compound assignment requires an identifier on the left"}
	}
	name := atom.Value.(string)
	current, ok := env.Lookup(name)
	if !ok {
		return nil, &NameError{Name: name}
	}
	rhs, err := Eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	binOp, ok := compoundOps[n.Op]
	if !ok {
		return nil, &TypeError{Msg: fmt.Sprintf("unknown compound assignment operator %q", n.Op)}
	}
	result, err := applyEagerBinary(binOp, current, rhs)
	if err != nil {
		return nil, err
	}
	env.Set(name, result)
	return result, nil
}

package evaluator

import (
	"fmt"
	"math"

	"github.com/akashmaji946/mini/ast"
	"github.com/akashmaji946/mini/object"
)

// evalBinary dispatches a Binary node. Structural operators (ASSIGNMENT and
// its compound variants, DOT, INDEX-with-slice) bypass eager evaluation of
// both operands because their semantics depend on operand *shape*, not just
// value. Everything else evaluates both sides first.
func evalBinary(n *ast.Binary, env *object.Environment) (*object.Value, error) {
	switch n.Op {
	case ast.OpAssign:
		return evalAssign(n, env)
	case ast.OpPlusEq, ast.OpMinusEq, ast.OpTimesEq, ast.OpDivEq, ast.OpModEq, ast.OpPowEq:
		return evalCompoundAssign(n, env)
	case ast.OpDot:
		return evalDot(n, env)
	case ast.OpIndex:
		if _, isSlice := n.Right.(*ast.Slice); isSlice {
			return evalSliceIndex(n, env)
		}
		return evalPlainIndex(n, env)
	case ast.OpCall:
		return evalCall(n, env)
	}

	left, err := Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := Eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	return applyEagerBinary(n.Op, left, right)
}

func applyEagerBinary(op ast.BinaryOp, left, right *object.Value) (*object.Value, error) {
	switch op {
	case ast.OpAdd:
		return evalAdd(left, right)
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow:
		return evalNumericOp(op, left, right)
	case ast.OpEq:
		return object.Bool(object.Equal(left, right)), nil
	case ast.OpNe:
		if !numberStringBool(left) || !numberStringBool(right) {
			return nil, &TypeError{Msg: "'!=' is only defined on number, string, and bool"}
		}
		return object.Bool(!object.Equal(left, right)), nil
	case ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		return evalComparison(op, left, right)
	case ast.OpAnd:
		if left.Kind != object.KindBool || right.Kind != object.KindBool {
			return nil, &TypeError{Msg: "'&&' requires bool operands"}
		}
		return object.Bool(left.Bool && right.Bool), nil
	case ast.OpOr:
		if left.Kind != object.KindBool || right.Kind != object.KindBool {
			return nil, &TypeError{Msg: "'||' requires bool operands"}
		}
		return object.Bool(left.Bool || right.Bool), nil
	case ast.OpRange:
		return evalRange(left, right)
	}
	return nil, &TypeError{Msg: fmt.Sprintf("operator %q has no binary semantics in this core", op)}
}

func numberStringBool(v *object.Value) bool {
	return v.Kind == object.KindNumber || v.Kind == object.KindString || v.Kind == object.KindBool
}

// evalAdd implements "+"'s polymorphic dispatch: strings concatenate
// (coercing the other side to its display form), lists concatenate, numbers
// add, tuples add element-wise, maps merge with the right side winning.
func evalAdd(left, right *object.Value) (*object.Value, error) {
	switch {
	case left.Kind == object.KindString || right.Kind == object.KindString:
		return object.String(left.String() + right.String()), nil
	case left.Kind == object.KindList && right.Kind == object.KindList:
		elems := append(append([]*object.Value{}, left.List.Elements...), right.List.Elements...)
		return object.List(elems), nil
	case left.Kind == object.KindNumber && right.Kind == object.KindNumber:
		return object.Number(left.Number + right.Number), nil
	case left.Kind == object.KindTuple && right.Kind == object.KindTuple:
		if len(left.Tuple) != len(right.Tuple) {
			return nil, &TypeError{Msg: "'+' on tuples requires equal length"}
		}
		out := make([]*object.Value, len(left.Tuple))
		for i := range left.Tuple {
			v, err := evalAdd(left.Tuple[i], right.Tuple[i])
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return object.TupleOf(out), nil
	case left.Kind == object.KindMap && right.Kind == object.KindMap:
		merged := object.NewMapValue()
		for _, k := range left.Map.Keys() {
			v, _ := left.Map.Get(k)
			merged.Set(k, v)
		}
		for _, k := range right.Map.Keys() {
			v, _ := right.Map.Get(k)
			merged.Set(k, v)
		}
		return object.Map(merged), nil
	}
	return nil, &TypeError{Msg: fmt.Sprintf("'+' not defined for %s and %s", left.Kind, right.Kind)}
}

func evalNumericOp(op ast.BinaryOp, left, right *object.Value) (*object.Value, error) {
	if left.Kind != object.KindNumber || right.Kind != object.KindNumber {
		return nil, &TypeError{Msg: fmt.Sprintf("%q requires number operands", op)}
	}
	switch op {
	case ast.OpSub:
		return object.Number(left.Number - right.Number), nil
	case ast.OpMul:
		return object.Number(left.Number * right.Number), nil
	case ast.OpDiv:
		return object.Number(left.Number / right.Number), nil
	case ast.OpMod:
		return object.Number(math.Mod(left.Number, right.Number)), nil
	case ast.OpPow:
		return object.Number(math.Pow(left.Number, right.Number)), nil
	}
	return nil, &TypeError{Msg: fmt.Sprintf("unknown numeric operator %q", op)}
}

func evalComparison(op ast.BinaryOp, left, right *object.Value) (*object.Value, error) {
	if left.Kind != object.KindNumber || right.Kind != object.KindNumber {
		return nil, &TypeError{Msg: fmt.Sprintf("%q is numeric-only", op)}
	}
	switch op {
	case ast.OpLt:
		return object.Bool(left.Number < right.Number), nil
	case ast.OpGt:
		return object.Bool(left.Number > right.Number), nil
	case ast.OpLe:
		return object.Bool(left.Number <= right.Number), nil
	case ast.OpGe:
		return object.Bool(left.Number >= right.Number), nil
	}
	return nil, &TypeError{Msg: fmt.Sprintf("unknown comparison operator %q", op)}
}

// evalRange implements ".." (RANGE): integer start/end producing
// [start, start+1, ..., end-1], empty if start >= end.
func evalRange(left, right *object.Value) (*object.Value, error) {
	if left.Kind != object.KindNumber || right.Kind != object.KindNumber {
		return nil, &TypeError{Msg: "'..' requires number operands"}
	}
	if !object.IsInteger(left.Number) || !object.IsInteger(right.Number) {
		return nil, &TypeError{Msg: "'..' requires integer-valued operands"}
	}
	start, end := int64(left.Number), int64(right.Number)
	var elems []*object.Value
	for i := start; i < end; i++ {
		elems = append(elems, object.Number(float64(i)))
	}
	return object.List(elems), nil
}

// evalDot implements member access: left must be a map, right an identifier
// atom used as the key.
func evalDot(n *ast.Binary, env *object.Environment) (*object.Value, error) {
	left, err := Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	name, err := dotFieldName(n.Right)
	if err != nil {
		return nil, err
	}
	if left.Kind != object.KindMap {
		return nil, &TypeError{Msg: fmt.Sprintf("'.' requires a map, got %s", left.Kind)}
	}
	v, ok := left.Map.Get(name)
	if !ok {
		return nil, &KeyError{Key: name}
	}
	return v, nil
}

func dotFieldName(n ast.Node) (string, error) {
	atom, ok := n.(*ast.Atomic)
	if !ok || atom.Kind != ast.KindIdentifier {
		return "", &TypeError{Msg: "right side of '.' must be an identifier"}
	}
	return atom.Value.(string), nil
}

// evalPlainIndex implements non-slice INDEX: list/tuple element access by
// integer, map element access by stringified key.
func evalPlainIndex(n *ast.Binary, env *object.Environment) (*object.Value, error) {
	left, err := Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	idx, err := Eval(n.Right, env)
	if err != nil {
		return nil, err
	}
	return indexInto(left, idx)
}

func indexInto(container, idx *object.Value) (*object.Value, error) {
	switch container.Kind {
	case object.KindList:
		i, err := intIndex(idx, len(container.List.Elements))
		if err != nil {
			return nil, err
		}
		return container.List.Elements[i], nil
	case object.KindTuple:
		i, err := intIndex(idx, len(container.Tuple))
		if err != nil {
			return nil, err
		}
		return container.Tuple[i], nil
	case object.KindMap:
		key, err := object.MapKey(idx)
		if err != nil {
			return nil, &TypeError{Msg: err.Error()}
		}
		v, ok := container.Map.Get(key)
		if !ok {
			return nil, &KeyError{Key: key}
		}
		return v, nil
	}
	return nil, &TypeError{Msg: fmt.Sprintf("cannot index into %s", container.Kind)}
}

func intIndex(idx *object.Value, length int) (int, error) {
	if idx.Kind != object.KindNumber || !object.IsInteger(idx.Number) {
		return 0, &TypeError{Msg: "index must be an integer-valued number"}
	}
	i := int(idx.Number)
	if i < 0 || i >= length {
		return 0, &IndexError{Msg: fmt.Sprintf("index %d out of range [0, %d)", i, length)}
	}
	return i, nil
}

// evalSliceIndex implements INDEX when the right operand is a Slice: start,
// end and an optional step (default 1), all integer-valued, on a list or
// tuple. Returns a value of the same kind as the container.
func evalSliceIndex(n *ast.Binary, env *object.Environment) (*object.Value, error) {
	left, err := Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	sl := n.Right.(*ast.Slice)

	start, err := evalSliceBound(sl.Start, env)
	if err != nil {
		return nil, err
	}
	end, err := evalSliceBound(sl.End, env)
	if err != nil {
		return nil, err
	}
	step := 1
	if sl.Step != nil {
		s, err := evalSliceBound(sl.Step, env)
		if err != nil {
			return nil, err
		}
		step = s
	}
	if step == 0 {
		return nil, &TypeError{Msg: "slice step cannot be zero"}
	}

	var elements []*object.Value
	switch left.Kind {
	case object.KindList:
		elements = left.List.Elements
	case object.KindTuple:
		elements = left.Tuple
	default:
		return nil, &TypeError{Msg: fmt.Sprintf("slicing requires list or tuple, got %s", left.Kind)}
	}

	var out []*object.Value
	if step > 0 {
		for i := start; i < end && i < len(elements); i += step {
			if i >= 0 {
				out = append(out, elements[i])
			}
		}
	} else {
		for i := start; i > end && i >= 0; i += step {
			if i < len(elements) {
				out = append(out, elements[i])
			}
		}
	}

	if left.Kind == object.KindTuple {
		return object.TupleOf(out), nil
	}
	return object.List(out), nil
}

func evalSliceBound(n ast.Node, env *object.Environment) (int, error) {
	v, err := Eval(n, env)
	if err != nil {
		return 0, err
	}
	if v.Kind != object.KindNumber || !object.IsInteger(v.Number) {
		return 0, &TypeError{Msg: "slice bound must be an integer-valued number"}
	}
	return int(v.Number), nil
}

// Package object defines mini's runtime value representation: a tagged
// ValueAtom, the Environment it is looked up and mutated through, and the
// Function payload shared by closures and host built-ins.
package object

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the runtime type of a ValueAtom.
type Kind string

const (
	KindUnit     Kind = "unit"
	KindBool     Kind = "bool"
	KindNumber   Kind = "number"
	KindString   Kind = "string"
	KindTuple    Kind = "tuple"
	KindList     Kind = "list"
	KindMap      Kind = "map"
	KindFunction Kind = "function"
)

// Value is a tagged runtime atom. Exactly one payload field is meaningful
// for a given Kind; which one is documented per field.
type Value struct {
	Kind Kind

	Bool   bool    // KindBool
	Number float64 // KindNumber

	Str string // KindString

	Tuple []*Value // KindTuple

	// List is shared by reference: assigning a list into a container does
	// not copy its backing slice header across mutation operations (append
	// replaces List.Elements but anyone holding *Value sees the same one).
	List *ListValue // KindList

	Map *MapValue // KindMap

	Func *Function // KindFunction
}

// ListValue is the mutable, ordered backing store of a list value.
type ListValue struct {
	Elements []*Value
}

// MapValue is the insertion-ordered backing store of a map value.
type MapValue struct {
	keys   []string
	values map[string]*Value
}

// NewMapValue returns an empty, insertion-ordered map.
func NewMapValue() *MapValue {
	return &MapValue{values: make(map[string]*Value)}
}

// Set inserts or overwrites key, appending it to the key order only the
// first time it is seen.
func (m *MapValue) Set(key string, v *Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value bound to key and whether it was present.
func (m *MapValue) Get(key string) (*Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *MapValue) Keys() []string {
	return m.keys
}

// Len returns the number of entries.
func (m *MapValue) Len() int {
	return len(m.keys)
}

// Function is either a user closure (Body/Params/Env set) or a host builtin
// (Builtin set). Exactly one of the two is non-nil.
type Function struct {
	Name    string
	Params  []string
	Body    any // holds an ast.Node; typed any, so this package does not import ast
	Env     *Environment
	Builtin *Builtin
}

// Builtin is a host-registered callable. See the builtin package for the
// registration protocol.
type Builtin struct {
	Name string
	Fn   func(args []*Value) (*Value, error)
}

// Unit is the single nullary value. Tuple construction of arity 0 collapses
// to this value (spec.md "empty tuples collapse").
func Unit() *Value { return &Value{Kind: KindUnit} }

// Bool constructs a bool value.
func Bool(b bool) *Value { return &Value{Kind: KindBool, Bool: b} }

// Number constructs a number value.
func Number(n float64) *Value { return &Value{Kind: KindNumber, Number: n} }

// String constructs a string value.
func String(s string) *Value { return &Value{Kind: KindString, Str: s} }

// List constructs a list value wrapping elems by reference.
func List(elems []*Value) *Value {
	return &Value{Kind: KindList, List: &ListValue{Elements: elems}}
}

// TupleOf constructs a tuple from elems, collapsing to Unit (0 elements) or
// the sole element (1 element) per the language's tuple-arity invariant.
func TupleOf(elems []*Value) *Value {
	switch len(elems) {
	case 0:
		return Unit()
	case 1:
		return elems[0]
	default:
		return &Value{Kind: KindTuple, Tuple: elems}
	}
}

// Map constructs a map value wrapping m by reference.
func Map(m *MapValue) *Value { return &Value{Kind: KindMap, Map: m} }

// IsInteger reports whether a number value has a zero fractional part.
func IsInteger(n float64) bool {
	return n == math.Trunc(n) && !math.IsInf(n, 0)
}

// MapKey stringifies a primitive value for use as a map key. Number keys
// with integral value are promoted to their integer spelling first, so that
// 1 and 1.0 produce the same key.
func MapKey(v *Value) (string, error) {
	switch v.Kind {
	case KindString:
		return v.Str, nil
	case KindBool:
		return strconv.FormatBool(v.Bool), nil
	case KindNumber:
		if !IsInteger(v.Number) {
			return "", fmt.Errorf("map key number %v is not integer-valued", v.Number)
		}
		return strconv.FormatInt(int64(v.Number), 10), nil
	default:
		return "", fmt.Errorf("value of kind %s cannot be used as a map key", v.Kind)
	}
}

// String-ish rendering used by print builtins and REPL output.
func (v *Value) String() string {
	switch v.Kind {
	case KindUnit:
		return "()"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		if IsInteger(v.Number) {
			return strconv.FormatInt(int64(v.Number), 10)
		}
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case KindString:
		return v.Str
	case KindTuple:
		parts := make([]string, len(v.Tuple))
		for i, e := range v.Tuple {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindList:
		parts := make([]string, len(v.List.Elements))
		for i, e := range v.List.Elements {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, 0, v.Map.Len())
		for _, k := range v.Map.Keys() {
			val, _ := v.Map.Get(k)
			parts = append(parts, fmt.Sprintf("%s: %s", k, val.String()))
		}
		return "#{" + strings.Join(parts, ", ") + "}"
	case KindFunction:
		if v.Func.Builtin != nil {
			return fmt.Sprintf("<builtin %s>", v.Func.Builtin.Name)
		}
		return fmt.Sprintf("<function %s(%s)>", v.Func.Name, strings.Join(v.Func.Params, ", "))
	default:
		return "<unknown>"
	}
}

// Equal implements mini's "==": differing kinds are always unequal, no
// coercion is performed across kinds.
func Equal(a, b *Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindUnit:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindNumber:
		return a.Number == b.Number
	case KindString:
		return a.Str == b.Str
	case KindTuple:
		if len(a.Tuple) != len(b.Tuple) {
			return false
		}
		for i := range a.Tuple {
			if !Equal(a.Tuple[i], b.Tuple[i]) {
				return false
			}
		}
		return true
	case KindList:
		if len(a.List.Elements) != len(b.List.Elements) {
			return false
		}
		for i := range a.List.Elements {
			if !Equal(a.List.Elements[i], b.List.Elements[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if a.Map.Len() != b.Map.Len() {
			return false
		}
		for _, k := range a.Map.Keys() {
			av, _ := a.Map.Get(k)
			bv, ok := b.Map.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindFunction:
		return a.Func == b.Func
	default:
		return false
	}
}

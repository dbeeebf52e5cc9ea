package evaluator

import (
	"testing"

	"github.com/akashmaji946/mini/lexer"
	"github.com/akashmaji946/mini/object"
	"github.com/akashmaji946/mini/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) *object.Value {
	t.Helper()
	p := parser.New(lexer.NewFromString(src))
	prog, err := p.Parse()
	require.NoError(t, err)
	env := object.NewEnvironment("<root>", nil)
	v, err := EvalProgram(prog, env)
	require.NoError(t, err)
	return v
}

func runErr(t *testing.T, src string) error {
	t.Helper()
	p := parser.New(lexer.NewFromString(src))
	prog, err := p.Parse()
	require.NoError(t, err)
	env := object.NewEnvironment("<root>", nil)
	_, err = EvalProgram(prog, env)
	return err
}

func TestArithmeticPrecedence(t *testing.T) {
	assert.Equal(t, float64(7), run(t, "1 + 2 * 3").Number)
	assert.Equal(t, float64(64), run(t, "2^3^2").Number)
}

func TestFunctionDefinitionAndCall(t *testing.T) {
	v := run(t, "f(x) = x * x; f(5)")
	assert.Equal(t, float64(25), v.Number)
}

func TestClosureOverMkPattern(t *testing.T) {
	v := run(t, "mk(a) = (b) => a + b; add3 = mk(3); add3(4)")
	assert.Equal(t, float64(7), v.Number)
}

func TestClosureObservesLaterMutation(t *testing.T) {
	v := run(t, "x = 1; f = () => x; x = 2; f()")
	assert.Equal(t, float64(2), v.Number, "closure must observe reassignment of its captured free variable")
}

func TestListAndMapIndexing(t *testing.T) {
	assert.Equal(t, float64(2), run(t, "xs = [1, 2, 3]; xs[1]").Number)
	v := run(t, `m = #{"a": 1, "b": 2}; m.a + m["b"]`)
	assert.Equal(t, float64(3), v.Number)
}

func TestIfElse(t *testing.T) {
	assert.Equal(t, "yes", run(t, `if (1 < 2) { "yes" } else { "no" }`).Str)
	assert.Equal(t, "no", run(t, `if (1 > 2) { "yes" } else { "no" }`).Str)
}

func TestRange(t *testing.T) {
	v := run(t, "1..4")
	require.Equal(t, object.KindList, v.Kind)
	require.Len(t, v.List.Elements, 3)
	assert.Equal(t, float64(1), v.List.Elements[0].Number)
	assert.Equal(t, float64(3), v.List.Elements[2].Number)
}

func TestCompoundAssignByAnalogy(t *testing.T) {
	assert.Equal(t, float64(3), run(t, "x = 1; x += 2; x").Number)
	assert.Equal(t, float64(-1), run(t, "x = 1; x -= 2; x").Number)
	assert.Equal(t, float64(6), run(t, "x = 2; x *= 3; x").Number)
	assert.Equal(t, float64(2), run(t, "x = 6; x /= 3; x").Number)
	assert.Equal(t, float64(1), run(t, "x = 7; x %= 2; x").Number)
	assert.Equal(t, float64(8), run(t, "x = 2; x ^= 3; x").Number)
}

func TestBlockScopeHygiene(t *testing.T) {
	err := runErr(t, "{ y = 1 }; y")
	require.Error(t, err)
	var nameErr *NameError
	assert.ErrorAs(t, err, &nameErr)
}

func TestUndefinedNameError(t *testing.T) {
	err := runErr(t, "undefined_name")
	var nameErr *NameError
	assert.ErrorAs(t, err, &nameErr)
}

func TestArityMismatchIsTypeError(t *testing.T) {
	err := runErr(t, "f(x) = x; f(1, 2)")
	var typeErr *TypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestNonBoolConditionIsTypeError(t *testing.T) {
	err := runErr(t, `if (1) { "yes" } else { "no" }`)
	var typeErr *TypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestListIndexOutOfRange(t *testing.T) {
	err := runErr(t, "[1, 2, 3][5]")
	var idxErr *IndexError
	assert.ErrorAs(t, err, &idxErr)
}

func TestMapMissingKey(t *testing.T) {
	err := runErr(t, `#{"a": 1}["z"]`)
	var keyErr *KeyError
	assert.ErrorAs(t, err, &keyErr)
}

func TestAssignmentToImmutableTupleElementRejected(t *testing.T) {
	err := runErr(t, "t = (1, 2); t[0] = 9")
	var assignErr *AssignmentError
	assert.ErrorAs(t, err, &assignErr)
}

func TestListAssignmentMutatesSharedContainer(t *testing.T) {
	v := run(t, "xs = [1, 2, 3]; xs[0] = 9; xs[0]")
	assert.Equal(t, float64(9), v.Number)
}

func TestTupleAdditionElementwise(t *testing.T) {
	v := run(t, "(1, 2) + (3, 4)")
	require.Equal(t, object.KindTuple, v.Kind)
	assert.Equal(t, float64(4), v.Tuple[0].Number)
	assert.Equal(t, float64(6), v.Tuple[1].Number)
}

func TestStringConcatenationCoercion(t *testing.T) {
	v := run(t, `"n=" + 5`)
	assert.Equal(t, "n=5", v.Str)
}

func TestMapMerge(t *testing.T) {
	v := run(t, `#{"a": 1} + #{"a": 2, "b": 3}`)
	require.Equal(t, object.KindMap, v.Kind)
	a, _ := v.Map.Get("a")
	b, _ := v.Map.Get("b")
	assert.Equal(t, float64(2), a.Number, "right side wins on key conflict")
	assert.Equal(t, float64(3), b.Number)
}

func TestSliceOfList(t *testing.T) {
	v := run(t, "xs = [0, 1, 2, 3, 4]; xs[1:3]")
	require.Equal(t, object.KindList, v.Kind)
	require.Len(t, v.List.Elements, 2)
	assert.Equal(t, float64(1), v.List.Elements[0].Number)
	assert.Equal(t, float64(2), v.List.Elements[1].Number)
}

func TestCallArgNormalization(t *testing.T) {
	// A unit argument (empty parens) normalizes to zero args.
	v := run(t, "zero() = 42; zero()")
	assert.Equal(t, float64(42), v.Number)
}

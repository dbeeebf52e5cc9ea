package parser

import (
	"testing"

	"github.com/akashmaji946/mini/ast"
	"github.com/akashmaji946/mini/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.NewFromString(src))
	prog, err := p.Parse()
	require.NoError(t, err)
	return prog
}

func TestParseTopLevelSemicolonSeparatedProgram(t *testing.T) {
	prog := parseSrc(t, "f(x) = x * x; f(5)")
	require.Len(t, prog.Expressions, 2)
	_, isAssign := prog.Expressions[0].(*ast.Binary)
	require.True(t, isAssign)
	call, ok := prog.Expressions[1].(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpCall, call.Op)
}

func TestParseTopLevelTrailingSemicolonTolerated(t *testing.T) {
	prog := parseSrc(t, "1; 2;")
	require.Len(t, prog.Expressions, 2)
}

func TestParsePrecedence(t *testing.T) {
	prog := parseSrc(t, "1 + 2 * 3")
	require.Len(t, prog.Expressions, 1)
	bin, ok := prog.Expressions[0].(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)
	rhs, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, rhs.Op)
}

func TestParsePowerLeftAssociative(t *testing.T) {
	// 2^3^2 parses as (2^3)^2, not 2^(3^2), per this core's explicit
	// left-associative POWER.
	prog := parseSrc(t, "2^3^2")
	bin := prog.Expressions[0].(*ast.Binary)
	assert.Equal(t, ast.OpPow, bin.Op)
	left, ok := bin.Left.(*ast.Binary)
	require.True(t, ok, "left operand of outer ^ should itself be a ^ expression")
	assert.Equal(t, ast.OpPow, left.Op)
}

func TestParseAndOrRightAssociative(t *testing.T) {
	prog := parseSrc(t, "true || false || true")
	bin := prog.Expressions[0].(*ast.Binary)
	assert.Equal(t, ast.OpOr, bin.Op)
	_, rightIsBinary := bin.Right.(*ast.Binary)
	assert.True(t, rightIsBinary, "|| should chain to the right")
}

func TestParseCallAndIndex(t *testing.T) {
	prog := parseSrc(t, "f(1, 2)")
	call := prog.Expressions[0].(*ast.Binary)
	assert.Equal(t, ast.OpCall, call.Op)
	fname := call.Left.(*ast.Atomic)
	assert.Equal(t, ast.KindIdentifier, fname.Kind)
	args := call.Right.(*ast.Tuple)
	assert.Len(t, args.Elements, 2)

	prog = parseSrc(t, "xs[1]")
	idx := prog.Expressions[0].(*ast.Binary)
	assert.Equal(t, ast.OpIndex, idx.Op)
}

func TestParseSlice(t *testing.T) {
	prog := parseSrc(t, "xs[1:3]")
	idx := prog.Expressions[0].(*ast.Binary)
	require.Equal(t, ast.OpIndex, idx.Op)
	sl, ok := idx.Right.(*ast.Slice)
	require.True(t, ok)
	assert.Nil(t, sl.Step)
}

func TestParseDotChainAssignment(t *testing.T) {
	prog := parseSrc(t, "m.a = 5")
	assign := prog.Expressions[0].(*ast.Binary)
	assert.Equal(t, ast.OpAssign, assign.Op)
	dot := assign.Left.(*ast.Binary)
	assert.Equal(t, ast.OpDot, dot.Op)
}

func TestParseFunctionDefinitionShape(t *testing.T) {
	prog := parseSrc(t, "f(x) = x * x")
	assign := prog.Expressions[0].(*ast.Binary)
	require.Equal(t, ast.OpAssign, assign.Op)
	call := assign.Left.(*ast.Binary)
	assert.Equal(t, ast.OpCall, call.Op)
}

func TestParseLambda(t *testing.T) {
	prog := parseSrc(t, "(a, b) => a + b")
	lambda, ok := prog.Expressions[0].(*ast.Lambda)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, lambda.Params)
}

func TestParseTupleArityPreserved(t *testing.T) {
	prog := parseSrc(t, "(1, 2, 3)")
	tup, ok := prog.Expressions[0].(*ast.Tuple)
	require.True(t, ok)
	assert.Len(t, tup.Elements, 3)
}

func TestParseIfElseIfElse(t *testing.T) {
	prog := parseSrc(t, `if (1 < 2) { "yes" } else if (1 > 2) { "maybe" } else { "no" }`)
	ifNode, ok := prog.Expressions[0].(*ast.If)
	require.True(t, ok)
	assert.Len(t, ifNode.ElseIfs, 1)
	assert.NotNil(t, ifNode.ElseBody)
}

func TestParseMapLiteral(t *testing.T) {
	prog := parseSrc(t, `#{"a": 1, "b": 2}`)
	m, ok := prog.Expressions[0].(*ast.Map)
	require.True(t, ok)
	assert.Len(t, m.Entries, 2)
}

func TestParseEmptyMapLiteral(t *testing.T) {
	prog := parseSrc(t, `#{}`)
	m, ok := prog.Expressions[0].(*ast.Map)
	require.True(t, ok)
	assert.Len(t, m.Entries, 0)
}

func TestParseBlockOfExpressions(t *testing.T) {
	prog := parseSrc(t, `{ 1; 2; 3 }`)
	block, ok := prog.Expressions[0].(*ast.Block)
	require.True(t, ok)
	assert.Len(t, block.Expressions, 3)
}

func TestParseReservedKeywordRejected(t *testing.T) {
	p := New(lexer.NewFromString("while x"))
	_, err := p.Parse()
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseCompoundAssignOperators(t *testing.T) {
	for op, want := range map[string]ast.BinaryOp{
		"+=": ast.OpPlusEq,
		"-=": ast.OpMinusEq,
		"*=": ast.OpTimesEq,
		"/=": ast.OpDivEq,
		"%=": ast.OpModEq,
		"^=": ast.OpPowEq,
	} {
		prog := parseSrc(t, "x "+op+" 1")
		bin := prog.Expressions[0].(*ast.Binary)
		assert.Equal(t, want, bin.Op, op)
	}
}

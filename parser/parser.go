// Package parser implements a Pratt (precedence-climbing) parser that turns
// a mini token stream into an expression-oriented ast.Program.
//
// Structural operators (call, index, member access, assignment) are
// resolved in the primary/postfix layer, directly after an atom is parsed,
// the same way the teacher's parser.Parser resolves CALL/INDEX/ASSIGNMENT
// immediately after an IDENTIFIER rather than through the general binary
// climb. Only the precedence-table operators (^ ! * / % + - == && ||), the
// comparisons (!= < > <= >=) and the range operator are handled by the
// climbing loop itself.
package parser

import (
	"fmt"

	"github.com/akashmaji946/mini/ast"
	"github.com/akashmaji946/mini/lexer"
	"github.com/akashmaji946/mini/token"
)

// ParseError reports a syntax problem at a token's position.
type ParseError struct {
	Pos token.Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ParseError at %s: %s", e.Pos, e.Msg)
}

// Parser consumes tokens from a Lexer and builds an AST. It does not
// validate assignment-target shape or function-definition shape; those are
// evaluator-level concerns (spec.md's AssignmentError is raised at eval
// time, not parse time).
type Parser struct {
	lex *lexer.Lexer
}

// New creates a Parser reading from lex.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	panic(&ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

func (p *Parser) peek() token.Token {
	return p.lex.PeekToken(false)
}

func (p *Parser) next() token.Token {
	return p.lex.NextToken(false)
}

func (p *Parser) expect(t token.Type) token.Token {
	got := p.next()
	if got.Type != t {
		p.errorf(got.Position, "expected %s but got %s", t, got.Type)
	}
	return got
}

// Parse consumes the whole token stream and returns the resulting Program.
// Parse errors surface as a panicked *ParseError recovered here.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				err = pe
				return
			}
			if se, ok := r.(*lexer.SyntaxError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()

	prog = &ast.Program{}
	for !p.lex.IsDone() {
		prog.Expressions = append(prog.Expressions, p.parseExpression())
		for p.peek().Type == token.SEMICOLON {
			p.next()
		}
	}
	return prog, nil
}

// associativity of a climbable binary operator.
type assoc int

const (
	leftAssoc assoc = iota
	rightAssoc
)

type opInfo struct {
	prec   int
	assoc  assoc
	binOp  ast.BinaryOp
}

// binaryOps is the climbing-loop's operator table: spec.md's named
// operators, the comparisons, and range, which needs *some* binding power to
// parse as a single expression but never interacts with the others in the
// spec's worked examples.
var binaryOps = map[token.Type]opInfo{
	token.POWER:    {30, leftAssoc, ast.OpPow},
	token.NOT:      {30, leftAssoc, ""}, // infix NOT: parses, has no evaluator semantics (spec.md §4.3)
	token.MULTIPLY: {20, leftAssoc, ast.OpMul},
	token.DIVIDE:   {20, leftAssoc, ast.OpDiv},
	token.MODULO:   {20, leftAssoc, ast.OpMod},
	token.PLUS:     {10, leftAssoc, ast.OpAdd},
	token.MINUS:    {10, leftAssoc, ast.OpSub},
	token.EQUAL:    {5, leftAssoc, ast.OpEq},
	// Comparisons share "=="'s precedence; spec.md's table names only "=="
	// explicitly but §4.3 requires these to dispatch as eager binary ops.
	token.NOTEQUAL:     {5, leftAssoc, ast.OpNe},
	token.LESS:         {5, leftAssoc, ast.OpLt},
	token.GREATER:      {5, leftAssoc, ast.OpGt},
	token.LESSEQUAL:    {5, leftAssoc, ast.OpLe},
	token.GREATEREQUAL: {5, leftAssoc, ast.OpGe},
	token.RANGE:    {8, leftAssoc, ast.OpRange},
	token.AND:      {20, rightAssoc, ast.OpAnd},
	token.OR:       {10, rightAssoc, ast.OpOr},
}

func (p *Parser) parseExpression() ast.Node {
	return p.parseBinary(p.parsePrimary(), 0)
}

// parseBinary climbs the precedence table starting from lhs, consuming
// operators whose binding power meets the current threshold: >= for
// left-associative operators, > for right-associative ones. After
// consuming an operator it recursively climbs over any strictly-higher
// left-associative operator, or any equal-precedence right-associative
// operator, to extend right-leaning chains (spec.md §4.2).
func (p *Parser) parseBinary(lhs ast.Node, minPrec int) ast.Node {
	for {
		info, ok := binaryOps[p.peek().Type]
		if !ok {
			return lhs
		}
		if info.assoc == leftAssoc && info.prec < minPrec {
			return lhs
		}
		if info.assoc == rightAssoc && info.prec <= minPrec {
			return lhs
		}
		opTok := p.next()
		rhs := p.parsePrimary()
		for {
			next, ok := binaryOps[p.peek().Type]
			if !ok {
				break
			}
			if next.assoc == leftAssoc && next.prec > info.prec {
				rhs = p.parseBinary(rhs, next.prec)
				continue
			}
			if next.assoc == rightAssoc && next.prec == info.prec {
				// One below next.prec, so the recursive call's "> minPrec"
				// check for right-associative operators accepts next.
				rhs = p.parseBinary(rhs, next.prec-1)
				continue
			}
			break
		}
		op := info.binOp
		if op == "" {
			op = ast.BinaryOp(opTok.Type) // infix NOT and similar: keep a tag so the evaluator can reject it by name
		}
		lhs = &ast.Binary{Op: op, Left: lhs, Right: rhs, Pos: opTok.Position}
	}
}

// parsePrimary parses a primary expression, including any postfix
// call/index/member chain and a trailing assignment suffix.
func (p *Parser) parsePrimary() ast.Node {
	t := p.peek()
	switch t.Type {
	case token.MINUS, token.NOT:
		p.next()
		op := ast.UnaryNeg
		if t.Type == token.NOT {
			op = ast.UnaryNot // covers both "!" and the word "not"
		}
		return &ast.Unary{Op: op, Operand: p.parsePrimary(), Pos: t.Position}
	}

	base := p.parseAtom()
	base = p.parsePostfix(base)
	return p.parseAssignSuffix(base)
}

func (p *Parser) parseAtom() ast.Node {
	t := p.next()
	switch t.Type {
	case token.IDENTIFIER:
		return &ast.Atomic{Kind: ast.KindIdentifier, Value: t.Literal, Pos: t.Position}
	case token.STRING:
		return &ast.Atomic{Kind: ast.KindString, Value: t.Value, Pos: t.Position}
	case token.NUMBER:
		return &ast.Atomic{Kind: ast.KindNumber, Value: t.Value, Pos: t.Position}
	case token.BOOL:
		return &ast.Atomic{Kind: ast.KindBool, Value: t.Value, Pos: t.Position}
	case token.KEYWORD:
		if t.Literal == "if" {
			return p.parseIf(t.Position)
		}
		p.errorf(t.Position, "keyword %q is not implemented in this core", t.Literal)
	case token.LPAREN:
		return p.parseTupleOrLambda(t.Position)
	case token.LBRACKET:
		elems := p.parseExpressionList(token.COMMA, token.RBRACKET)
		return &ast.List{Elements: elems, Pos: t.Position}
	case token.LBRACE:
		return p.parseBlock(t.Position)
	case token.MAPSTART:
		return p.parseMap(t.Position)
	}
	p.errorf(t.Position, "expected primary expression but got %s", t.Type)
	panic("unreachable")
}

// parsePostfix greedily consumes DOT/CALL/INDEX suffixes, building a
// left-leaning chain: a.b(c)[d] is ((a.b)(c))[d].
func (p *Parser) parsePostfix(base ast.Node) ast.Node {
	for {
		t := p.peek()
		switch t.Type {
		case token.DOT:
			p.next()
			member := p.expect(token.IDENTIFIER)
			base = &ast.Binary{
				Op:    ast.OpDot,
				Left:  base,
				Right: &ast.Atomic{Kind: ast.KindIdentifier, Value: member.Literal, Pos: member.Position},
				Pos:   t.Position,
			}
		case token.CALL:
			p.next()
			args := p.parseExpressionList(token.COMMA, token.RPAREN)
			base = &ast.Binary{Op: ast.OpCall, Left: base, Right: &ast.Tuple{Elements: args, Pos: t.Position}, Pos: t.Position}
		case token.INDEX:
			p.next()
			base = &ast.Binary{Op: ast.OpIndex, Left: base, Right: p.parseIndexOrSlice(), Pos: t.Position}
		default:
			return base
		}
	}
}

// parseIndexOrSlice parses the contents of "[ ... ]" after an INDEX token,
// which is already consumed by the caller. Produces either a plain
// expression (element index) or an ast.Slice (start:end[:step]).
func (p *Parser) parseIndexOrSlice() ast.Node {
	pos := p.peek().Position
	start := p.parseExpression()
	if p.peek().Type != token.COLON {
		p.expect(token.RBRACKET)
		return start
	}
	p.next() // consume ':'
	end := p.parseExpression()
	var step ast.Node
	if p.peek().Type == token.COLON {
		p.next()
		step = p.parseExpression()
	}
	p.expect(token.RBRACKET)
	return &ast.Slice{Start: start, End: end, Step: step, Pos: pos}
}

// assignOps maps an assignment token to its BinaryOp tag.
var assignOps = map[token.Type]ast.BinaryOp{
	token.ASSIGNMENT:  ast.OpAssign,
	token.PLUSEQUAL:   ast.OpPlusEq,
	token.MINUSEQUAL:  ast.OpMinusEq,
	token.TIMESEQUAL:  ast.OpTimesEq,
	token.DIVEQUAL:    ast.OpDivEq,
	token.MODEQUAL:    ast.OpModEq,
	token.POWEQUAL:    ast.OpPowEq,
}

func (p *Parser) parseAssignSuffix(base ast.Node) ast.Node {
	t := p.peek()
	op, ok := assignOps[t.Type]
	if !ok {
		return base
	}
	p.next()
	rhs := p.parseExpression()
	return &ast.Binary{Op: op, Left: base, Right: rhs, Pos: t.Position}
}

// parseExpressionList parses expressions separated by delimiter until
// endDelimiter, consuming the end delimiter. A trailing delimiter before the
// end is accepted because the loop simply exits when endDelimiter appears.
func (p *Parser) parseExpressionList(delimiter, endDelimiter token.Type) []ast.Node {
	var elems []ast.Node
	for p.peek().Type != endDelimiter {
		elems = append(elems, p.parseExpression())
		nt := p.peek()
		if nt.Type == delimiter {
			p.next()
		} else if nt.Type != endDelimiter {
			p.errorf(nt.Position, "expected %s or %s but got %s", delimiter, endDelimiter, nt.Type)
		}
	}
	p.next() // consume end delimiter
	return elems
}

// parseTupleOrLambda handles "(" already consumed at openPos: a parenthesized
// expression list, reinterpreted as a Lambda if followed by "=>".
func (p *Parser) parseTupleOrLambda(openPos token.Position) ast.Node {
	elems := p.parseExpressionList(token.COMMA, token.RPAREN)
	if p.peek().Type == token.RIGHTARROW {
		arrow := p.next()
		params := make([]string, len(elems))
		for i, e := range elems {
			atom, ok := e.(*ast.Atomic)
			if !ok || atom.Kind != ast.KindIdentifier {
				p.errorf(arrow.Position, "lambda parameter is not an identifier")
			}
			params[i] = atom.Value.(string)
		}
		body := p.parseExpression()
		return &ast.Lambda{Params: params, Body: body, Pos: openPos}
	}
	return &ast.Tuple{Elements: elems, Pos: openPos}
}

// parseBlock handles "{" already consumed at openPos: an empty "{}" is an
// empty Block, otherwise a sequence of semicolon-separated expressions
// evaluated in a fresh child scope (spec.md §4.3). Map literals use the
// dedicated "#{" opener (parseMap) so a bare "{" is never ambiguous between
// the two shapes.
func (p *Parser) parseBlock(openPos token.Position) ast.Node {
	if p.peek().Type == token.RBRACE {
		p.next()
		return &ast.Block{Pos: openPos}
	}

	exprs := []ast.Node{p.parseExpression()}
	for p.peek().Type == token.SEMICOLON {
		p.next()
		if p.peek().Type == token.RBRACE {
			break
		}
		exprs = append(exprs, p.parseExpression())
	}
	p.expect(token.RBRACE)
	return &ast.Block{Expressions: exprs, Pos: openPos}
}

// parseMap handles "#{" already consumed at openPos: zero or more
// "key: value" entries separated by commas, up to "}". An empty "#{}" is an
// empty Map.
func (p *Parser) parseMap(openPos token.Position) ast.Node {
	if p.peek().Type == token.RBRACE {
		p.next()
		return &ast.Map{Pos: openPos}
	}

	var entries []ast.MapEntry
	for {
		key := p.parseExpression()
		p.expect(token.COLON)
		val := p.parseExpression()
		entries = append(entries, ast.MapEntry{Key: key, Value: val})
		if p.peek().Type != token.COMMA {
			break
		}
		p.next()
		if p.peek().Type == token.RBRACE {
			break
		}
	}
	p.expect(token.RBRACE)
	return &ast.Map{Entries: entries, Pos: openPos}
}

// parseIf handles "if" already consumed at ifPos.
func (p *Parser) parseIf(ifPos token.Position) ast.Node {
	cond := p.parseExpression()
	body := p.parseExpression()

	node := &ast.If{Condition: cond, Body: body, Pos: ifPos}
	for p.peek().Type == token.KEYWORD && p.peek().Literal == "else" {
		p.next()
		if p.peek().Type == token.KEYWORD && p.peek().Literal == "if" {
			p.next()
			elifCond := p.parseExpression()
			elifBody := p.parseExpression()
			node.ElseIfs = append(node.ElseIfs, ast.ElseIf{Condition: elifCond, Body: elifBody})
			continue
		}
		node.ElseBody = p.parseExpression()
		break
	}
	return node
}

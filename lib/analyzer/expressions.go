package analyzer

import (
	"errors"

	"github.com/vyPal/tacc/lib/ast"
	"github.com/vyPal/tacc/lib/diag"
	taclex "github.com/vyPal/tacc/lib/lexer"
	"github.com/vyPal/tacc/lib/types"
)

// Expr → Term (('+'|'-') Term)*
func (ctx *Context) parseExpression() (ast.Node, error) {
	left, err := ctx.parseTerm()
	if err != nil {
		return nil, err
	}
	for k := ctx.current().Kind; k == taclex.PLUS || k == taclex.MINUS; k = ctx.current().Kind {
		op := ctx.advance()
		right, err := ctx.parseTerm()
		if err != nil {
			return nil, err
		}
		left = ctx.reduce(op, left, right)
	}
	return left, nil
}

// Term → Factor (('*'|'/') Factor)*
func (ctx *Context) parseTerm() (ast.Node, error) {
	left, err := ctx.parseFactor()
	if err != nil {
		return nil, err
	}
	for k := ctx.current().Kind; k == taclex.STAR || k == taclex.SLASH; k = ctx.current().Kind {
		op := ctx.advance()
		right, err := ctx.parseFactor()
		if err != nil {
			return nil, err
		}
		left = ctx.reduce(op, left, right)
	}
	return left, nil
}

// Factor → '(' Expr ')' | NUMBER | IDENT
func (ctx *Context) parseFactor() (ast.Node, error) {
	tok := ctx.current()
	switch tok.Kind {
	case taclex.LPAREN:
		ctx.advance()
		inner, err := ctx.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := ctx.expect(taclex.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case taclex.NUMBER:
		ctx.advance()
		lit, err := ast.NewNumberLiteral(tok.Lexeme, tok.Line)
		if err != nil {
			ctx.Diags.Errorf(diag.Overflow, tok.Line, "numeric constant %s out of range for %s", tok.Lexeme, lit.Type)
		}
		return lit, nil
	case taclex.IDENT:
		ctx.advance()
		sym, ok := ctx.Symbols.Resolve(tok.Lexeme, tok.Line)
		if !ok {
			return ast.NewIdentifier(tok.Lexeme, types.Unknown, types.NoValue, tok.Line), nil
		}
		return ast.NewIdentifier(tok.Lexeme, sym.Type, sym.Value, tok.Line), nil
	default:
		return nil, unexpected("expression", tok)
	}
}

// reduce builds the BinaryOp node for one operator and emits its
// instruction into a fresh temporary.
func (ctx *Context) reduce(op taclex.Token, left, right ast.Node) ast.Node {
	node, err := ast.NewBinaryOp(op.Lexeme, left, right, op.Line)
	switch {
	case errors.Is(err, types.ErrDivisionByZero):
		ctx.Diags.Errorf(diag.DivisionByZero, op.Line, "division by zero")
	case errors.Is(err, types.ErrOutOfRange):
		ctx.Diags.Errorf(diag.Overflow, op.Line, "constant %s %s %s overflows %s", ast.Ref(left), op.Lexeme, ast.Ref(right), node.Type)
	}
	temp := ctx.Gen.NewTemporary()
	ctx.Gen.Emitf("%s = %s %s %s", temp, ast.Ref(left), op.Lexeme, ast.Ref(right))
	node.Place = temp
	return node
}

package analyzer

import (
	"github.com/vyPal/tacc/lib/ast"
	taclex "github.com/vyPal/tacc/lib/lexer"
	"github.com/vyPal/tacc/lib/types"
)

// ParseProgram parses Program → (Declaration | StatementOrExpr | Block)*
// and closes the symbol table once the whole input has been consumed.
func (ctx *Context) ParseProgram() (*ast.Program, error) {
	var stmts []ast.Node
	for ctx.current().Kind != taclex.EOF {
		stmt, err := ctx.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	ctx.Symbols.Finalize(!ctx.opts.SkipUnusedGlobals)
	return ast.NewProgram(stmts), nil
}

func (ctx *Context) parseStatement() (ast.Node, error) {
	tok := ctx.current()
	switch tok.Kind {
	case taclex.TYPE:
		return ctx.parseDeclaration()
	case taclex.IDENT, taclex.NUMBER, taclex.LPAREN:
		return ctx.parseAssignmentOrExpression()
	case taclex.LBRACE:
		return ctx.parseBlock()
	default:
		return nil, unexpected("", tok)
	}
}

// Declaration → TYPE IDENT ';'
func (ctx *Context) parseDeclaration() (ast.Node, error) {
	typTok, err := ctx.expect(taclex.TYPE)
	if err != nil {
		return nil, err
	}
	idTok, err := ctx.expect(taclex.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := ctx.expect(taclex.SEMI); err != nil {
		return nil, err
	}

	typ, err := types.FromKeyword(typTok.Lexeme)
	if err != nil {
		return nil, unexpected(taclex.TYPE.String(), typTok)
	}
	ctx.Symbols.Declare(idTok.Lexeme, typ, typTok.Line)
	ctx.Gen.Emitf("declare %s : %s", idTok.Lexeme, typ.Name())

	target := ast.NewIdentifier(idTok.Lexeme, typ, types.NoValue, idTok.Line)
	return ast.NewDeclaration(typ, target, typTok.Line), nil
}

// parseAssignmentOrExpression decides between IDENT '=' Expr ';' and a bare
// Expr [';'] with one token of lookahead. Only the identifier token is
// consumed before the decision, so no semantic action runs on the path that
// is abandoned.
func (ctx *Context) parseAssignmentOrExpression() (ast.Node, error) {
	saved := ctx.Pos
	if tok := ctx.current(); tok.Kind == taclex.IDENT {
		ctx.advance()
		if ctx.current().Kind == taclex.ASSIGN {
			ctx.advance()
			return ctx.parseAssignment(tok)
		}
	}
	ctx.Pos = saved

	expr, err := ctx.parseExpression()
	if err != nil {
		return nil, err
	}
	if ctx.current().Kind == taclex.SEMI {
		ctx.advance()
	}
	return expr, nil
}

func (ctx *Context) parseAssignment(name taclex.Token) (ast.Node, error) {
	target := ast.NewIdentifier(name.Lexeme, types.Unknown, types.NoValue, name.Line)
	if sym, ok := ctx.Symbols.Resolve(name.Lexeme, name.Line); ok {
		target = ast.NewIdentifier(name.Lexeme, sym.Type, types.NoValue, name.Line)
	}

	expr, err := ctx.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := ctx.expect(taclex.SEMI); err != nil {
		return nil, err
	}

	if v := expr.Attr().Value; v.Known() {
		ctx.Symbols.UpdateValue(name.Lexeme, v)
	}
	ctx.Gen.Emitf("%s = %s", name.Lexeme, ast.Ref(expr))
	return ast.NewAssignment(target, expr, name.Line), nil
}

// Block → '{' (Declaration | StatementOrExpr | Block)* '}'
func (ctx *Context) parseBlock() (ast.Node, error) {
	open, err := ctx.expect(taclex.LBRACE)
	if err != nil {
		return nil, err
	}
	ctx.Symbols.EnterScope()

	var stmts []ast.Node
	for ctx.current().Kind != taclex.RBRACE {
		if ctx.current().Kind == taclex.EOF {
			return nil, unexpected(taclex.RBRACE.String(), ctx.current())
		}
		stmt, err := ctx.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	ctx.advance()

	ctx.Symbols.ExitScope()
	return ast.NewBlock(stmts, open.Line), nil
}

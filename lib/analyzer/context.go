package analyzer

import (
	"github.com/vyPal/tacc/lib/codegen"
	"github.com/vyPal/tacc/lib/diag"
	taclex "github.com/vyPal/tacc/lib/lexer"
	"github.com/vyPal/tacc/lib/symtab"
)

// Cursor walks a token slice. Saving and restoring Pos is the only form of
// backtracking the parser does.
type Cursor struct {
	Tokens  []taclex.Token
	Pos     int
	eofLine int
}

func (c *Cursor) current() taclex.Token {
	if c.Pos < len(c.Tokens) {
		return c.Tokens[c.Pos]
	}
	return taclex.Token{Kind: taclex.EOF, Line: c.eofLine}
}

func (c *Cursor) advance() taclex.Token {
	tok := c.current()
	if c.Pos < len(c.Tokens) {
		c.Pos++
	}
	return tok
}

// Context is the state shared by every parsing function during one run.
// Nothing here is global, so runs are independent of each other.
type Context struct {
	*Cursor
	Symbols *symtab.Table
	Gen     *codegen.Generator
	Diags   *diag.List
	opts    Options
}

// NewContext builds a fresh context over tokens with an empty symbol table
// and code generator.
func NewContext(tokens []taclex.Token, opts Options) *Context {
	eofLine := 1
	if len(tokens) > 0 {
		eofLine = tokens[len(tokens)-1].Line
	}
	diags := &diag.List{}
	return &Context{
		Cursor:  &Cursor{Tokens: tokens, eofLine: eofLine},
		Symbols: symtab.New(diags),
		Gen:     codegen.New(),
		Diags:   diags,
		opts:    opts,
	}
}

func (ctx *Context) expect(kind taclex.Kind) (taclex.Token, error) {
	tok := ctx.current()
	if tok.Kind != kind {
		return tok, unexpected(kind.String(), tok)
	}
	return ctx.advance(), nil
}

func unexpected(expected string, found taclex.Token) error {
	what := found.Kind.String()
	if found.Kind == taclex.EOF {
		what = "end of input"
	}
	return &diag.SyntaxError{Expected: expected, Found: what, Line: found.Line}
}

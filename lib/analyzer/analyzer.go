package analyzer

import (
	"github.com/vyPal/tacc/lib/ast"
	"github.com/vyPal/tacc/lib/diag"
	taclex "github.com/vyPal/tacc/lib/lexer"
	"github.com/vyPal/tacc/lib/symtab"
)

type Options struct {
	// SkipUnusedGlobals suppresses unused-variable warnings for the global
	// scope once parsing completes.
	SkipUnusedGlobals bool
}

// Result is everything one successful run produces. A run that parsed but
// collected semantic errors is still a Result; see Failed.
type Result struct {
	Tokens   []taclex.Token
	Program  *ast.Program
	Code     []string
	CodeText string
	Symbols  []*symtab.Symbol
	Errors   []diag.Diagnostic
	Warnings []diag.Diagnostic
}

func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}

// Analyze lexes, parses and translates src in a single pass. The returned
// error is a *diag.LexicalError or *diag.SyntaxError; on error no partial
// result is returned.
func Analyze(filename, src string, opts Options) (*Result, error) {
	tokens, err := taclex.TokenizeString(filename, src)
	if err != nil {
		return nil, err
	}
	ctx := NewContext(tokens, opts)
	prog, err := ctx.ParseProgram()
	if err != nil {
		return nil, err
	}
	return &Result{
		Tokens:   tokens,
		Program:  prog,
		Code:     ctx.Gen.Instructions(),
		CodeText: ctx.Gen.Text(),
		Symbols:  ctx.Symbols.Symbols(),
		Errors:   ctx.Diags.Errors,
		Warnings: ctx.Diags.Warnings,
	}, nil
}

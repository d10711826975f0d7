package compiler

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/vyPal/tacc/lib/ast"
)

func (ctx *Context) compileStatement(s ast.Node) error {
	switch s := s.(type) {
	case *ast.Declaration:
		return ctx.compileDeclaration(s)
	case *ast.Assignment:
		return ctx.compileAssignment(s)
	case *ast.Block:
		inner := ctx.NewContext()
		for _, stmt := range s.Statements {
			if err := inner.compileStatement(stmt); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := ctx.compileExpression(s)
		return err
	}
}

func (ctx *Context) compileDeclaration(d *ast.Declaration) error {
	valType, err := lowerType(d.DeclType)
	if err != nil {
		return lineError(d.Line, "%v", err)
	}
	name := d.Target.Name
	alloc := ctx.NewAlloca(valType)
	alloc.SetName(ctx.slotName(name))
	ctx.NewStore(constant.NewZeroInitializer(valType), alloc)
	if _, exists := ctx.vars[name]; !exists {
		ctx.order = append(ctx.order, name)
	}
	ctx.vars[name] = variable{ptr: alloc, typ: d.DeclType}
	return nil
}

func (ctx *Context) compileAssignment(a *ast.Assignment) error {
	v, ok := ctx.lookupVariable(a.Target.Name)
	if !ok {
		return lineError(a.Line, "unable to find a variable named %s", a.Target.Name)
	}
	val, err := ctx.compileExpression(a.Expr)
	if err != nil {
		return err
	}
	val, err = ctx.convert(val, a.Expr.Attr().Type, v.typ)
	if err != nil {
		return lineError(a.Line, "%v", err)
	}
	ctx.NewStore(val, v.ptr)
	return nil
}

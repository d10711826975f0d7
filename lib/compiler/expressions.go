package compiler

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/vyPal/tacc/lib/ast"
	tactypes "github.com/vyPal/tacc/lib/types"
)

// compileExpression evaluates e at run time. Only literals are lowered as
// constants; identifiers are always loaded from their slot.
func (ctx *Context) compileExpression(e ast.Node) (value.Value, error) {
	switch e := e.(type) {
	case *ast.Identifier:
		return ctx.compileIdentifier(e)
	case *ast.BinaryOp:
		return ctx.compileBinaryOp(e)
	case *ast.NumberLiteral:
		v, err := constantOf(e.Value)
		if err != nil {
			return nil, lineError(e.Line, "%v: %s", err, e.Lexeme)
		}
		return v, nil
	default:
		return nil, lineError(e.Attr().Line, "unknown expression %s", e.Label())
	}
}

func (ctx *Context) compileIdentifier(i *ast.Identifier) (value.Value, error) {
	v, ok := ctx.lookupVariable(i.Name)
	if !ok {
		return nil, lineError(i.Line, "unable to find a variable named %s", i.Name)
	}
	t, err := lowerType(v.typ)
	if err != nil {
		return nil, lineError(i.Line, "%v", err)
	}
	return ctx.NewLoad(t, v.ptr), nil
}

func (ctx *Context) compileBinaryOp(b *ast.BinaryOp) (value.Value, error) {
	if !b.Type.Known() {
		return nil, lineError(b.Line, "operand of unknown type in %s", b.Op)
	}
	left, err := ctx.compileExpression(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := ctx.compileExpression(b.Right)
	if err != nil {
		return nil, err
	}
	if left, err = ctx.convert(left, b.Left.Attr().Type, b.Type); err != nil {
		return nil, lineError(b.Line, "%v", err)
	}
	if right, err = ctx.convert(right, b.Right.Attr().Type, b.Type); err != nil {
		return nil, lineError(b.Line, "%v", err)
	}

	if b.Type == tactypes.Float {
		switch b.Op {
		case "+":
			return ctx.NewFAdd(left, right), nil
		case "-":
			return ctx.NewFSub(left, right), nil
		case "*":
			return ctx.NewFMul(left, right), nil
		case "/":
			return ctx.NewFDiv(left, right), nil
		}
	} else {
		switch b.Op {
		case "+":
			return ctx.NewAdd(left, right), nil
		case "-":
			return ctx.NewSub(left, right), nil
		case "*":
			return ctx.NewMul(left, right), nil
		case "/":
			return ctx.NewSDiv(left, right), nil
		}
	}
	return nil, lineError(b.Line, "unknown operator: %s", b.Op)
}

func constantOf(v tactypes.Value) (value.Value, error) {
	switch v.Kind() {
	case tactypes.Int:
		return constant.NewInt(types.I64, v.Int64()), nil
	case tactypes.Float:
		return constant.NewFloat(types.Double, v.Float64()), nil
	default:
		return nil, errUnknownType
	}
}

package compiler

import (
	"errors"
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	tactypes "github.com/vyPal/tacc/lib/types"
)

var errUnknownType = errors.New("value of unknown type")

func lineError(line int, message string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", line, fmt.Sprintf(message, args...))
}

// lowerType maps int to i64 and float to double.
func lowerType(t tactypes.Type) (types.Type, error) {
	switch t {
	case tactypes.Int:
		return types.I64, nil
	case tactypes.Float:
		return types.Double, nil
	default:
		return nil, fmt.Errorf("cannot lower type %s", t)
	}
}

// convert inserts sitofp or fptosi when a value crosses between int and float.
func (ctx *Context) convert(v value.Value, from, to tactypes.Type) (value.Value, error) {
	if from == to {
		return v, nil
	}
	switch {
	case from == tactypes.Int && to == tactypes.Float:
		return ctx.NewSIToFP(v, types.Double), nil
	case from == tactypes.Float && to == tactypes.Int:
		return ctx.NewFPToSI(v, types.I64), nil
	default:
		return nil, fmt.Errorf("cannot convert %s to %s", from, to)
	}
}

func (ctx *Context) declarePrintf() *ir.Func {
	if ctx.printf == nil {
		ctx.printf = ctx.Module.NewFunc("printf", types.I32, ir.NewParam("", types.NewPointer(types.I8)))
		ctx.printf.Sig.Variadic = true
	}
	return ctx.printf
}

func (ctx *Context) formatString(s string) constant.Constant {
	arr := constant.NewCharArrayFromString(s + "\x00")
	global := ctx.Module.NewGlobalDef("", arr)
	global.Linkage = enum.LinkagePrivate
	global.Immutable = true
	zero := constant.NewInt(types.I64, 0)
	return constant.NewGetElementPtr(arr.Typ, global, zero, zero)
}

// printVariables prints every variable declared in this scope as name = value.
func (ctx *Context) printVariables() error {
	printf := ctx.declarePrintf()
	for _, name := range ctx.order {
		v := ctx.vars[name]
		t, err := lowerType(v.typ)
		if err != nil {
			return err
		}
		verb := "%ld"
		if v.typ == tactypes.Float {
			verb = "%f"
		}
		format := ctx.formatString(fmt.Sprintf("%s = %s\n", name, verb))
		ctx.NewCall(printf, format, ctx.NewLoad(t, v.ptr))
	}
	return nil
}

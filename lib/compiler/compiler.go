package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/vyPal/tacc/lib/ast"
	tactypes "github.com/vyPal/tacc/lib/types"
)

type variable struct {
	ptr *ir.InstAlloca
	typ tactypes.Type
}

// Context maps names to stack slots for one lexical scope. All scopes share
// the single entry block of main since the language has no control flow.
type Context struct {
	*ir.Block
	*Compiler
	parent *Context
	vars   map[string]variable
	order  []string
}

func NewContext(b *ir.Block, comp *Compiler) *Context {
	return &Context{
		Block:    b,
		Compiler: comp,
		parent:   nil,
		vars:     make(map[string]variable),
	}
}

func (c *Context) NewContext() *Context {
	ctx := NewContext(c.Block, c.Compiler)
	ctx.parent = c
	return ctx
}

func (c *Context) lookupVariable(name string) (variable, bool) {
	if v, ok := c.vars[name]; ok {
		return v, true
	} else if c.parent != nil {
		return c.parent.lookupVariable(name)
	}
	return variable{}, false
}

type Compiler struct {
	Module  *ir.Module
	Context *Context
	// PrintGlobals makes main print every global variable before returning.
	PrintGlobals bool

	printf *ir.Func
	names  map[string]int
}

func NewCompiler() *Compiler {
	return &Compiler{
		Module: ir.NewModule(),
		names:  make(map[string]int),
	}
}

// Compile lowers a decorated program into a main function. The program must
// come from a run without semantic errors; unknown types are rejected.
func (c *Compiler) Compile(program *ast.Program) error {
	if program == nil {
		return fmt.Errorf("nothing to compile")
	}
	fn := c.Module.NewFunc("main", types.I32)
	block := fn.NewBlock("entry")
	c.Context = NewContext(block, c)
	for _, s := range program.Statements {
		if err := c.Context.compileStatement(s); err != nil {
			return err
		}
	}
	if c.PrintGlobals {
		if err := c.Context.printVariables(); err != nil {
			return err
		}
	}
	if c.Context.Term == nil {
		c.Context.NewRet(constant.NewInt(types.I32, 0))
	}
	return nil
}

// String returns the textual LLVM IR of the module.
func (c *Compiler) String() string {
	return c.Module.String()
}

// slotName keeps local identifiers unique when inner scopes shadow a name.
func (c *Compiler) slotName(name string) string {
	n := c.names[name]
	c.names[name] = n + 1
	if n == 0 {
		return name
	}
	return fmt.Sprintf("%s.%d", name, n)
}

package codegen

import (
	"fmt"
	"strings"
)

// Generator allocates temporaries and records three-address instructions.
// It does not validate what it is given.
type Generator struct {
	temps int
	code  []string
}

func New() *Generator {
	return &Generator{}
}

// NewTemporary returns t1, t2, ... in allocation order.
func (g *Generator) NewTemporary() string {
	g.temps++
	return fmt.Sprintf("t%d", g.temps)
}

func (g *Generator) Emit(instruction string) {
	g.code = append(g.code, instruction)
}

func (g *Generator) Emitf(format string, args ...interface{}) {
	g.Emit(fmt.Sprintf(format, args...))
}

func (g *Generator) Reset() {
	g.temps = 0
	g.code = nil
}

func (g *Generator) Instructions() []string {
	out := make([]string, len(g.code))
	copy(out, g.code)
	return out
}

func (g *Generator) Temporaries() int {
	return g.temps
}

// Text joins the instructions with newlines.
func (g *Generator) Text() string {
	return strings.Join(g.code, "\n")
}

package ast

import (
	"github.com/vyPal/tacc/lib/types"
)

// NewNumberLiteral types a literal as float when it has a decimal point and
// as int otherwise. Its value is the parsed literal. A literal that cannot be
// represented is still returned, without a value, alongside the error.
func NewNumberLiteral(lexeme string, line int) (*NumberLiteral, error) {
	v, err := types.ParseLiteral(lexeme)
	return &NumberLiteral{
		Attributes: Attributes{Type: types.LiteralType(lexeme), Value: v, Line: line},
		Lexeme:     lexeme,
	}, err
}

// NewIdentifier builds a reference to a resolved symbol. Pass types.Unknown
// and types.NoValue when resolution failed.
func NewIdentifier(name string, typ types.Type, val types.Value, line int) *Identifier {
	return &Identifier{
		Attributes: Attributes{Type: typ, Value: val, Line: line},
		Name:       name,
		Resolved:   typ.Known(),
	}
}

// NewBinaryOp synthesizes type and value from the operands. The value is
// folded only when both operands are known constants, after converting them
// to the node's type. A statically zero divisor or an int overflow yields an
// error alongside the node, whose value is then left unknown.
func NewBinaryOp(op string, left, right Node, line int) (*BinaryOp, error) {
	l, r := left.Attr(), right.Attr()
	n := &BinaryOp{
		Attributes: Attributes{Type: types.Coerce(l.Type, r.Type), Line: line},
		Op:         op,
		Left:       left,
		Right:      right,
	}
	v, err := types.Fold(op, l.Value.Convert(n.Type), r.Value.Convert(n.Type))
	if err != nil {
		return n, err
	}
	n.Value = v
	return n, nil
}

func NewDeclaration(typ types.Type, target *Identifier, line int) *Declaration {
	return &Declaration{
		Attributes: Attributes{Type: types.Void, Line: line},
		DeclType:   typ,
		Target:     target,
	}
}

// NewAssignment takes the target's type and the expression's value converted
// to that type.
func NewAssignment(target *Identifier, expr Node, line int) *Assignment {
	return &Assignment{
		Attributes: Attributes{Type: target.Type, Value: expr.Attr().Value.Convert(target.Type), Line: line},
		Target:     target,
		Expr:       expr,
	}
}

func NewBlock(stmts []Node, line int) *Block {
	return &Block{
		Attributes: Attributes{Type: types.Void, Line: line},
		Statements: stmts,
	}
}

func NewProgram(stmts []Node) *Program {
	return &Program{
		Attributes: Attributes{Type: types.Void},
		Statements: stmts,
	}
}

// Ref is how an operand is written in a three-address instruction: its
// temporary if it has one, else its constant value, else its label.
func Ref(n Node) string {
	a := n.Attr()
	if a.Place != "" {
		return a.Place
	}
	if a.Value.Known() {
		return a.Value.String()
	}
	return n.Label()
}

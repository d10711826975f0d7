package ast

import "github.com/vyPal/tacc/lib/types"

// Attributes are the semantic attributes synthesized for every node.
type Attributes struct {
	Type  types.Type  `json:"type"`
	Value types.Value `json:"-"`
	Place string      `json:"place,omitempty"`
	Line  int         `json:"line"`
}

// Node is one of Program, Block, Declaration, Assignment, BinaryOp,
// NumberLiteral or Identifier. Children are owned by their parent.
type Node interface {
	Label() string
	Children() []Node
	Attr() *Attributes
	node()
}

type Program struct {
	Attributes
	Statements []Node
}

// Block is a braced statement list with its own scope.
type Block struct {
	Attributes
	Statements []Node
}

type Declaration struct {
	Attributes
	DeclType types.Type
	Target   *Identifier
}

type Assignment struct {
	Attributes
	Target *Identifier
	Expr   Node
}

type BinaryOp struct {
	Attributes
	Op    string
	Left  Node
	Right Node
}

type NumberLiteral struct {
	Attributes
	Lexeme string
}

type Identifier struct {
	Attributes
	Name     string
	Resolved bool
}

func (n *Program) Label() string       { return "Program" }
func (n *Block) Label() string         { return "Block" }
func (n *Declaration) Label() string   { return "Declaration" }
func (n *Assignment) Label() string    { return "Assignment" }
func (n *BinaryOp) Label() string      { return n.Op }
func (n *NumberLiteral) Label() string { return n.Lexeme }
func (n *Identifier) Label() string    { return n.Name }

func (n *Program) Children() []Node { return n.Statements }
func (n *Block) Children() []Node   { return n.Statements }
func (n *Declaration) Children() []Node {
	if n.Target == nil {
		return nil
	}
	return []Node{n.Target}
}
func (n *Assignment) Children() []Node    { return []Node{n.Target, n.Expr} }
func (n *BinaryOp) Children() []Node      { return []Node{n.Left, n.Right} }
func (n *NumberLiteral) Children() []Node { return nil }
func (n *Identifier) Children() []Node    { return nil }

func (n *Program) Attr() *Attributes       { return &n.Attributes }
func (n *Block) Attr() *Attributes         { return &n.Attributes }
func (n *Declaration) Attr() *Attributes   { return &n.Attributes }
func (n *Assignment) Attr() *Attributes    { return &n.Attributes }
func (n *BinaryOp) Attr() *Attributes      { return &n.Attributes }
func (n *NumberLiteral) Attr() *Attributes { return &n.Attributes }
func (n *Identifier) Attr() *Attributes    { return &n.Attributes }

func (*Program) node()       {}
func (*Block) node()         {}
func (*Declaration) node()   {}
func (*Assignment) node()    {}
func (*BinaryOp) node()      {}
func (*NumberLiteral) node() {}
func (*Identifier) node()    {}

package taclex

import "fmt"

// Kind identifies the category of a lexed token.
type Kind int

const (
	EOF Kind = iota // sentinel: end of input

	TYPE   // int | float
	NUMBER // 12 | 3.5
	IDENT  // variable name

	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
	LPAREN // (
	RPAREN // )
	SEMI   // ;
	ASSIGN // =
	LBRACE // {
	RBRACE // }
)

var kindNames = map[Kind]string{
	EOF:    "EOF",
	TYPE:   "TYPE",
	NUMBER: "NUMBER",
	IDENT:  "IDENT",
	PLUS:   "PLUS",
	MINUS:  "MINUS",
	STAR:   "STAR",
	SLASH:  "SLASH",
	LPAREN: "LPAREN",
	RPAREN: "RPAREN",
	SEMI:   "SEMI",
	ASSIGN: "ASSIGN",
	LBRACE: "LBRACE",
	RBRACE: "RBRACE",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is immutable once produced.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
}

func (t Token) String() string {
	if t.Kind == EOF {
		return fmt.Sprintf("EOF@%d", t.Line)
	}
	return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Lexeme, t.Line)
}

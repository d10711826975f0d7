package taclex

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/tacc/lib/diag"
)

// Rules are tried in declared order and must match at the cursor, so the
// type keywords win over Ident and decimals win over bare integers.
var rules = []lexer.SimpleRule{
	{Name: "Type", Pattern: `(int|float)\b`},
	{Name: "Number", Pattern: `\d+\.\d+|\d+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Minus", Pattern: `-`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Slash", Pattern: `/`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Semi", Pattern: `;`},
	{Name: "Assign", Pattern: `=`},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Newline", Pattern: `\n`},
}

var ruleKinds = map[string]Kind{
	"Type":   TYPE,
	"Number": NUMBER,
	"Ident":  IDENT,
	"Plus":   PLUS,
	"Minus":  MINUS,
	"Star":   STAR,
	"Slash":  SLASH,
	"LParen": LPAREN,
	"RParen": RPAREN,
	"Semi":   SEMI,
	"Assign": ASSIGN,
	"LBrace": LBRACE,
	"RBrace": RBRACE,
}

var definition = lexer.MustSimple(rules)

// Lexer produces tokens on demand from one source text.
type Lexer struct {
	src      string
	filename string
	lex      lexer.Lexer
	kinds    map[lexer.TokenType]Kind
	skip     map[lexer.TokenType]bool

	offset int
	line   int
	done   bool
}

// New prepares a Lexer over src. Nothing is scanned until Next is called.
func New(filename, src string) (*Lexer, error) {
	lex, err := definition.Lex(filename, strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	l := &Lexer{
		src:      src,
		filename: filename,
		lex:      lex,
		kinds:    make(map[lexer.TokenType]Kind),
		skip:     make(map[lexer.TokenType]bool),
		line:     1,
	}
	for name, typ := range definition.Symbols() {
		if kind, ok := ruleKinds[name]; ok {
			l.kinds[typ] = kind
		} else if name == "Whitespace" || name == "Newline" {
			l.skip[typ] = true
		}
	}
	return l, nil
}

// Next returns the next token. At end of input it returns an EOF token,
// repeatedly if called again.
func (l *Lexer) Next() (Token, error) {
	if l.done {
		return Token{Kind: EOF, Line: l.line}, nil
	}
	for {
		tok, err := l.lex.Next()
		if err != nil {
			return Token{}, l.lexicalError()
		}
		if tok.EOF() {
			l.done = true
			return Token{Kind: EOF, Line: l.line}, nil
		}
		l.offset = tok.Pos.Offset + len(tok.Value)
		l.line = tok.Pos.Line + strings.Count(tok.Value, "\n")
		if l.skip[tok.Type] {
			continue
		}
		kind, ok := l.kinds[tok.Type]
		if !ok {
			return Token{}, l.lexicalError()
		}
		return Token{Kind: kind, Lexeme: tok.Value, Line: tok.Pos.Line}, nil
	}
}

// Tokenize drains the producer. The trailing EOF token is not included.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) lexicalError() error {
	r := utf8.RuneError
	if l.offset < len(l.src) {
		r, _ = utf8.DecodeRuneInString(l.src[l.offset:])
	}
	return &diag.LexicalError{Char: r, Line: l.line}
}

// TokenizeString is a shorthand for New followed by Tokenize.
func TokenizeString(filename, src string) ([]Token, error) {
	l, err := New(filename, src)
	if err != nil {
		return nil, err
	}
	return l.Tokenize()
}

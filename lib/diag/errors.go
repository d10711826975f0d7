package diag

import "fmt"

// LexicalError aborts analysis when no token rule matches at the cursor.
type LexicalError struct {
	Char rune
	Line int
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("line %d: lexical error: unrecognized character %q", e.Line, e.Char)
}

// SyntaxError aborts analysis on an unexpected token or premature end of input.
type SyntaxError struct {
	Expected string
	Found    string
	Line     int
}

func (e *SyntaxError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("line %d: syntax error: unexpected %s", e.Line, e.Found)
	}
	return fmt.Sprintf("line %d: syntax error: expected %s, found %s", e.Line, e.Expected, e.Found)
}

package diag

import "fmt"

// Kind classifies an accumulated diagnostic.
type Kind int

const (
	Redeclaration Kind = iota
	UndeclaredVariable
	DivisionByZero
	Overflow
	UnusedVariable
)

func (k Kind) String() string {
	switch k {
	case Redeclaration:
		return "RedeclarationError"
	case UndeclaredVariable:
		return "UndeclaredVariableError"
	case DivisionByZero:
		return "DivisionByZeroError"
	case Overflow:
		return "OverflowError"
	case UnusedVariable:
		return "UnusedVariableWarning"
	default:
		return "Diagnostic"
	}
}

// Diagnostic is one error or warning tied to a source line.
type Diagnostic struct {
	Line    int    `json:"line"`
	Kind    Kind   `json:"-"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// List collects semantic errors and warnings in the order they are found.
// Entries are never removed.
type List struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Errorf records a semantic error. The message is prefixed with the kind.
func (l *List) Errorf(kind Kind, line int, format string, args ...interface{}) {
	l.Errors = append(l.Errors, Diagnostic{
		Line:    line,
		Kind:    kind,
		Message: fmt.Sprintf("%s: %s", kind, fmt.Sprintf(format, args...)),
	})
}

// Warnf records a warning.
func (l *List) Warnf(kind Kind, line int, format string, args ...interface{}) {
	l.Warnings = append(l.Warnings, Diagnostic{
		Line:    line,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any semantic error was recorded.
func (l *List) HasErrors() bool {
	return len(l.Errors) > 0
}

// Count returns the number of errors and warnings of the given kind.
func (l *List) Count(kind Kind) int {
	n := 0
	for _, d := range l.Errors {
		if d.Kind == kind {
			n++
		}
	}
	for _, d := range l.Warnings {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

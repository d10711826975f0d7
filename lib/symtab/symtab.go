package symtab

import (
	"github.com/vyPal/tacc/lib/diag"
	"github.com/vyPal/tacc/lib/types"
)

// Symbol is owned by the scope that declared it. Value and Used are updated
// in place by assignments and references.
type Symbol struct {
	Name       string
	Type       types.Type
	ScopeLevel int
	DeclLine   int
	Value      types.Value
	Used       bool
}

// Scope maps names to symbols and links to the enclosing scope.
type Scope struct {
	Level   int
	Parent  *Scope
	symbols map[string]*Symbol
	order   []*Symbol
}

func newScope(parent *Scope) *Scope {
	level := 0
	if parent != nil {
		level = parent.Level + 1
	}
	return &Scope{
		Level:   level,
		Parent:  parent,
		symbols: make(map[string]*Symbol),
	}
}

func (s *Scope) lookup(name string) (*Symbol, bool) {
	if sym, ok := s.symbols[name]; ok {
		return sym, true
	} else if s.Parent != nil {
		return s.Parent.lookup(name)
	}
	return nil, false
}

// Table is a stack of scopes. The global scope is never popped.
type Table struct {
	current   *Scope
	global    *Scope
	all       []*Symbol
	diags     *diag.List
	finalized bool
}

// New returns a table holding only the global scope. Diagnostics are
// appended to diags.
func New(diags *diag.List) *Table {
	global := newScope(nil)
	return &Table{
		current: global,
		global:  global,
		diags:   diags,
	}
}

func (t *Table) Level() int {
	return t.current.Level
}

func (t *Table) EnterScope() {
	t.current = newScope(t.current)
}

// ExitScope pops the innermost scope, warning about every symbol in it that
// was never referenced. It does nothing at the global scope.
func (t *Table) ExitScope() {
	if t.current.Parent == nil {
		return
	}
	t.warnUnused(t.current)
	t.current = t.current.Parent
}

// Finalize closes every open scope and reports unused globals. Further
// calls are no-ops.
func (t *Table) Finalize(warnGlobals bool) {
	if t.finalized {
		return
	}
	t.finalized = true
	for t.current.Parent != nil {
		t.ExitScope()
	}
	if warnGlobals {
		t.warnUnused(t.global)
	}
}

func (t *Table) warnUnused(s *Scope) {
	for _, sym := range s.order {
		if !sym.Used {
			t.diags.Warnf(diag.UnusedVariable, sym.DeclLine, "variable '%s' declared but never used", sym.Name)
		}
	}
}

// Declare inserts name into the current scope. A name already present in the
// same scope is rejected with a redeclaration error.
func (t *Table) Declare(name string, typ types.Type, line int) (*Symbol, bool) {
	if prev, ok := t.current.symbols[name]; ok {
		t.diags.Errorf(diag.Redeclaration, line, "variable '%s' already declared at line %d", name, prev.DeclLine)
		return prev, false
	}
	sym := &Symbol{
		Name:       name,
		Type:       typ,
		ScopeLevel: t.current.Level,
		DeclLine:   line,
	}
	t.current.symbols[name] = sym
	t.current.order = append(t.current.order, sym)
	t.all = append(t.all, sym)
	return sym, true
}

// Resolve finds name from the innermost scope outwards and marks it used.
// A miss is recorded as an undeclared-variable error.
func (t *Table) Resolve(name string, line int) (*Symbol, bool) {
	sym, ok := t.current.lookup(name)
	if !ok {
		t.diags.Errorf(diag.UndeclaredVariable, line, "variable '%s' not declared", name)
		return nil, false
	}
	sym.Used = true
	return sym, true
}

// Lookup finds name without side effects.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	return t.current.lookup(name)
}

// UpdateValue stores v, converted to the symbol's declared type.
func (t *Table) UpdateValue(name string, v types.Value) {
	if sym, ok := t.current.lookup(name); ok {
		sym.Value = v.Convert(sym.Type)
	}
}

// Symbols returns every symbol ever declared, in declaration order,
// including those of scopes that have been popped.
func (t *Table) Symbols() []*Symbol {
	out := make([]*Symbol, len(t.all))
	copy(out, t.all)
	return out
}

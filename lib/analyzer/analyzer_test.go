package analyzer

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/vyPal/tacc/lib/ast"
	"github.com/vyPal/tacc/lib/diag"
	"github.com/vyPal/tacc/lib/symtab"
	"github.com/vyPal/tacc/lib/types"
)

func analyze(t *testing.T, src string) *Result {
	t.Helper()
	res, err := Analyze("test.tac", src, Options{})
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	return res
}

func symbol(t *testing.T, res *Result, name string, level int) *symtab.Symbol {
	t.Helper()
	for _, s := range res.Symbols {
		if s.Name == name && s.ScopeLevel == level {
			return s
		}
	}
	t.Fatalf("symbol %s at level %d not found", name, level)
	return nil
}

func expectCode(t *testing.T, res *Result, want ...string) {
	t.Helper()
	if len(res.Code) != len(want) {
		t.Fatalf("expected %d instructions, got %d:\n%s", len(want), len(res.Code), res.CodeText)
	}
	for i := range want {
		if res.Code[i] != want[i] {
			t.Errorf("instruction %d: expected %q, got %q", i, want[i], res.Code[i])
		}
	}
}

func countKind(ds []diag.Diagnostic, kind diag.Kind) int {
	n := 0
	for _, d := range ds {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func TestPrecedenceAndFolding(t *testing.T) {
	res := analyze(t, "int x; x = 2 + 3 * 4;")
	expectCode(t, res, "declare x : int", "t1 = 3 * 4", "t2 = 2 + t1", "x = t2")
	if res.Failed() || len(res.Warnings) != 0 {
		t.Errorf("expected a clean run, got errors %v warnings %v", res.Errors, res.Warnings)
	}
	x := symbol(t, res, "x", 0)
	if x.Type != types.Int || x.Value.String() != "14" {
		t.Errorf("expected x int 14, got %s %s", x.Type, x.Value)
	}
	if !x.Used {
		t.Error("an assignment target should be marked used")
	}
	if res.CodeText != "declare x : int\nt1 = 3 * 4\nt2 = 2 + t1\nx = t2" {
		t.Errorf("unexpected code text %q", res.CodeText)
	}
}

func TestUndeclaredVariable(t *testing.T) {
	res := analyze(t, "int x; y = 1;")
	if len(res.Errors) != 1 || res.Errors[0].Kind != diag.UndeclaredVariable {
		t.Fatalf("expected one undeclared error, got %v", res.Errors)
	}
	if !strings.Contains(res.Errors[0].Message, "'y'") {
		t.Errorf("expected the error to name y, got %q", res.Errors[0].Message)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0].Message, "'x'") {
		t.Errorf("expected one unused warning for x, got %v", res.Warnings)
	}
	if !res.Failed() {
		t.Error("expected the run to be marked failed")
	}
	expectCode(t, res, "declare x : int", "y = 1")
}

func TestRedeclaration(t *testing.T) {
	res := analyze(t, "int x;\nint x;")
	if len(res.Errors) != 1 || res.Errors[0].Kind != diag.Redeclaration {
		t.Fatalf("expected one redeclaration error, got %v", res.Errors)
	}
	if res.Errors[0].Line != 2 || !strings.Contains(res.Errors[0].Message, "line 1") {
		t.Errorf("expected an error on line 2 referencing line 1, got %s", res.Errors[0])
	}
	if len(res.Symbols) != 1 {
		t.Errorf("expected the table to keep a single x, got %d symbols", len(res.Symbols))
	}
	expectCode(t, res, "declare x : int", "declare x : int")
}

func TestDivisionByZero(t *testing.T) {
	res := analyze(t, "int x; x = 5 / 0;")
	if len(res.Errors) != 1 || res.Errors[0].Kind != diag.DivisionByZero {
		t.Fatalf("expected one division by zero error, got %v", res.Errors)
	}
	if x := symbol(t, res, "x", 0); x.Value.Known() {
		t.Errorf("expected x to stay unknown, got %s", x.Value)
	}
	expectCode(t, res, "declare x : int", "t1 = 5 / 0", "x = t1")

	res = analyze(t, "int a; int x; x = a / (1 - 1);")
	if countKind(res.Errors, diag.DivisionByZero) != 1 {
		t.Errorf("expected a division by zero with an unknown dividend, got %v", res.Errors)
	}
}

func TestTypes(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		sym   string
		typ   types.Type
		value string
	}{
		{"IntDivisionTruncates", "int x; x = 7 / 2;", "x", types.Int, "3"},
		{"MixedIsFloat", "float f; f = 1 + 2.5;", "f", types.Float, "3.5"},
		{"FloatKeepsPoint", "float f; f = 2.0 * 3;", "f", types.Float, "6.0"},
		{"Parentheses", "int x; x = (2 + 3) * 4;", "x", types.Int, "20"},
		{"LeftAssociative", "int x; x = 10 - 4 - 3;", "x", types.Int, "3"},
		{"Propagation", "int a; int b; a = 4; b = a * a;", "b", types.Int, "16"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := analyze(t, tt.src)
			if res.Failed() {
				t.Fatalf("unexpected errors: %v", res.Errors)
			}
			s := symbol(t, res, tt.sym, 0)
			if s.Type != tt.typ || s.Value.String() != tt.value {
				t.Errorf("expected %s %s, got %s %s", tt.typ, tt.value, s.Type, s.Value)
			}
		})
	}
}

func TestUnknownPropagates(t *testing.T) {
	res := analyze(t, "int x; x = y + 1;")
	assign := res.Program.Statements[1].(*ast.Assignment)
	op := assign.Expr.(*ast.BinaryOp)
	if op.Type.Known() || op.Value.Known() {
		t.Errorf("expected an unknown result, got %s", ast.Describe(op))
	}
	if id := op.Left.(*ast.Identifier); id.Resolved {
		t.Error("y should be unresolved")
	}
	expectCode(t, res, "declare x : int", "t1 = y + 1", "x = t1")
}

func TestBareExpressions(t *testing.T) {
	t.Run("IdentifierStatement", func(t *testing.T) {
		res := analyze(t, "int x; x;")
		if res.Failed() || len(res.Warnings) != 0 {
			t.Errorf("expected x used without diagnostics, got %v %v", res.Errors, res.Warnings)
		}
		if _, ok := res.Program.Statements[1].(*ast.Identifier); !ok {
			t.Errorf("expected an identifier statement, got %T", res.Program.Statements[1])
		}
		expectCode(t, res, "declare x : int")
	})

	t.Run("OptionalSemicolon", func(t *testing.T) {
		res := analyze(t, "1 + 2 3 * 4;")
		expectCode(t, res, "t1 = 1 + 2", "t2 = 3 * 4")
		if len(res.Program.Statements) != 2 {
			t.Errorf("expected 2 statements, got %d", len(res.Program.Statements))
		}
	})

	t.Run("BacktrackResolvesOnce", func(t *testing.T) {
		res := analyze(t, "y + 1;")
		if n := countKind(res.Errors, diag.UndeclaredVariable); n != 1 {
			t.Errorf("expected exactly one undeclared error, got %d", n)
		}
		expectCode(t, res, "t1 = y + 1")
	})
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
		found    string
		line     int
	}{
		{"MissingIdentifier", "int ;", "IDENT", "SEMI", 1},
		{"MissingSemicolon", "int x;\nx = 1", "SEMI", "end of input", 2},
		{"UnclosedParen", "(1 + 2;", "RPAREN", "SEMI", 1},
		{"EmptyExpression", "int x; x = ;", "expression", "SEMI", 1},
		{"UnclosedBlock", "{ int x;", "RBRACE", "end of input", 1},
		{"StrayAssign", "= 3;", "", "ASSIGN", 1},
		{"StrayBrace", "}", "", "RBRACE", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Analyze("test.tac", tt.src, Options{})
			if res != nil {
				t.Error("expected no result on a fatal error")
			}
			var syn *diag.SyntaxError
			if !errors.As(err, &syn) {
				t.Fatalf("expected a SyntaxError, got %v", err)
			}
			if syn.Expected != tt.expected || syn.Found != tt.found || syn.Line != tt.line {
				t.Errorf("expected (%q, %q, %d), got (%q, %q, %d)", tt.expected, tt.found, tt.line, syn.Expected, syn.Found, syn.Line)
			}
		})
	}
}

func TestLexicalErrorAborts(t *testing.T) {
	_, err := Analyze("test.tac", "int x; x = 1 # 2;", Options{})
	var lexErr *diag.LexicalError
	if !errors.As(err, &lexErr) || lexErr.Char != '#' {
		t.Fatalf("expected a LexicalError for '#', got %v", err)
	}
}

func TestBlocks(t *testing.T) {
	res := analyze(t, "int x;\n{\nfloat x;\nx = 1.5;\n}\nx = 2;")
	if res.Failed() || len(res.Warnings) != 0 {
		t.Fatalf("expected a clean run, got %v %v", res.Errors, res.Warnings)
	}
	if inner := symbol(t, res, "x", 1); inner.Type != types.Float || inner.Value.String() != "1.5" {
		t.Errorf("inner x: expected float 1.5, got %s %s", inner.Type, inner.Value)
	}
	if outer := symbol(t, res, "x", 0); outer.Type != types.Int || outer.Value.String() != "2" {
		t.Errorf("outer x: expected int 2, got %s %s", outer.Type, outer.Value)
	}
	if _, ok := res.Program.Statements[1].(*ast.Block); !ok {
		t.Errorf("expected a block statement, got %T", res.Program.Statements[1])
	}
	expectCode(t, res, "declare x : int", "declare x : float", "x = 1.5", "x = 2")

	res = analyze(t, "{ int y; }\n{ int y; y; }")
	if len(res.Warnings) != 1 || res.Warnings[0].Line != 1 {
		t.Errorf("expected one unused warning on line 1, got %v", res.Warnings)
	}
	if len(res.Errors) != 0 {
		t.Errorf("sibling blocks may reuse a name, got %v", res.Errors)
	}
}

func TestSkipUnusedGlobals(t *testing.T) {
	res, err := Analyze("test.tac", "int x; { int y; }", Options{SkipUnusedGlobals: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0].Message, "'y'") {
		t.Errorf("expected only the block-local warning, got %v", res.Warnings)
	}
}

func TestInstructionCount(t *testing.T) {
	src := "int a; float b; a = 1 + 2 * 3 - 4 / 2; b = a * 1.5 + (a - 1); a + b;"
	res := analyze(t, src)
	ops := ast.BinaryOps(res.Program)
	decls := len(ast.FindAll(res.Program, "Declaration"))
	assigns := len(ast.FindAll(res.Program, "Assignment"))
	if want := decls + assigns + len(ops); len(res.Code) != want {
		t.Errorf("expected %d instructions, got %d", want, len(res.Code))
	}
	for i, op := range ops {
		if want := "t" + strconv.Itoa(i+1); op.Place != want {
			t.Errorf("op %d (%s): expected place %s, got %s", i, op.Op, want, op.Place)
		}
	}
}

func TestIndependentRuns(t *testing.T) {
	first := analyze(t, "int x; x = 1 + 2;")
	second := analyze(t, "int x; x = 1 + 2;")
	if strings.Join(first.Code, "|") != strings.Join(second.Code, "|") {
		t.Errorf("expected identical output, got %v and %v", first.Code, second.Code)
	}
	if second.Code[1] != "t1 = 1 + 2" {
		t.Errorf("expected temporaries to restart at t1, got %q", second.Code[1])
	}
}

func TestEmptyProgram(t *testing.T) {
	res := analyze(t, "  \n ")
	if len(res.Code) != 0 || len(res.Program.Statements) != 0 || res.Failed() {
		t.Errorf("expected an empty result, got %+v", res)
	}
	if n := ast.Count(res.Program); n != 1 {
		t.Errorf("expected only the root node, got %d", n)
	}
}

func TestAssignmentCoercion(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		sym     string
		typ     types.Type
		value   string
		opType  types.Type
		opValue string
		code    []string
	}{
		{
			name:    "FloatFromInt",
			src:     "float f; f = 2; float g; g = f / 4;",
			sym:     "g",
			typ:     types.Float,
			value:   "0.5",
			opType:  types.Float,
			opValue: "0.5",
			code:    []string{"declare f : float", "f = 2", "declare g : float", "t1 = 2.0 / 4", "g = t1"},
		},
		{
			name:    "IntFromFloat",
			src:     "int i; i = 2.5; int j; j = i + 1;",
			sym:     "j",
			typ:     types.Int,
			value:   "3",
			opType:  types.Int,
			opValue: "3",
			code:    []string{"declare i : int", "i = 2.5", "declare j : int", "t1 = 2 + 1", "j = t1"},
		},
		{
			name:    "IntTargetOfFloatExpression",
			src:     "int i; i = 7 / 2.0; float f; f = i * 1.5;",
			sym:     "f",
			typ:     types.Float,
			value:   "4.5",
			opType:  types.Float,
			opValue: "4.5",
			code:    []string{"declare i : int", "t1 = 7 / 2.0", "i = t1", "declare f : float", "t2 = 3 * 1.5", "f = t2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := analyze(t, tt.src)
			if res.Failed() {
				t.Fatalf("unexpected errors: %v", res.Errors)
			}
			s := symbol(t, res, tt.sym, 0)
			if s.Type != tt.typ || s.Value.String() != tt.value || s.Value.Kind() != tt.typ {
				t.Errorf("%s: expected %s %s, got %s %s (%s value)", tt.sym, tt.typ, tt.value, s.Type, s.Value, s.Value.Kind())
			}
			ops := ast.BinaryOps(res.Program)
			last := ops[len(ops)-1]
			if last.Type != tt.opType || last.Value.String() != tt.opValue {
				t.Errorf("operation: expected %s %s, got %s", tt.opType, tt.opValue, ast.Describe(last))
			}
			expectCode(t, res, tt.code...)
		})
	}
}

func TestAssignedValueTakesTargetType(t *testing.T) {
	res := analyze(t, "int i; i = 2.5;")
	assign := res.Program.Statements[1].(*ast.Assignment)
	if assign.Value.Kind() != types.Int || assign.Value.String() != "2" {
		t.Errorf("expected the assignment to carry int 2, got %s", ast.Describe(assign))
	}
	if i := symbol(t, res, "i", 0); i.Value.String() != "2" {
		t.Errorf("expected i to hold 2, got %s", i.Value)
	}
}

func TestOverflow(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code []string
	}{
		{
			name: "Addition",
			src:  "int x; x = 9223372036854775807 + 1;",
			code: []string{"declare x : int", "t1 = 9223372036854775807 + 1", "x = t1"},
		},
		{
			name: "Multiplication",
			src:  "int x; x = 4294967296 * 4294967296;",
			code: []string{"declare x : int", "t1 = 4294967296 * 4294967296", "x = t1"},
		},
		{
			name: "Subtraction",
			src:  "int x; int m; m = 0 - 9223372036854775807; x = m - 2;",
			code: []string{"declare x : int", "declare m : int", "t1 = 0 - 9223372036854775807", "m = t1", "t2 = -9223372036854775807 - 2", "x = t2"},
		},
		{
			name: "LiteralOutOfRange",
			src:  "int x; x = 99999999999999999999;",
			code: []string{"declare x : int", "x = 99999999999999999999"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := analyze(t, tt.src)
			if len(res.Errors) != 1 || res.Errors[0].Kind != diag.Overflow {
				t.Fatalf("expected one overflow error, got %v", res.Errors)
			}
			if x := symbol(t, res, "x", 0); x.Value.Known() {
				t.Errorf("expected x to stay unknown, got %s", x.Value)
			}
			expectCode(t, res, tt.code...)
		})
	}

	t.Run("LiteralKeepsParsing", func(t *testing.T) {
		res := analyze(t, "int x; x = 99999999999999999999 + 1; x = 2;")
		if n := countKind(res.Errors, diag.Overflow); n != 1 {
			t.Errorf("expected one overflow error, got %v", res.Errors)
		}
		if x := symbol(t, res, "x", 0); x.Value.String() != "2" {
			t.Errorf("expected analysis to continue, got x = %s", x.Value)
		}
	})
}

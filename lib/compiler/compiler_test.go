package compiler

import (
	"strings"
	"testing"

	"github.com/vyPal/tacc/lib/analyzer"
)

func compile(t *testing.T, src string, printGlobals bool) (string, error) {
	t.Helper()
	res, err := analyzer.Analyze("test.tac", src, analyzer.Options{})
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}
	c := NewCompiler()
	c.PrintGlobals = printGlobals
	if err := c.Compile(res.Program); err != nil {
		return "", err
	}
	return c.String(), nil
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		print bool
		want  []string
	}{
		{
			name: "ConstantOperands",
			src:  "int x; x = 2 + 3 * 4;",
			want: []string{"define i32 @main()", "alloca i64", "mul i64 3, 4", "add i64 2, %", "ret i32 0"},
		},
		{
			name: "FloatSlotFromIntConstant",
			src:  "float f; f = 2; float g; g = f / 4;",
			want: []string{"sitofp i64 2 to double", "load double, double* %f", "sitofp i64 4 to double", "fdiv double"},
		},
		{
			name: "IntSlotFromFloatConstant",
			src:  "int i; i = 2.5; int j; j = i + 1;",
			want: []string{"fptosi double 2.5 to i64", "load i64, i64* %i", "add i64"},
		},
		{
			name: "LoadsAfterNonConstantAssignment",
			src:  "int a; int x; x = 5; x = a + 1; int y; y = x;",
			want: []string{"store i64 5, i64* %x", "load i64, i64* %x"},
		},
		{
			name: "IntArithmetic",
			src:  "int a; int b; b = a * 2 - a / 3;",
			want: []string{"load i64", "mul i64", "sdiv i64", "sub i64"},
		},
		{
			name: "FloatArithmetic",
			src:  "float f; int i; f = f + i;",
			want: []string{"alloca double", "sitofp i64", "fadd double"},
		},
		{
			name: "NarrowingAssignment",
			src:  "int i; float f; i = f * 2;",
			want: []string{"fmul double", "fptosi double"},
		},
		{
			name: "ShadowedSlots",
			src:  "int x; { int x; x = 1; } x = 2;",
			want: []string{"%x = alloca i64", "%x.1 = alloca i64"},
		},
		{
			name:  "PrintGlobals",
			src:   "int x; float y; x = 3; y = 0.5;",
			print: true,
			want:  []string{"declare i32 @printf(i8*", "x = %ld", "y = %f", "@printf("},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ir, err := compile(t, tt.src, tt.print)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(ir, want) {
					t.Errorf("expected IR to contain %q, got:\n%s", want, ir)
				}
			}
		})
	}
}

func TestCompileRejectsUnresolved(t *testing.T) {
	if _, err := compile(t, "int x; x = y;", false); err == nil {
		t.Error("expected an error for an undeclared variable")
	}
	if err := NewCompiler().Compile(nil); err == nil {
		t.Error("expected an error for a nil program")
	}
}

func TestCompileMixedAssignments(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"FloatFromInt", "float f; f = 2; float g; g = f / 4;"},
		{"IntFromFloat", "int i; i = 2.5; int j; j = i + 1;"},
		{"FloatFromIntExpression", "int i; float f; i = 3; f = i * 2; f = f + i;"},
		{"IntFromFloatExpression", "float f; int i; f = 1.5; i = f * 2; i = i / 2;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := analyzer.Analyze("test.tac", tt.src, analyzer.Options{})
			if err != nil {
				t.Fatalf("analysis failed: %v", err)
			}
			if res.Failed() {
				t.Fatalf("unexpected errors: %v", res.Errors)
			}
			c := NewCompiler()
			if err := c.Compile(res.Program); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(c.String(), "ret i32 0") {
				t.Errorf("expected a complete main, got:\n%s", c.String())
			}
		})
	}
}

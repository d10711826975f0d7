package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type is the static type attached to a symbol or an AST node.
type Type int

const (
	Unknown Type = iota // resolution failed earlier
	Int
	Float
	Void
)

func (t Type) Name() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Void:
		return "void"
	default:
		return ""
	}
}

func (t Type) String() string {
	if t == Unknown {
		return "unknown"
	}
	return t.Name()
}

func (t Type) Known() bool {
	return t != Unknown
}

// FromKeyword maps a type keyword from source text to its Type.
func FromKeyword(s string) (Type, error) {
	switch s {
	case "int":
		return Int, nil
	case "float":
		return Float, nil
	default:
		return Unknown, fmt.Errorf("unknown type keyword %q", s)
	}
}

// Coerce returns the result type of a binary operation over a and b.
// Unknown is contagious, float wins over int.
func Coerce(a, b Type) Type {
	if a == Unknown || b == Unknown {
		return Unknown
	}
	if a == Float || b == Float {
		return Float
	}
	if a == Int && b == Int {
		return Int
	}
	return a
}

// Value is a compile-time constant. The zero Value carries no value.
type Value struct {
	kind Type
	i    int64
	f    float64
}

var NoValue = Value{}

func IntValue(i int64) Value {
	return Value{kind: Int, i: i}
}

func FloatValue(f float64) Value {
	return Value{kind: Float, f: f}
}

// LiteralType is float for a lexeme with a decimal point and int otherwise.
func LiteralType(lexeme string) Type {
	if strings.Contains(lexeme, ".") {
		return Float
	}
	return Int
}

// ParseLiteral reads a numeric lexeme. A literal that does not fit its type
// yields NoValue and an error wrapping ErrOutOfRange.
func ParseLiteral(lexeme string) (Value, error) {
	if LiteralType(lexeme) == Float {
		f, err := strconv.ParseFloat(lexeme, 64)
		if errors.Is(err, strconv.ErrRange) {
			return NoValue, fmt.Errorf("%w: %s", ErrOutOfRange, lexeme)
		} else if err != nil {
			return NoValue, err
		}
		return FloatValue(f), nil
	}
	i, err := strconv.ParseInt(lexeme, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return NoValue, fmt.Errorf("%w: %s", ErrOutOfRange, lexeme)
	} else if err != nil {
		return NoValue, err
	}
	return IntValue(i), nil
}

func (v Value) Known() bool {
	return v.kind != Unknown
}

func (v Value) Kind() Type {
	return v.kind
}

func (v Value) IsZero() bool {
	switch v.kind {
	case Int:
		return v.i == 0
	case Float:
		return v.f == 0
	default:
		return false
	}
}

// Convert returns v as a value of type t. Float to int truncates toward zero
// and a float outside the int range becomes NoValue. Unknown values and
// non-numeric targets are returned unchanged.
func (v Value) Convert(t Type) Value {
	if !v.Known() || v.kind == t {
		return v
	}
	switch t {
	case Int:
		if math.IsNaN(v.f) || v.f < math.MinInt64 || v.f >= -math.MinInt64 {
			return NoValue
		}
		return IntValue(int64(v.f))
	case Float:
		return FloatValue(float64(v.i))
	}
	return v
}

func (v Value) Int64() int64 {
	if v.kind == Float {
		return int64(v.f)
	}
	return v.i
}

func (v Value) Float64() float64 {
	if v.kind == Int {
		return float64(v.i)
	}
	return v.f
}

func (v Value) String() string {
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		s := strconv.FormatFloat(v.f, 'f', -1, 64)
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) || strings.Contains(s, ".") {
			return s
		}
		return s + ".0"
	default:
		return "None"
	}
}

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrOutOfRange     = errors.New("constant out of range")
	ErrUnknownOp      = errors.New("unknown operator")
)

// Fold evaluates l op r when both values are known. It returns NoValue when
// either side is unknown. Mixed operands are promoted to float; two ints fold
// in int64 and an overflow yields ErrOutOfRange.
func Fold(op string, l, r Value) (Value, error) {
	if op == "/" && r.Known() && r.IsZero() {
		return NoValue, ErrDivisionByZero
	}
	if !l.Known() || !r.Known() {
		return NoValue, nil
	}
	if l.kind == Float || r.kind == Float {
		a, b := l.Float64(), r.Float64()
		switch op {
		case "+":
			return FloatValue(a + b), nil
		case "-":
			return FloatValue(a - b), nil
		case "*":
			return FloatValue(a * b), nil
		case "/":
			return FloatValue(a / b), nil
		}
		return NoValue, fmt.Errorf("%w: %s", ErrUnknownOp, op)
	}
	return foldInt(op, l.i, r.i)
}

func foldInt(op string, a, b int64) (Value, error) {
	var res int64
	overflow := false
	switch op {
	case "+":
		res = a + b
		overflow = (b > 0 && res < a) || (b < 0 && res > a)
	case "-":
		res = a - b
		overflow = (b > 0 && res > a) || (b < 0 && res < a)
	case "*":
		res = a * b
		overflow = a != 0 && (res/a != b || (a == -1 && b == math.MinInt64))
	case "/":
		overflow = a == math.MinInt64 && b == -1
		if !overflow {
			res = a / b
		}
	default:
		return NoValue, fmt.Errorf("%w: %s", ErrUnknownOp, op)
	}
	if overflow {
		return NoValue, fmt.Errorf("%w: %d %s %d", ErrOutOfRange, a, op, b)
	}
	return IntValue(res), nil
}

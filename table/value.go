package table

import (
	"math"
	"strconv"
)

// Kind discriminates the type stored in a Value.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a single table cell: a null marker, an integer, a float or a
// string. Band cells are numeric; attribute cells broadcast from a polygon
// may be any kind.
type Value struct {
	kind Kind
	n    int64
	f    float64
	s    string
}

func Null() Value           { return Value{kind: KindNull} }
func Int(n int64) Value     { return Value{kind: KindInt, n: n} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func String(s string) Value { return Value{kind: KindString, s: s} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the cell as an int64. Floats are truncated, strings and nulls
// yield zero.
func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.n
	case KindFloat:
		return int64(v.f)
	default:
		return 0
	}
}

// Float returns the cell as a float64. Nulls yield NaN.
func (v Value) Float() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.n)
	case KindFloat:
		return v.f
	case KindString:
		f, _ := strconv.ParseFloat(v.s, 64)
		return f
	default:
		return math.NaN()
	}
}

// Encode renders the cell for CSV output. Nulls encode as the empty string.
func (v Value) Encode() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.n, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	default:
		return ""
	}
}

// Equal reports whether two cells hold the same kind and payload. Float
// comparison is exact; NaN never equals NaN.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.n == o.n
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	default:
		return true
	}
}

package data

import (
	"fmt"
	"math"
	"strconv"
)

// ValueKind identifies which variant a Value holds
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInt
	KindFloat
	KindText
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindInt:
		return "INT"
	case KindFloat:
		return "FLOAT"
	case KindText:
		return "TEXT"
	case KindBool:
		return "BOOL"
	default:
		return "UNKNOWN"
	}
}

// Value is a typed cell value produced by coercion.
// Exactly one variant is populated; consumers switch on Kind().
// Values are immutable once constructed.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
	b    bool
}

func Null() Value {
	return Value{kind: KindNull}
}

func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

func Text(v string) Value {
	return Value{kind: KindText, s: v}
}

func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the integer variant's payload. Zero for other variants.
func (v Value) Int() int64 { return v.i }

// Float returns the float variant's payload. Zero for other variants.
func (v Value) Float() float64 { return v.f }

// Text returns the text variant's payload. Empty for other variants.
func (v Value) Text() string { return v.s }

// Bool returns the boolean variant's payload. False for other variants.
func (v Value) Bool() bool { return v.b }

// Equal compares kind and payload. NaN does not equal itself,
// matching float comparison semantics.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindText:
		return v.s == o.s
	case KindBool:
		return v.b == o.b
	default:
		return false
	}
}

// String renders the value for logs and error messages.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		if math.IsInf(v.f, 1) {
			return "+inf"
		}
		if math.IsInf(v.f, -1) {
			return "-inf"
		}
		if math.IsNaN(v.f) {
			return "nan"
		}
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return fmt.Sprintf("%q", v.s)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return "<invalid>"
	}
}

package flatten

import (
	"strconv"
	"strings"
)

// Kind identifies the type of a scalar Value.
type Kind int

const (
	// KindNull indicates an absent or empty value.
	KindNull Kind = iota
	// KindBool indicates a boolean value.
	KindBool
	// KindInt indicates an integer value.
	KindInt
	// KindFloat indicates a floating-point value.
	KindFloat
	// KindText indicates an uninterpreted text value.
	KindText
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Value is a typed scalar cell value. The zero Value is Null. Values are
// produced by [Coerce] and the constructors below, and consumed with an
// exhaustive switch on Kind at the sink boundary.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// Null is the absent value.
var Null = Value{}

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int returns an integer Value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a floating-point Value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Text returns a text Value.
func Text(v string) Value { return Value{kind: KindText, s: v} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; valid only when Kind is KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload; valid only when Kind is KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload; valid only when Kind is KindFloat.
func (v Value) Float() float64 { return v.f }

// Text returns the text payload; valid only when Kind is KindText.
func (v Value) Text() string { return v.s }

// String returns the display form of the value. Null renders as the empty
// string; sinks that need a different blank representation should switch on
// Kind instead.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return v.s
	default:
		return ""
	}
}

// Coerce converts raw element text or an attribute value into a typed
// scalar. It is total and rule-ordered:
//
//  1. empty after trimming -> Null
//  2. "true"/"false" (case-insensitive) -> Bool
//  3. contains "." -> Float if it parses, otherwise Text
//  4. no "." -> Int if it parses, otherwise Text
//
// A dotted string that fails float parsing is never retried as an integer.
func Coerce(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Null
	}
	if strings.EqualFold(s, "true") {
		return Bool(true)
	}
	if strings.EqualFold(s, "false") {
		return Bool(false)
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Float(f)
		}
		return Text(s)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}
	return Text(s)
}

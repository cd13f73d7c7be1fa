package value

import (
	"math"
	"strconv"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a runtime value. The set of implementations is closed: Number,
// String, Bool and Nil.
type Value interface {
	Kind() Kind
	// String renders the value the way print shows it.
	String() string
	isValue()
}

type Number float64

type String string

type Bool bool

type Nil struct{}

func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Bool) Kind() Kind   { return KindBool }
func (Nil) Kind() Kind    { return KindNil }

func (Number) isValue() {}
func (String) isValue() {}
func (Bool) isValue()   {}
func (Nil) isValue()    {}

// String prints integral numbers without a fractional part ("3", not "3.0")
// and everything else in the shortest form that round-trips.
func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (s String) String() string { return string(s) }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

func (Nil) String() string { return "nil" }

// Epsilon is the tolerance used when comparing numbers for equality.
const Epsilon = 2.220446049250313e-16

// Equal reports whether a and b are equal. Values of different kinds are
// never equal, so equality is defined for every pair and cannot fail.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Number:
		y, ok := b.(Number)
		if !ok {
			return false
		}
		return x == y || math.Abs(float64(x-y)) < Epsilon
	case String:
		y, ok := b.(String)
		return ok && x == y
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Nil:
		_, ok := b.(Nil)
		return ok
	default:
		return false
	}
}

// Stringify renders v for print. A nil interface prints as nil.
func Stringify(v Value) string {
	if v == nil {
		return Nil{}.String()
	}
	return v.String()
}

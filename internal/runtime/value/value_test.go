package value

import (
	"math"
	"testing"
)

func TestNumberString(t *testing.T) {
	tests := []struct {
		n        Number
		expected string
	}{
		{3, "3"},
		{-3, "-3"},
		{0, "0"},
		{2.5, "2.5"},
		{0.1, "0.1"},
		{123.456, "123.456"},
		{1e21, "1000000000000000000000"},
		{Number(math.Inf(1)), "inf"},
		{Number(math.Inf(-1)), "-inf"},
		{Number(math.NaN()), "NaN"},
	}

	for _, tt := range tests {
		if got := tt.n.String(); got != tt.expected {
			t.Errorf("Number(%v).String() expected=%q, got=%q", float64(tt.n), tt.expected, got)
		}
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		v        Value
		expected string
	}{
		{nil, "nil"},
		{Nil{}, "nil"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{String("hello"), "hello"},
		{String(""), ""},
		{Number(7), "7"},
	}

	for _, tt := range tests {
		if got := Stringify(tt.v); got != tt.expected {
			t.Errorf("Stringify(%#v) expected=%q, got=%q", tt.v, tt.expected, got)
		}
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		v        Value
		kind     Kind
		expected string
	}{
		{Nil{}, KindNil, "nil"},
		{Bool(true), KindBool, "bool"},
		{Number(1), KindNumber, "number"},
		{String("s"), KindString, "string"},
	}

	for _, tt := range tests {
		if tt.v.Kind() != tt.kind {
			t.Errorf("%#v.Kind() expected=%v, got=%v", tt.v, tt.kind, tt.v.Kind())
		}
		if tt.kind.String() != tt.expected {
			t.Errorf("Kind.String() expected=%q, got=%q", tt.expected, tt.kind.String())
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b     Value
		expected bool
	}{
		{Number(1), Number(1), true},
		{Number(1), Number(2), false},
		{Number(0.1 + 0.2), Number(0.3), true},
		{Number(1), Number(1 + Epsilon/2), true},
		{Number(1), Number(1.000001), false},
		// float64 precision: differences well below float32 epsilon still count
		{Number(1), Number(1.0000001), false},
		{Number(math.Inf(1)), Number(math.Inf(1)), true},
		{Number(math.NaN()), Number(math.NaN()), false},
		{String("a"), String("a"), true},
		{String("a"), String("b"), false},
		{Bool(true), Bool(true), true},
		{Bool(true), Bool(false), false},
		{Nil{}, Nil{}, true},
		// Different kinds are never equal
		{Number(1), String("1"), false},
		{Nil{}, Bool(false), false},
		{Number(0), Bool(false), false},
		{String(""), Nil{}, false},
	}

	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.expected {
			t.Errorf("Equal(%#v, %#v) expected=%t, got=%t", tt.a, tt.b, tt.expected, got)
		}
		if got := Equal(tt.b, tt.a); got != tt.expected {
			t.Errorf("Equal(%#v, %#v) expected=%t, got=%t", tt.b, tt.a, tt.expected, got)
		}
	}
}

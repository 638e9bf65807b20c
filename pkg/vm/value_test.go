package vm

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

// Helper function to check for panics using standard library
func expectPanic(t *testing.T, fn func(), containsMsg string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("Expected a panic, but function did not panic")
			return
		}
		if containsMsg != "" {
			panicMsg := fmt.Sprintf("%v", r)
			if !strings.Contains(panicMsg, containsMsg) {
				t.Errorf("Panic message mismatch.\nExpected to contain: %q\nActual: %q", containsMsg, panicMsg)
			}
		}
	}()
	fn()
}

func TestValueAccessors(t *testing.T) {
	s := String("prototype")
	if !s.IsString() || s.IsNumber() {
		t.Errorf("String value has wrong type flags: %v", s.Type())
	}
	if s.AsString() != "prototype" {
		t.Errorf("AsString() = %q", s.AsString())
	}
	expectPanic(t, func() { s.AsFloat() }, "not a number")

	n := Number(42)
	if !n.IsNumber() || n.IsString() {
		t.Errorf("Number value has wrong type flags: %v", n.Type())
	}
	if n.AsFloat() != 42 {
		t.Errorf("AsFloat() = %v", n.AsFloat())
	}
	expectPanic(t, func() { n.AsString() }, "not a string")
}

func TestValueIs(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same string", String("a"), String("a"), true},
		{"different string", String("a"), String("b"), false},
		{"same number", Number(1.5), Number(1.5), true},
		{"string vs number", String("1"), Number(1), false},
		{"zero vs negative zero", Number(0), Number(math.Copysign(0, -1)), false},
		{"NaN", Number(math.NaN()), Number(math.NaN()), false},
	}
	for _, tt := range tests {
		if got := tt.a.Is(tt.b); got != tt.want {
			t.Errorf("%s: Is() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNumberToString(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1, "1"},
		{-7, "-7"},
		{1.5, "1.5"},
		{100000000000000000000, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e21, "1.5e+21"},
		{123e20, "1.23e+22"},
		{1234567.5, "1234567.5"},
		{0.5, "0.5"},
		{-0.25, "-0.25"},
		{0.00001, "0.00001"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{1.5e-10, "1.5e-10"},
		{-2e-9, "-2e-9"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tt := range tests {
		if got := NumberToString(tt.in); got != tt.want {
			t.Errorf("NumberToString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

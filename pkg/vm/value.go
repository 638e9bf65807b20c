package vm

import (
	"math"
	"strconv"
	"strings"
)

// ValueType tags the kind of a constant-pool entry.
type ValueType uint8

const (
	TypeString ValueType = iota
	TypeNumber
)

// Value is a constant-pool entry: a string (property names, internal
// function names) or a number.
type Value struct {
	typ ValueType
	str string
	num float64
}

// String creates a string constant.
func String(s string) Value {
	return Value{typ: TypeString, str: s}
}

// Number creates a numeric constant.
func Number(f float64) Value {
	return Value{typ: TypeNumber, num: f}
}

func (v Value) Type() ValueType { return v.typ }
func (v Value) IsString() bool  { return v.typ == TypeString }
func (v Value) IsNumber() bool  { return v.typ == TypeNumber }

// AsString returns the string payload. Panics on non-string values.
func (v Value) AsString() string {
	if v.typ != TypeString {
		panic("value is not a string")
	}
	return v.str
}

// AsFloat returns the numeric payload. Panics on non-number values.
func (v Value) AsFloat() float64 {
	if v.typ != TypeNumber {
		panic("value is not a number")
	}
	return v.num
}

// Is reports identity for pool deduplication. NaN constants are never
// shared, and 0 and -0 stay distinct.
func (v Value) Is(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	if v.typ == TypeString {
		return v.str == other.str
	}
	return v.num == other.num && math.Signbit(v.num) == math.Signbit(other.num)
}

// ToString renders the value for disassembly.
func (v Value) ToString() string {
	if v.typ == TypeString {
		return v.str
	}
	return NumberToString(v.num)
}

// NumberToString formats a number as a property key the way the runtime
// does: shortest round-tripping digits, plain decimal notation for
// exponents in [-7, 21), and an unpadded signed exponent otherwise
// ("1e-7", "1.5e+21").
func NumberToString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	// d.ddde±XX
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, expText, _ := strings.Cut(sci, "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	exp, _ := strconv.Atoi(expText)
	k := len(digits)
	n := exp + 1

	switch {
	case k <= n && n <= 21:
		return sign + digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return sign + digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return sign + "0." + strings.Repeat("0", -n) + digits
	}

	expSign := "+"
	if n-1 < 0 {
		expSign = "-"
	}
	e := n - 1
	if e < 0 {
		e = -e
	}
	out := digits[:1]
	if k > 1 {
		out += "." + digits[1:]
	}
	return sign + out + "e" + expSign + strconv.Itoa(e)
}

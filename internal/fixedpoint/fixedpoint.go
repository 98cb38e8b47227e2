// Package fixedpoint implements a deterministic non-negative scalar for
// resource quantities. Amounts are tracked as scaled integers so that
// addition, subtraction, and comparison never drift the way floating
// point would across repeated scheduling calls.
package fixedpoint

import (
	"fmt"

	"k8s.io/klog/v2"
)

// Scale is the number of fractional units represented by one whole unit,
// matching the millicore convention Kubernetes uses for CPU quantities.
const Scale = 1000

// Value is a non-negative fixed-point scalar. The zero Value is 0.
type Value int64

// FromInt64 creates a Value from a whole-unit integer amount.
func FromInt64(whole int64) Value {
	if whole < 0 {
		panic(fmt.Sprintf("fixedpoint: negative amount %d", whole))
	}
	return Value(whole * Scale)
}

// FromMilli creates a Value directly from scaled (milli) units.
func FromMilli(milli int64) Value {
	if milli < 0 {
		panic(fmt.Sprintf("fixedpoint: negative amount %d", milli))
	}
	return Value(milli)
}

// Add returns v + other.
func (v Value) Add(other Value) Value {
	return v + other
}

// Sub returns v - other. Aborts the process if the result would be negative:
// resource quantities are never allowed below zero, and a caller hitting this
// is a programming error, not a recoverable condition — one that must not be
// caught by a surrounding request handler and left running in a corrupted
// state.
func (v Value) Sub(other Value) Value {
	if other > v {
		klog.Fatalf("fixedpoint: subtraction underflow: %d - %d", v, other)
	}
	return v - other
}

// LessOrEqual reports whether v <= other.
func (v Value) LessOrEqual(other Value) bool {
	return v <= other
}

// IsZero reports whether v is exactly zero.
func (v Value) IsZero() bool {
	return v == 0
}

// Float64 converts v to a real number of whole units, for use in scoring
// ratios only — never for equality or ordering comparisons.
func (v Value) Float64() float64 {
	return float64(v) / float64(Scale)
}

// Milli returns the raw scaled integer value.
func (v Value) Milli() int64 {
	return int64(v)
}

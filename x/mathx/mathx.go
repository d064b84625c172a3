// Package mathx holds small integer helpers shared by the drivers.
package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Between reports lo <= v && v <= hi (order-insensitive).
func Between[T constraints.Ordered](v, lo, hi T) bool {
	if hi < lo {
		lo, hi = hi, lo
	}
	return v >= lo && v <= hi
}

// RoundDiv returns floor((a + b/2)/b); 0 when b is 0.
func RoundDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}

// AbsDiff returns |a-b| without wrapping.
func AbsDiff[T constraints.Unsigned](a, b T) T {
	if a > b {
		return a - b
	}
	return b - a
}

// ErrorPermille returns |actual-want| in parts per thousand of want.
func ErrorPermille[T constraints.Unsigned](actual, want T) uint64 {
	if want == 0 {
		return 0
	}
	return uint64(AbsDiff(actual, want)) * 1000 / uint64(want)
}

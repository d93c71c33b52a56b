// Package mathx holds small generic numeric helpers used on the
// configuration path. Nothing here allocates.
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

// Abs for signed integers. The most negative value maps to itself.
func Abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of a and b
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// SaturateInt32 narrows v to int32, pinning out-of-range values to the bounds
func SaturateInt32(v int64) int32 {
	return int32(Clamp(v, -1<<31, 1<<31-1))
}

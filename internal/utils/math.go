package utils

import "cmp"

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates from a to b by t without clamping t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Ratio returns num/den, or 0 when den is zero.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// AtLeast returns v, raised to floor when smaller.
func AtLeast(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

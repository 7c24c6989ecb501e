// Package vmath provides the scalar and 2D vector math used by the
// simulation core: interpolation helpers, the branch-free divisor clamp for
// per-particle hot loops, and small statistics utilities.
package vmath

import "math"

// SafeDiv divides num by den with the divisor clamped away from zero.
// The clamp is branch-free on purpose: force-normalisation loops call this
// per particle and a near-zero divisor is a normal transient, not an error.
func SafeDiv(num, den float64) float64 {
	return num / math.Max(den, math.SmallestNonzeroFloat64)
}

// SafeInv returns 1/x with the same divisor clamp as SafeDiv.
func SafeInv(x float64) float64 {
	return 1.0 / math.Max(x, math.SmallestNonzeroFloat64)
}

// FastFloorInt truncates toward negative infinity.
func FastFloorInt(x float64) int {
	i := int(x)
	if x < float64(i) {
		i--
	}
	return i
}

func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp interpolates linearly between a and b by t in [0,1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// SmoothStep is the Hermite 3t²-2t³ ease between edges lo and hi.
func SmoothStep(lo, hi, x float64) float64 {
	t := Clamp((x-lo)/math.Max(hi-lo, math.SmallestNonzeroFloat64), 0.0, 1.0)
	return t * t * (3.0 - 2.0*t)
}

// CeilPowerOfTwo returns the smallest power of two >= n, with n <= 0 -> 1.
func CeilPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

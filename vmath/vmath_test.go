package vmath

import (
	"math"
	"testing"
)

func TestSafeDiv(t *testing.T) {
	tests := []struct {
		name     string
		num, den float64
		want     float64
	}{
		{"Normal division", 10.0, 2.0, 5.0},
		{"Division by one", 7.5, 1.0, 7.5},
		{"Small divisor", 1.0, 1e-300, 1e300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeDiv(tt.num, tt.den)
			if got != tt.want {
				t.Errorf("SafeDiv(%v, %v) = %v, want %v", tt.num, tt.den, got, tt.want)
			}
		})
	}
}

func TestSafeDivSubnormalDivisorOverflows(t *testing.T) {
	// A divisor below the clamp floor still divides as itself once clamped;
	// the quotient exceeds MaxFloat64 and must saturate to +Inf, never NaN.
	got := SafeDiv(1.0, 1e-320)
	if !math.IsInf(got, 1) {
		t.Errorf("SafeDiv(1, 1e-320) = %v, want +Inf", got)
	}
}

func TestSafeDivZeroIsFinite(t *testing.T) {
	// Zero divisor must not produce NaN; the clamp yields a huge but
	// well-defined value.
	got := SafeDiv(0.0, 0.0)
	if math.IsNaN(got) {
		t.Errorf("SafeDiv(0, 0) = NaN, want finite")
	}
}

func TestFastFloorInt(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want int
	}{
		{"Positive fraction", 3.7, 3},
		{"Exact integer", 4.0, 4},
		{"Negative fraction", -0.5, -1},
		{"Negative integer", -2.0, -2},
		{"Negative near zero", -0.0001, -1},
		{"Zero", 0.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FastFloorInt(tt.x); got != tt.want {
				t.Errorf("FastFloorInt(%v) = %d, want %d", tt.x, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		x, lo, hi float64
		want      float64
	}{
		{"Within range", 5.0, 0.0, 10.0, 5.0},
		{"Below range", -1.0, 0.0, 10.0, 0.0},
		{"Above range", 11.0, 0.0, 10.0, 10.0},
		{"At lower bound", 0.0, 0.0, 10.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.x, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.x, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestSmoothStep(t *testing.T) {
	if got := SmoothStep(0, 1, 0); got != 0 {
		t.Errorf("SmoothStep at lower edge = %v, want 0", got)
	}
	if got := SmoothStep(0, 1, 1); got != 1 {
		t.Errorf("SmoothStep at upper edge = %v, want 1", got)
	}
	if got := SmoothStep(0, 1, 0.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("SmoothStep at midpoint = %v, want 0.5", got)
	}
	// Monotonic within the edges
	prev := -1.0
	for x := 0.0; x <= 1.0; x += 0.05 {
		v := SmoothStep(0, 1, x)
		if v < prev {
			t.Fatalf("SmoothStep not monotonic at %v", x)
		}
		prev = v
	}
}

func TestCeilPowerOfTwo(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{5, 8},
		{512, 512},
		{513, 1024},
	}

	for _, tt := range tests {
		if got := CeilPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("CeilPowerOfTwo(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 256, 1024} {
		if !IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = false, want true", n)
		}
	}
	for _, n := range []int{0, -2, 3, 12, 1000} {
		if IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = true, want false", n)
		}
	}
}

func TestRunningAverage(t *testing.T) {
	r := NewRunningAverage(4)

	if got := r.Average(); got != 0 {
		t.Errorf("empty average = %v, want 0", got)
	}

	r.Update(2)
	r.Update(4)
	if got := r.Average(); got != 3 {
		t.Errorf("average of 2,4 = %v, want 3", got)
	}

	r.Update(6)
	r.Update(8)
	// Window full: 2,4,6,8
	if got := r.Average(); got != 5 {
		t.Errorf("average of 2,4,6,8 = %v, want 5", got)
	}

	// Oldest (2) falls out: 4,6,8,10
	r.Update(10)
	if got := r.Average(); got != 7 {
		t.Errorf("average after wrap = %v, want 7", got)
	}
}

func TestRunningAverageFill(t *testing.T) {
	r := NewRunningAverage(8)
	r.Fill(3.5)
	if got := r.Average(); got != 3.5 {
		t.Errorf("filled average = %v, want 3.5", got)
	}
	r.Update(3.5)
	if got := r.Average(); got != 3.5 {
		t.Errorf("average after same-value update = %v, want 3.5", got)
	}
}

package activations

import (
	"math"
	"testing"
)

// TestSigmoidActivate tests sigmoid values at known points.
func TestSigmoidActivate(t *testing.T) {
	s := Sigmoid{}

	if got := s.Activate(0); got != 0.5 {
		t.Errorf("Activate(0) = %v, want 0.5", got)
	}
	if got := s.Activate(100); got < 0.999 {
		t.Errorf("Activate(100) = %v, want near 1", got)
	}
	if got := s.Activate(-100); got > 0.001 {
		t.Errorf("Activate(-100) = %v, want near 0", got)
	}

	// sigmoid(-x) = 1 - sigmoid(x)
	for _, x := range []float64{0.1, 0.5, 1, 2.5, 10} {
		sum := s.Activate(x) + s.Activate(-x)
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("Activate(%v) + Activate(-%v) = %v, want 1", x, x, sum)
		}
	}
}

// TestSigmoidDerivativeRange tests that the derivative stays in [0, 0.25]
// and is maximized at x = 0.
func TestSigmoidDerivativeRange(t *testing.T) {
	s := Sigmoid{}

	for _, x := range []float64{-50, -5, -1, -0.1, 0, 0.1, 1, 5, 50} {
		d := s.Derivative(x)
		if d < 0 || d > 0.25 {
			t.Errorf("Derivative(%v) = %v, want in [0, 0.25]", x, d)
		}
	}
	if got := s.Derivative(0); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("Derivative(0) = %v, want 0.25", got)
	}
}

// TestDerivativeFromOutput tests that the cached-output form agrees with the
// direct derivative.
func TestDerivativeFromOutput(t *testing.T) {
	s := Sigmoid{}

	for _, x := range []float64{-3, -1, 0, 0.5, 2, 7} {
		want := s.Derivative(x)
		got := s.DerivativeFromOutput(s.Activate(x))
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("DerivativeFromOutput(Activate(%v)) = %v, want %v", x, got, want)
		}
	}
}

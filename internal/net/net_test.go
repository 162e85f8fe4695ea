package net

import (
	"math"
	"testing"

	"digitnet/internal/layer"
)

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// buildFixedNet creates a 1 -> 2 -> 1 network with known parameters.
func buildFixedNet(t *testing.T) *Network {
	t.Helper()

	hidden := layer.New(2, 1)
	hidden.Neurons()[0].SetWeights([]float64{0.5})
	hidden.Neurons()[0].SetBias(0)
	hidden.Neurons()[1].SetWeights([]float64{-0.25})
	hidden.Neurons()[1].SetBias(0.1)

	output := layer.New(1, 2)
	output.Neurons()[0].SetWeights([]float64{0.3, -0.2})
	output.Neurons()[0].SetBias(0.05)

	nn, err := New(hidden, output)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return nn
}

// TestNewValidation tests the shape checks at construction.
func TestNewValidation(t *testing.T) {
	if _, err := New(); err == nil {
		t.Error("New with no layers should fail")
	}
	if _, err := New(layer.New(2, 4)); err == nil {
		t.Error("New with a 2-neuron output layer should fail")
	}
	if _, err := New(layer.New(3, 4), layer.New(1, 2)); err == nil {
		t.Error("New with mismatched layer widths should fail")
	}
	if _, err := New(layer.New(3, 4), layer.New(1, 3)); err != nil {
		t.Errorf("New with valid shapes failed: %v", err)
	}
}

// TestForwardZeroWeights tests that an all-zero single-neuron network outputs
// exactly 0.5 for any input.
func TestForwardZeroWeights(t *testing.T) {
	l := layer.New(1, 3)
	l.Neurons()[0].SetWeights([]float64{0, 0, 0})
	l.Neurons()[0].SetBias(0)
	nn, err := New(l)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, input := range [][]float64{{0, 0, 0}, {1, 1, 1}, {-3, 0.5, 42}} {
		if got := nn.Forward(input); got != 0.5 {
			t.Errorf("Forward(%v) = %v, want exactly 0.5", input, got)
		}
	}
}

// TestForwardThreadsLayers tests the forward pass against hand-computed
// values for the fixed 1 -> 2 -> 1 network.
func TestForwardThreadsLayers(t *testing.T) {
	nn := buildFixedNet(t)
	x := 0.8

	h1 := sigmoid(0.5 * x)
	h2 := sigmoid(0.1 - 0.25*x)
	want := sigmoid(0.05 + 0.3*h1 - 0.2*h2)

	if got := nn.Forward([]float64{x}); math.Abs(got-want) > 1e-15 {
		t.Errorf("Forward = %v, want %v", got, want)
	}
	if got := nn.Predict([]float64{x}); math.Abs(got-want) > 1e-15 {
		t.Errorf("Predict = %v, want %v", got, want)
	}
}

// TestBackwardDeltas tests the delta computation against hand-derived values
// and that Backward leaves every weight untouched.
func TestBackwardDeltas(t *testing.T) {
	nn := buildFixedNet(t)
	x, target := 0.8, 1.0

	out := nn.Forward([]float64{x})
	nn.Backward(target)

	h1 := sigmoid(0.5 * x)
	h2 := sigmoid(0.1 - 0.25*x)
	wantOut := (target - out) * out * (1 - out)
	wantH1 := 0.3 * wantOut * h1 * (1 - h1)
	wantH2 := -0.2 * wantOut * h2 * (1 - h2)

	hidden := nn.Layers()[0].Neurons()
	outputNeuron := nn.Layers()[1].Neurons()[0]

	if got := outputNeuron.Delta(); math.Abs(got-wantOut) > 1e-15 {
		t.Errorf("output delta = %v, want %v", got, wantOut)
	}
	if got := hidden[0].Delta(); math.Abs(got-wantH1) > 1e-15 {
		t.Errorf("hidden[0] delta = %v, want %v", got, wantH1)
	}
	if got := hidden[1].Delta(); math.Abs(got-wantH2) > 1e-15 {
		t.Errorf("hidden[1] delta = %v, want %v", got, wantH2)
	}

	// Two-phase contract: the backward pass must not change any weight.
	if w := hidden[0].Weights()[0]; w != 0.5 {
		t.Errorf("hidden[0] weight changed during Backward: %v", w)
	}
	if w := outputNeuron.Weights()[0]; w != 0.3 {
		t.Errorf("output weight changed during Backward: %v", w)
	}
}

// TestUpdateWeights tests the delta-rule update: the first layer trains
// against the raw input, deeper layers against the cached hidden outputs.
func TestUpdateWeights(t *testing.T) {
	nn := buildFixedNet(t)
	x, target, lr := 0.8, 1.0, 0.5

	nn.Forward([]float64{x})
	nn.Backward(target)

	hidden := nn.Layers()[0].Neurons()
	outputNeuron := nn.Layers()[1].Neurons()[0]
	h1, h2 := hidden[0].Output(), hidden[1].Output()
	dH1, dOut := hidden[0].Delta(), outputNeuron.Delta()

	nn.SetLearningRate(lr)
	nn.UpdateWeights([]float64{x})

	if got, want := hidden[0].Weights()[0], 0.5+lr*dH1*x; math.Abs(got-want) > 1e-15 {
		t.Errorf("hidden[0] weight = %v, want %v", got, want)
	}
	if got, want := hidden[0].Bias(), lr*dH1; math.Abs(got-want) > 1e-15 {
		t.Errorf("hidden[0] bias = %v, want %v", got, want)
	}
	if got, want := outputNeuron.Weights()[0], 0.3+lr*dOut*h1; math.Abs(got-want) > 1e-15 {
		t.Errorf("output weight[0] = %v, want %v", got, want)
	}
	if got, want := outputNeuron.Weights()[1], -0.2+lr*dOut*h2; math.Abs(got-want) > 1e-15 {
		t.Errorf("output weight[1] = %v, want %v", got, want)
	}
	if got, want := outputNeuron.Bias(), 0.05+lr*dOut; math.Abs(got-want) > 1e-15 {
		t.Errorf("output bias = %v, want %v", got, want)
	}
}

// Package opt provides the weight update rule used during training.
package opt

import "gonum.org/v1/gonum/floats"

// Optimizer applies one per-neuron update given the neuron's delta and the
// inputs it saw during the forward pass.
type Optimizer interface {
	// Step updates weights in place and returns the updated bias.
	Step(weights []float64, bias, delta float64, inputs []float64) float64
}

// SGD is the online delta-rule update: w += lr*delta*x, bias += lr*delta.
type SGD struct {
	LearningRate float64
}

// Step updates weights in place and returns the updated bias.
func (s SGD) Step(weights []float64, bias, delta float64, inputs []float64) float64 {
	floats.AddScaled(weights, s.LearningRate*delta, inputs)
	return bias + s.LearningRate*delta
}

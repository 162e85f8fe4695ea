// Package activations provides the activation functions used by the network.
package activations

import "math"

// Activation is an activation function with derivative.
type Activation interface {
	// Activate computes f(x)
	Activate(x float64) float64

	// Derivative computes f'(x)
	Derivative(x float64) float64
}

// Sigmoid is the logistic activation applied by every neuron in the network.
type Sigmoid struct{}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Activate computes 1/(1+e^-x).
func (s Sigmoid) Activate(x float64) float64 {
	return sigmoid(x)
}

// Derivative computes sigmoid(x) * (1 - sigmoid(x)).
func (s Sigmoid) Derivative(x float64) float64 {
	sigma := sigmoid(x)
	return sigma * (1 - sigma)
}

// DerivativeFromOutput computes the sigmoid derivative given y = sigmoid(x).
// The backward pass uses this form to reuse the activation cached during the
// forward pass instead of recomputing the exponential.
func (s Sigmoid) DerivativeFromOutput(y float64) float64 {
	return y * (1 - y)
}

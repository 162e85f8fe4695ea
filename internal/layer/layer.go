// Package layer provides the neuron and fully connected layer types.
package layer

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"digitnet/internal/activations"
)

// weightInitMax bounds the uniform random weight initialization.
const weightInitMax = 0.01

// Neuron is a single sigmoid unit. Output and Delta cache the results of the
// most recent forward/backward pass over the same input; they are overwritten
// on every pass and are only meaningful immediately afterwards. A Neuron is
// not safe for concurrent use.
type Neuron struct {
	weights []float64
	bias    float64
	output  float64
	delta   float64

	act activations.Sigmoid
}

// NewNeuron creates a neuron reading inputWidth inputs, with weights drawn
// uniformly from [0, weightInitMax) and bias zero.
func NewNeuron(inputWidth int) *Neuron {
	weights := make([]float64, inputWidth)
	for i := range weights {
		weights[i] = rand.Float64() * weightInitMax
	}
	return &Neuron{weights: weights}
}

// NetInput returns bias + Σ weights[i]*inputs[i]. len(inputs) must equal the
// neuron's input width; a mismatch is a programming error and panics.
func (n *Neuron) NetInput(inputs []float64) float64 {
	return n.bias + floats.Dot(n.weights, inputs)
}

// Activate computes the sigmoid of the net input, caching and returning the
// result.
func (n *Neuron) Activate(inputs []float64) float64 {
	n.output = n.act.Activate(n.NetInput(inputs))
	return n.output
}

// SigmoidDerivative returns output*(1-output) using the cached output. It is
// only valid after Activate has run in the current pass; on a fresh neuron
// the cached output is zero and the derivative degenerates to zero.
func (n *Neuron) SigmoidDerivative() float64 {
	return n.act.DerivativeFromOutput(n.output)
}

// Weights returns the neuron's weight slice (not a copy).
func (n *Neuron) Weights() []float64 {
	return n.weights
}

// SetWeights replaces the neuron's weight vector.
func (n *Neuron) SetWeights(weights []float64) {
	n.weights = weights
}

// Bias returns the neuron's bias.
func (n *Neuron) Bias() float64 {
	return n.bias
}

// SetBias updates the neuron's bias.
func (n *Neuron) SetBias(bias float64) {
	n.bias = bias
}

// Output returns the activation cached by the most recent forward pass.
func (n *Neuron) Output() float64 {
	return n.output
}

// Delta returns the error signal cached by the most recent backward pass.
func (n *Neuron) Delta() float64 {
	return n.delta
}

// SetDelta updates the neuron's error signal.
func (n *Neuron) SetDelta(delta float64) {
	n.delta = delta
}

// Layer is an ordered collection of neurons sharing the same input width.
type Layer struct {
	neurons    []*Neuron
	inputWidth int
}

// New creates a layer of neuronCount neurons, each reading inputWidth inputs.
func New(neuronCount, inputWidth int) *Layer {
	neurons := make([]*Neuron, neuronCount)
	for i := range neurons {
		neurons[i] = NewNeuron(inputWidth)
	}
	return &Layer{neurons: neurons, inputWidth: inputWidth}
}

// Forward activates every neuron on the same input vector and returns their
// outputs in order. The argument is not mutated; each neuron's cached output
// is.
func (l *Layer) Forward(inputs []float64) []float64 {
	outputs := make([]float64, len(l.neurons))
	for i, n := range l.neurons {
		outputs[i] = n.Activate(inputs)
	}
	return outputs
}

// Neurons returns the layer's neurons in order.
func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}

// Size returns the number of neurons in the layer.
func (l *Layer) Size() int {
	return len(l.neurons)
}

// InputWidth returns the input width shared by the layer's neurons.
func (l *Layer) InputWidth() int {
	return l.inputWidth
}

// Outputs returns the activations cached by the most recent forward pass, in
// neuron order.
func (l *Layer) Outputs() []float64 {
	outputs := make([]float64, len(l.neurons))
	for i, n := range l.neurons {
		outputs[i] = n.Output()
	}
	return outputs
}

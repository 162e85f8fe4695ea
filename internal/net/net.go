// Package net provides the network core: forward and backward propagation,
// the convergence-gated training loop, evaluation and weight persistence.
package net

import (
	"github.com/pkg/errors"

	"digitnet/internal/layer"
	"digitnet/internal/opt"
)

// Network is an ordered sequence of fully connected sigmoid layers ending in
// a single output neuron. Every method mutates cached per-neuron state, so a
// Network must not be shared across goroutines; training in particular owns
// the network for its entire duration.
type Network struct {
	layers []*layer.Layer
	opt    opt.SGD
}

// New creates a network over the given layers. The final layer must have
// exactly one neuron, since the network produces a single binary decision,
// and each layer's input width must match the previous layer's neuron count.
func New(layers ...*layer.Layer) (*Network, error) {
	if len(layers) == 0 {
		return nil, errors.Errorf("net: at least one layer is required")
	}
	if last := layers[len(layers)-1]; last.Size() != 1 {
		return nil, errors.Errorf("net: output layer must have exactly 1 neuron, got %d", last.Size())
	}
	for i := 1; i < len(layers); i++ {
		if layers[i].InputWidth() != layers[i-1].Size() {
			return nil, errors.Errorf("net: layer %d expects %d inputs but layer %d has %d neurons",
				i, layers[i].InputWidth(), i-1, layers[i-1].Size())
		}
	}
	return &Network{layers: layers}, nil
}

// SetLearningRate sets the rate UpdateWeights applies. Train overrides it
// with the rate from its config.
func (n *Network) SetLearningRate(lr float64) {
	n.opt = opt.SGD{LearningRate: lr}
}

// Layers returns the network's layers in order.
func (n *Network) Layers() []*layer.Layer {
	return n.layers
}

// InputWidth returns the feature width the network was constructed for.
func (n *Network) InputWidth() int {
	return n.layers[0].InputWidth()
}

// Forward threads the input vector through every layer in order and returns
// the scalar output of the final layer's sole neuron.
func (n *Network) Forward(input []float64) float64 {
	curr := input
	for _, l := range n.layers {
		curr = l.Forward(curr)
	}
	return curr[0]
}

// Predict is the single-example inference entry point.
func (n *Network) Predict(input []float64) float64 {
	return n.Forward(input)
}

// Backward computes every neuron's delta from the most recent forward pass.
// The output delta is (target-output)*sigma'; hidden deltas backpropagate the
// downstream layer's deltas through its pre-update weights. No weight changes
// here: the full delta pass completes before UpdateWeights touches anything,
// which is what keeps the gradient correct.
func (n *Network) Backward(target float64) {
	out := n.layers[len(n.layers)-1].Neurons()[0]
	out.SetDelta((target - out.Output()) * out.SigmoidDerivative())

	for i := len(n.layers) - 2; i >= 0; i-- {
		next := n.layers[i+1].Neurons()
		for j, neuron := range n.layers[i].Neurons() {
			var sum float64
			for _, down := range next {
				sum += down.Weights()[j] * down.Delta()
			}
			neuron.SetDelta(sum * neuron.SigmoidDerivative())
		}
	}
}

// UpdateWeights applies the delta-rule update to every neuron, in forward
// layer order. The first layer sees the raw network input; each subsequent
// layer sees the previous layer's outputs cached by the forward pass.
func (n *Network) UpdateWeights(input []float64) {
	inputs := input
	for _, l := range n.layers {
		for _, neuron := range l.Neurons() {
			neuron.SetBias(n.opt.Step(neuron.Weights(), neuron.Bias(), neuron.Delta(), inputs))
		}
		inputs = l.Outputs()
	}
}

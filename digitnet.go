// Package digitnet re-exports the core types and helpers for building,
// training and persisting the binary digit classifier.
package digitnet

import (
	"digitnet/internal/dataset"
	"digitnet/internal/layer"
	"digitnet/internal/net"
)

// Re-export common types for easier access
type (
	Network     = net.Network
	Layer       = layer.Layer
	Neuron      = layer.Neuron
	TrainConfig = net.TrainConfig
	Callback    = net.Callback
	EpochLogger = net.EpochLogger
	Evaluation  = net.Evaluation
	Prediction  = net.Prediction
)

// FeatureWidth is the fixed input width the dataset files carry.
const FeatureWidth = dataset.FeatureWidth

// ErrMalformed marks dataset rows whose fields fail to parse as numbers.
var ErrMalformed = dataset.ErrMalformed

// NewNetwork creates a network over the given layers.
func NewNetwork(layers ...*Layer) (*Network, error) {
	return net.New(layers...)
}

// NewLayer creates a layer of neuronCount neurons reading inputWidth inputs.
func NewLayer(neuronCount, inputWidth int) *Layer {
	return layer.New(neuronCount, inputWidth)
}

// NewEpochLogger creates the per-epoch MSE log callback.
func NewEpochLogger(path string) *EpochLogger {
	return &EpochLogger{Path: path}
}

// Dataset helpers

func LoadFeatures(path string, startLine, maxLines int) ([][]float64, error) {
	return dataset.LoadFeatures(path, startLine, maxLines)
}

func LoadTargets(path string, startLine, maxLines int) ([]float64, error) {
	return dataset.LoadTargets(path, startLine, maxLines)
}

func ParseRow(line string) ([]float64, error) {
	return dataset.ParseRow(line)
}

func NormalizeRow(row []float64) []float64 {
	return dataset.NormalizeRow(row)
}

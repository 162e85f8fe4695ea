package net

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// topologyPrefix starts the descriptor line that guards weight files against
// being restored into a network of a different shape.
const topologyPrefix = "# topology: "

// maxWeightLine bounds a single persisted neuron line. 400 weights at full
// float64 precision stay well under this.
const maxWeightLine = 1 << 20

// topology renders the network shape as inputWidth:neuronCount pairs in layer
// order, e.g. "400:1" or "400:16,16:1".
func (n *Network) topology() string {
	parts := make([]string, len(n.layers))
	for i, l := range n.layers {
		parts[i] = fmt.Sprintf("%d:%d", l.InputWidth(), l.Size())
	}
	return strings.Join(parts, ",")
}

// SaveWeights writes the network parameters to path: a topology descriptor
// line, then one line per neuron in layer-major, neuron-minor order holding
// the comma-joined weights followed by the bias. Values are formatted so that
// LoadWeights restores them bit-identically.
func (n *Network) SaveWeights(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create weights file %s", path)
	}

	w := bufio.NewWriter(file)
	w.WriteString(topologyPrefix + n.topology() + "\n")
	for _, l := range n.layers {
		for _, neuron := range l.Neurons() {
			fields := make([]string, 0, len(neuron.Weights())+1)
			for _, weight := range neuron.Weights() {
				fields = append(fields, strconv.FormatFloat(weight, 'g', -1, 64))
			}
			fields = append(fields, strconv.FormatFloat(neuron.Bias(), 'g', -1, 64))
			w.WriteString(strings.Join(fields, ",") + "\n")
		}
	}

	if err := w.Flush(); err != nil {
		file.Close()
		return errors.Wrapf(err, "write weights file %s", path)
	}
	return errors.Wrapf(file.Close(), "close weights file %s", path)
}

// LoadWeights restores network parameters saved by SaveWeights. The file's
// topology descriptor must match the constructed network exactly; nothing is
// modified until the whole file has been parsed and validated, so a malformed
// or mismatched file never leaves the network partially restored.
func (n *Network) LoadWeights(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open weights file %s", path)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxWeightLine)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return errors.Wrapf(err, "read weights file %s", path)
		}
		return errors.Errorf("weights file %s is empty", path)
	}
	header := scanner.Text()
	if !strings.HasPrefix(header, topologyPrefix) {
		return errors.Errorf("weights file %s has no topology descriptor", path)
	}
	if got := strings.TrimPrefix(header, topologyPrefix); got != n.topology() {
		return errors.Errorf("weights file %s topology %q does not match network topology %q", path, got, n.topology())
	}

	type neuronParams struct {
		weights []float64
		bias    float64
	}
	var parsed []neuronParams
	lineNo := 1
	for _, l := range n.layers {
		for range l.Neurons() {
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return errors.Wrapf(err, "read weights file %s", path)
				}
				return errors.Errorf("weights file %s ends early at line %d", path, lineNo+1)
			}
			lineNo++
			fields := strings.Split(scanner.Text(), ",")
			if len(fields) != l.InputWidth()+1 {
				return errors.Errorf("weights file %s line %d has %d values, want %d",
					path, lineNo, len(fields), l.InputWidth()+1)
			}
			values := make([]float64, len(fields))
			for i, field := range fields {
				values[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
				if err != nil {
					return errors.Wrapf(err, "weights file %s line %d value %d", path, lineNo, i+1)
				}
			}
			parsed = append(parsed, neuronParams{
				weights: values[:len(values)-1],
				bias:    values[len(values)-1],
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "read weights file %s", path)
	}

	i := 0
	for _, l := range n.layers {
		for _, neuron := range l.Neurons() {
			neuron.SetWeights(parsed[i].weights)
			neuron.SetBias(parsed[i].bias)
			i++
		}
	}
	return nil
}

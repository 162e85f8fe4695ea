package net

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Prediction is one evaluated test example.
type Prediction struct {
	// Index is the 1-based position of the example in the test set.
	Index int

	// Expected is the target truncated to an integer class.
	Expected int

	// Output is the raw network output.
	Output float64

	// Predicted is Output thresholded at 0.5.
	Predicted int

	// Correct reports Predicted == Expected.
	Correct bool
}

// Evaluation summarizes a test run.
type Evaluation struct {
	Predictions []Prediction

	Count int
	Wrong int

	// Accuracy is the percentage of correct predictions; NaN when Count is 0.
	Accuracy float64

	// RMSE is the root mean squared error of the continuous outputs against
	// the targets; NaN when Count is 0. It is nonzero even at 100% accuracy,
	// since outputs are continuous.
	RMSE float64
}

// Evaluate forward-passes every example, thresholds the scalar output at 0.5
// and compares it against the target truncated to an integer. Targets are
// contractually 0.0 or 1.0; any other value makes the comparison undefined.
// Zero examples yield Count 0 and NaN Accuracy/RMSE rather than an error.
// The network's weights are not mutated, only the per-neuron forward caches.
func (n *Network) Evaluate(inputs [][]float64, targets []float64) (Evaluation, error) {
	if len(inputs) != len(targets) {
		return Evaluation{}, errors.Errorf("net: %d test inputs but %d targets", len(inputs), len(targets))
	}
	if len(inputs) == 0 {
		return Evaluation{Accuracy: math.NaN(), RMSE: math.NaN()}, nil
	}

	ev := Evaluation{
		Predictions: make([]Prediction, 0, len(inputs)),
		Count:       len(inputs),
	}
	squared := make([]float64, len(inputs))
	correct := 0

	for i, input := range inputs {
		output := n.Forward(input)
		predicted := 0
		if output >= 0.5 {
			predicted = 1
		}
		expected := int(targets[i])
		ok := predicted == expected
		if ok {
			correct++
		}
		diff := targets[i] - output
		squared[i] = diff * diff

		ev.Predictions = append(ev.Predictions, Prediction{
			Index:     i + 1,
			Expected:  expected,
			Output:    output,
			Predicted: predicted,
			Correct:   ok,
		})
	}

	ev.Wrong = ev.Count - correct
	ev.Accuracy = float64(correct) / float64(ev.Count) * 100
	ev.RMSE = math.Sqrt(stat.Mean(squared, nil))
	return ev, nil
}

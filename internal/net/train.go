package net

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"digitnet/internal/loss"
)

// divergenceWindow is the epoch distance the divergence guard looks back
// across when deciding whether training has stopped improving.
const divergenceWindow = 10

// TrainConfig carries the knobs for one training run.
type TrainConfig struct {
	// MSEThreshold stops training once the epoch MSE drops below it.
	MSEThreshold float64

	// LearningRate scales every weight and bias update.
	LearningRate float64

	// MaxEpochs bounds the run. Zero means no upper bound, leaving the
	// convergence and divergence rules as the only stopping conditions;
	// a pathological configuration can then run indefinitely.
	MaxEpochs int

	// CheckpointPath, when non-empty, is where the weights are persisted
	// once after training stops through any of the stopping rules. Nothing
	// is written when training aborts with an error.
	CheckpointPath string

	// Callbacks observe the training run (epoch logging and the like).
	Callbacks []Callback
}

// Train runs online gradient descent: each example drives one
// forward, backward, update cycle, one epoch is a full sweep over the
// examples, and the epoch MSE is the mean of the per-example half squared
// errors. After every epoch the stopping rules are checked in order:
// convergence (MSE below cfg.MSEThreshold), the divergence guard (every 10th
// epoch, stop when the MSE has not improved on the value from 10 epochs
// earlier), and the cfg.MaxEpochs cap. The MSE of the stopping epoch is
// returned.
//
// Inputs and targets must have equal length; a mismatch aborts before the
// first epoch. Callback failures abort the run mid-loop, with every callback
// still released through OnTrainEnd.
func (n *Network) Train(inputs [][]float64, targets []float64, cfg TrainConfig) (finalMSE float64, err error) {
	if len(inputs) != len(targets) {
		return 0, errors.Errorf("net: %d training inputs but %d targets", len(inputs), len(targets))
	}
	if len(inputs) == 0 {
		return 0, errors.Errorf("net: no training examples")
	}
	n.SetLearningRate(cfg.LearningRate)

	started := make([]Callback, 0, len(cfg.Callbacks))
	defer func() {
		for _, cb := range started {
			if cerr := cb.OnTrainEnd(n); cerr != nil && err == nil {
				err = errors.Wrapf(cerr, "train end callback")
			}
		}
	}()
	for _, cb := range cfg.Callbacks {
		if err = cb.OnTrainBegin(n); err != nil {
			return 0, errors.Wrapf(err, "train begin callback")
		}
		started = append(started, cb)
	}

	sq := loss.HalfSquaredError{}
	perExample := make([]float64, len(inputs))
	var history []float64

	for epoch := 1; ; epoch++ {
		for i, input := range inputs {
			output := n.Forward(input)
			perExample[i] = sq.Forward(output, targets[i])
			n.Backward(targets[i])
			n.UpdateWeights(input)
		}
		mse := stat.Mean(perExample, nil)
		history = append(history, mse)

		for _, cb := range started {
			if err = cb.OnEpochEnd(epoch, mse, n); err != nil {
				return 0, errors.Wrapf(err, "epoch %d callback", epoch)
			}
		}

		if mse < cfg.MSEThreshold {
			finalMSE = mse
			break
		}
		if epoch >= divergenceWindow && epoch%divergenceWindow == 0 {
			if previous := history[len(history)-divergenceWindow]; mse >= previous {
				finalMSE = mse
				break
			}
		}
		if cfg.MaxEpochs > 0 && epoch >= cfg.MaxEpochs {
			finalMSE = mse
			break
		}
	}

	if cfg.CheckpointPath != "" {
		if err = n.SaveWeights(cfg.CheckpointPath); err != nil {
			return 0, errors.Wrapf(err, "checkpoint after training")
		}
	}
	return finalMSE, nil
}

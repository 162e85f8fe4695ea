// Package loss provides the error measure used during training.
package loss

// Loss is a per-example loss over a scalar prediction.
type Loss interface {
	// Forward computes the loss between the predicted and true values.
	Forward(pred, target float64) float64
}

// HalfSquaredError is 0.5*(target-pred)^2. The training loop averages it
// over an epoch to obtain the epoch MSE that drives the stopping rules.
type HalfSquaredError struct{}

// Forward computes 0.5*(target-pred)^2.
func (HalfSquaredError) Forward(pred, target float64) float64 {
	diff := target - pred
	return 0.5 * diff * diff
}

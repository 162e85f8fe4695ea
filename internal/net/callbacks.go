package net

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Callback observes a training run. Implementations that acquire resources in
// OnTrainBegin get them released through OnTrainEnd on every exit path,
// including aborts mid-loop.
type Callback interface {
	OnTrainBegin(n *Network) error
	OnEpochEnd(epoch int, mse float64, n *Network) error
	OnTrainEnd(n *Network) error
}

// BaseCallback provides default no-op implementations for Callback.
type BaseCallback struct{}

func (BaseCallback) OnTrainBegin(n *Network) error                       { return nil }
func (BaseCallback) OnEpochEnd(epoch int, mse float64, n *Network) error { return nil }
func (BaseCallback) OnTrainEnd(n *Network) error                         { return nil }

// DefaultLogPrecision is the decimal precision the epoch log is written with.
const DefaultLogPrecision = 100

// EpochLogger appends one MSE value per epoch to a log file. The file is
// truncated when training begins and each value is written with fixed
// precision and a decimal comma.
type EpochLogger struct {
	Path string

	// Precision is the number of decimal digits per value; zero or negative
	// means DefaultLogPrecision.
	Precision int

	file *os.File
	w    *bufio.Writer
}

// OnTrainBegin opens (and truncates) the log file.
func (l *EpochLogger) OnTrainBegin(n *Network) error {
	file, err := os.OpenFile(l.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(err, "open epoch log %s", l.Path)
	}
	l.file = file
	l.w = bufio.NewWriter(file)
	return nil
}

// OnEpochEnd appends the epoch MSE as a single decimal-comma value.
func (l *EpochLogger) OnEpochEnd(epoch int, mse float64, n *Network) error {
	if l.w == nil {
		return nil
	}
	precision := l.Precision
	if precision <= 0 {
		precision = DefaultLogPrecision
	}
	value := strings.Replace(strconv.FormatFloat(mse, 'f', precision, 64), ".", ",", 1)
	if _, err := l.w.WriteString(value + "\n"); err != nil {
		return errors.Wrapf(err, "write epoch log %s", l.Path)
	}
	return nil
}

// OnTrainEnd flushes and closes the log file.
func (l *EpochLogger) OnTrainEnd(n *Network) error {
	if l.file == nil {
		return nil
	}
	flushErr := l.w.Flush()
	closeErr := l.file.Close()
	l.file, l.w = nil, nil
	if flushErr != nil {
		return errors.Wrapf(flushErr, "flush epoch log %s", l.Path)
	}
	return errors.Wrapf(closeErr, "close epoch log %s", l.Path)
}

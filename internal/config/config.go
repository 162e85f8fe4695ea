// Package config loads the run configuration for the digitnet CLI.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config captures the runtime knobs for a training or testing run.
type Config struct {
	FeaturesPath string `yaml:"features_path"`
	TargetsPath  string `yaml:"targets_path"`
	WeightsPath  string `yaml:"weights_path"`
	EpochLogPath string `yaml:"epoch_log_path"`

	// TrainStart/TestStart are 1-indexed line numbers into the feature and
	// target files; the counts bound how many rows each window reads.
	TrainStart int `yaml:"train_start"`
	TrainCount int `yaml:"train_count"`
	TestStart  int `yaml:"test_start"`
	TestCount  int `yaml:"test_count"`

	// HiddenSizes lists the hidden layer neuron counts, input to output.
	// Empty means a single-layer network straight to the output neuron.
	HiddenSizes []int `yaml:"hidden_sizes"`

	MSEThreshold float64 `yaml:"mse_threshold"`
	LearningRate float64 `yaml:"learning_rate"`

	// MaxEpochs bounds training; 0 keeps the original unbounded behavior.
	MaxEpochs int `yaml:"max_epochs"`
}

// Overrides captures CLI-supplied values applied on top of a loaded Config.
type Overrides struct {
	FeaturesPath string
	TargetsPath  string
	WeightsPath  string
	EpochLogPath string
	MSEThreshold float64
	LearningRate float64
	MaxEpochs    int
}

// Default returns the configuration matching the original training exercise:
// 500 training rows, 300 test rows, a single 400-input output neuron.
func Default() *Config {
	return &Config{
		FeaturesPath: "dataset.csv",
		TargetsPath:  "targets.csv",
		WeightsPath:  "weights.csv",
		EpochLogPath: "mse_values.txt",
		TrainStart:   1,
		TrainCount:   500,
		TestStart:    501,
		TestCount:    300,
		MSEThreshold: 0.00001,
		LearningRate: 0.1,
	}
}

// Load reads a YAML config from path on top of the defaults and validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.FeaturesPath != "" {
		c.FeaturesPath = o.FeaturesPath
	}
	if o.TargetsPath != "" {
		c.TargetsPath = o.TargetsPath
	}
	if o.WeightsPath != "" {
		c.WeightsPath = o.WeightsPath
	}
	if o.EpochLogPath != "" {
		c.EpochLogPath = o.EpochLogPath
	}
	if o.MSEThreshold > 0 {
		c.MSEThreshold = o.MSEThreshold
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.MaxEpochs > 0 {
		c.MaxEpochs = o.MaxEpochs
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.FeaturesPath == "" || c.TargetsPath == "" {
		return errors.New("features_path and targets_path must be set")
	}
	if c.WeightsPath == "" {
		return errors.New("weights_path must be set")
	}
	if c.EpochLogPath == "" {
		return errors.New("epoch_log_path must be set")
	}
	if c.TrainStart < 1 || c.TestStart < 1 {
		return errors.Errorf("line windows are 1-indexed (train_start %d, test_start %d)", c.TrainStart, c.TestStart)
	}
	if c.TrainCount <= 0 {
		return errors.Errorf("train_count must be > 0 (got %d)", c.TrainCount)
	}
	if c.TestCount <= 0 {
		return errors.Errorf("test_count must be > 0 (got %d)", c.TestCount)
	}
	for i, size := range c.HiddenSizes {
		if size <= 0 {
			return errors.Errorf("hidden_sizes[%d] must be > 0 (got %d)", i, size)
		}
	}
	if c.MSEThreshold <= 0 {
		return errors.Errorf("mse_threshold must be > 0 (got %g)", c.MSEThreshold)
	}
	if c.LearningRate <= 0 {
		return errors.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.MaxEpochs < 0 {
		return errors.Errorf("max_epochs must be >= 0 (got %d)", c.MaxEpochs)
	}
	return nil
}

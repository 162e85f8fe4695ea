// Command digitnet trains, tests and runs the binary digit classifier.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"digitnet"
	"digitnet/internal/config"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (defaults used when empty)")
	mode := flag.String("mode", "", "train, test or predict; empty shows the menu")
	features := flag.String("features", "", "Override features file path")
	targets := flag.String("targets", "", "Override targets file path")
	weights := flag.String("weights", "", "Override weights file path")
	epochLog := flag.String("epoch-log", "", "Override epoch MSE log path")
	mseThreshold := flag.Float64("mse-threshold", 0, "Override MSE convergence threshold")
	learningRate := flag.Float64("learning-rate", 0, "Override learning rate")
	maxEpochs := flag.Int("max-epochs", 0, "Override maximum epoch bound (0 = unbounded)")

	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	cfg.ApplyOverrides(config.Overrides{
		FeaturesPath: *features,
		TargetsPath:  *targets,
		WeightsPath:  *weights,
		EpochLogPath: *epochLog,
		MSEThreshold: *mseThreshold,
		LearningRate: *learningRate,
		MaxEpochs:    *maxEpochs,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	stdin := bufio.NewReader(os.Stdin)
	choice := *mode
	if choice == "" {
		choice = menu(stdin)
	}

	switch choice {
	case "train":
		runTrainAndTest(cfg, true)
	case "test":
		runTrainAndTest(cfg, false)
	case "predict":
		runPredict(cfg, stdin)
	default:
		log.Fatalf("unknown mode %q", choice)
	}
}

func menu(stdin *bufio.Reader) string {
	fmt.Println("Choose an option:")
	fmt.Println("1 - Train the neural network")
	fmt.Println("2 - Test the neural network with saved weights")
	fmt.Println("3 - Classify one feature row from standard input")

	line, err := stdin.ReadString('\n')
	if err != nil {
		log.Fatalf("reading menu choice: %v", err)
	}
	switch strings.TrimSpace(line) {
	case "1":
		return "train"
	case "2":
		return "test"
	case "3":
		return "predict"
	}
	log.Fatalf("invalid option %q", strings.TrimSpace(line))
	return ""
}

func buildNetwork(cfg *config.Config) (*digitnet.Network, error) {
	width := digitnet.FeatureWidth
	var layers []*digitnet.Layer
	for _, size := range cfg.HiddenSizes {
		layers = append(layers, digitnet.NewLayer(size, width))
		width = size
	}
	layers = append(layers, digitnet.NewLayer(1, width))
	return digitnet.NewNetwork(layers...)
}

func runTrainAndTest(cfg *config.Config, shouldTrain bool) {
	nn, err := buildNetwork(cfg)
	if err != nil {
		log.Fatalf("building network: %v", err)
	}

	finalMSE := math.NaN()
	var trainingTime time.Duration
	trainedExamples := 0

	if shouldTrain {
		inputs := loadFeatures(cfg.FeaturesPath, cfg.TrainStart, cfg.TrainCount)
		labels := loadTargets(cfg.TargetsPath, cfg.TrainStart, cfg.TrainCount)
		trainedExamples = len(labels)

		start := time.Now()
		finalMSE, err = nn.Train(inputs, labels, digitnet.TrainConfig{
			MSEThreshold:   cfg.MSEThreshold,
			LearningRate:   cfg.LearningRate,
			MaxEpochs:      cfg.MaxEpochs,
			CheckpointPath: cfg.WeightsPath,
			Callbacks:      []digitnet.Callback{digitnet.NewEpochLogger(cfg.EpochLogPath)},
		})
		if err != nil {
			log.Printf("training aborted: %v", err)
			return
		}
		trainingTime = time.Since(start)
		log.Printf("weights saved to %s", cfg.WeightsPath)
	} else {
		if err := nn.LoadWeights(cfg.WeightsPath); err != nil {
			log.Fatalf("loading weights: %v", err)
		}
	}

	testInputs := loadFeatures(cfg.FeaturesPath, cfg.TestStart, cfg.TestCount)
	testLabels := loadTargets(cfg.TargetsPath, cfg.TestStart, cfg.TestCount)

	fmt.Println("=================================================")
	fmt.Println("                Testing the Network              ")
	fmt.Println("=================================================")

	ev, err := nn.Evaluate(testInputs, testLabels)
	if err != nil {
		log.Printf("testing aborted: %v", err)
		return
	}
	printEvaluation(ev)

	fmt.Println("=================================================")
	fmt.Println("               TEST PARAMETERS                   ")
	fmt.Println("=================================================")
	fmt.Printf("TRAINING - TRAINED INPUTS: %d\n", trainedExamples)
	fmt.Printf("TRAINING - MSE threshold: %g\n", cfg.MSEThreshold)
	fmt.Printf("TRAINING - Learning Rate: %g\n", cfg.LearningRate)
	fmt.Printf("Final MSE after training: %g\n", finalMSE)
	fmt.Printf("Training Time (s): %.4f\n", trainingTime.Seconds())
	fmt.Println("=================================================")
	fmt.Println("            End of Testing Metrics               ")
	fmt.Println("=================================================")
}

func printEvaluation(ev digitnet.Evaluation) {
	if ev.Count == 0 {
		fmt.Println("No test examples.")
		return
	}

	fmt.Println("Index | Expected | Predicted | Correct?")
	fmt.Println("------+----------+-----------+---------")
	for _, p := range ev.Predictions {
		answer := "No"
		if p.Correct {
			answer = "Yes"
		}
		fmt.Printf("%5d | %8d | %9f | %s\n", p.Index, p.Expected, p.Output, answer)
	}

	fmt.Println("=================================================")
	fmt.Println("                TEST  RESULTS                    ")
	fmt.Println("=================================================")
	fmt.Printf("Number of tests: %d\n", ev.Count)
	fmt.Printf("Number of wrong guesses: %d\n", ev.Wrong)
	fmt.Printf("Accuracy: %.2f%%\n", ev.Accuracy)
	fmt.Printf("RMSE: %.10f\n", ev.RMSE)
}

func runPredict(cfg *config.Config, stdin *bufio.Reader) {
	nn, err := buildNetwork(cfg)
	if err != nil {
		log.Fatalf("building network: %v", err)
	}
	if err := nn.LoadWeights(cfg.WeightsPath); err != nil {
		log.Fatalf("loading weights: %v", err)
	}

	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		log.Fatalf("reading feature row: %v", err)
	}
	row, err := digitnet.ParseRow(line)
	if err != nil {
		log.Fatalf("parsing feature row: %v", err)
	}
	if len(row) != digitnet.FeatureWidth {
		log.Fatalf("expected %d features, got %d", digitnet.FeatureWidth, len(row))
	}

	output := nn.Predict(digitnet.NormalizeRow(row))
	fmt.Println(int(math.Round(output)))
}

// loadFeatures tolerates I/O failures by continuing with whatever rows were
// read; malformed numeric fields terminate the run.
func loadFeatures(path string, start, count int) [][]float64 {
	rows, err := digitnet.LoadFeatures(path, start, count)
	if err != nil {
		if errors.Is(err, digitnet.ErrMalformed) {
			log.Fatalf("malformed data in %s: %v", path, err)
		}
		log.Printf("reading %s: %v (continuing with %d rows)", path, err, len(rows))
	}
	return rows
}

func loadTargets(path string, start, count int) []float64 {
	labels, err := digitnet.LoadTargets(path, start, count)
	if err != nil {
		if errors.Is(err, digitnet.ErrMalformed) {
			log.Fatalf("malformed data in %s: %v", path, err)
		}
		log.Printf("reading %s: %v (continuing with %d rows)", path, err, len(labels))
	}
	return labels
}

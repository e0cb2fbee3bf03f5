// bpnet-infer: runs a saved network over a dataset
//
// Usage:
//
//	bpnet-infer --weights=net.json --model=xor
//	bpnet-infer --weights=net.json --data=rows.csv --targets=false
package main

import (
	"flag"
	"fmt"
	"os"
	"slices"

	"bpnet/m"
	"bpnet/nn"
	"bpnet/utils"
)

var (
	weightsFile = flag.String("weights", "", "Weights JSON file written by bpnet-train")
	modelName   = flag.String("model", "xor", "Built-in dataset to evaluate: xor, assignment")
	dataFile    = flag.String("data", "", "CSV rows to evaluate (overrides --model)")
	hasTargets  = flag.Bool("targets", true, "Rows in --data end with the desired outputs")
	verbose     = flag.Bool("verbose", true, "Verbose output")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║                      bpnet Inference                         ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")

	if *weightsFile == "" {
		fmt.Fprintln(os.Stderr, "Error: --weights is required")
		os.Exit(1)
	}
	weights, err := utils.LoadWeights(*weightsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading weights: %v\n", err)
		os.Exit(1)
	}
	utils.Logf("Loaded %v network from iteration %d\n", weights.Architecture, weights.Iteration)

	config := &utils.Config{
		Architecture: weights.Architecture,
		LearningRate: weights.LearningRate,
		Threshold:    weights.Threshold,
	}
	if err := utils.ValidateConfig(config); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// initial weights are overwritten by LoadWeights
	net, err := nn.NewNetwork(nn.ConfigFrom(config), m.NewWeightSource(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := net.LoadWeights(weights); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lines, err := loadLines(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var correct, labelled int
	for i, line := range lines {
		prediction, err := net.Predict(line.Inputs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Row %d: %v\n", i, err)
			continue
		}
		if len(line.Targets) == 0 {
			fmt.Printf("%s -> %s\n", m.BoolsToString(line.Inputs), m.BoolsToString(prediction))
			continue
		}
		labelled++
		mark := "x"
		if slices.Equal(prediction, line.Targets) {
			correct++
			mark = "ok"
		}
		fmt.Printf("%s -> %s (want %s) %s\n",
			m.BoolsToString(line.Inputs), m.BoolsToString(prediction), m.BoolsToString(line.Targets), mark)
	}
	if labelled > 0 {
		fmt.Printf("\nAccuracy %.2f%% (%d/%d)\n", 100*float64(correct)/float64(labelled), correct, labelled)
	}
}

func loadLines(config *utils.Config) (m.Lines, error) {
	if *dataFile == "" {
		dataset, ok := m.DatasetLookup[*modelName]
		if !ok {
			return nil, fmt.Errorf("unknown dataset %q", *modelName)
		}
		return dataset(), nil
	}
	outputs := 0
	if *hasTargets {
		outputs = config.OutputCount()
	}
	return m.GetLinesFile(*dataFile, config.InputCount(), outputs)
}

// bpnet-train: trains a boolean perceptron network on a built-in or CSV dataset
//
// Usage:
//
//	bpnet-train --model=xor --iterations=50 --output=xor_output.txt
//	bpnet-train --data=table.csv --arch="6 8 8 7" --iterations=1000 --weights=net.json
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"bpnet/core/ckkswrapper"
	"bpnet/m"
	"bpnet/nn"
	"bpnet/record"
	"bpnet/utils"

	"github.com/klauspost/cpuid/v2"
)

var defaultArchitectures = map[string]string{
	"xor":        "2 2 1",
	"assignment": "6 8 8 8 8 8 8 7",
}

var (
	modelName    = flag.String("model", "xor", "Built-in dataset: xor, assignment")
	dataFile     = flag.String("data", "", "CSV dataset of true/false values (overrides --model)")
	archStr      = flag.String("arch", "", "Layer widths from input to output, e.g. \"2 2 1\"")
	iterations   = flag.Int("iterations", 50, "Number of single-sample training iterations")
	learningRate = flag.Float64("lr", 0.1, "Learning rate")
	threshold    = flag.Float64("threshold", 0.5, "Firing threshold shared by every perceptron")
	seed         = flag.Uint64("seed", 42, "Weight initialisation seed (0 seeds from the clock)")
	outputFile   = flag.String("output", "", "Append a per-iteration weight dump to this file")
	weightsFile  = flag.String("weights", "", "Save the final weights to this JSON file")
	sealed       = flag.Bool("sealed", false, "Keep a CKKS-encrypted copy of every snapshot")
	logN         = flag.Int("logN", ckkswrapper.DefaultLogN, "Ring dimension log2 for --sealed")
	ctFile       = flag.String("ciphertexts", "", "Write sealed ciphertexts to this JSON-lines file")
	runLog       = flag.String("runlog", "", "Append a summary of the run to this CSV file")
	verbose      = flag.Bool("verbose", true, "Verbose output")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	config, lines, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║                      bpnet Trainer                           ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Printf("\nConfiguration:\n")
	fmt.Printf("  Dataset:       %s (%d rows)\n", config.Name, len(lines))
	fmt.Printf("  Architecture:  %v\n", config.Architecture)
	fmt.Printf("  Iterations:    %d\n", config.Iterations)
	fmt.Printf("  Learning Rate: %.4f\n", config.LearningRate)
	fmt.Printf("  Threshold:     %.4f\n", config.Threshold)
	fmt.Printf("  Seed:          %d\n", config.Seed)
	fmt.Printf("  Sealed:        %v\n", *sealed)
	fmt.Printf("  CPU:           %s (%d cores)\n", cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores)
	fmt.Println()

	src := m.NewTimeSeededWeightSource()
	if config.Seed != 0 {
		src = m.NewWeightSource(config.Seed)
	}
	net, err := nn.NewNetwork(nn.ConfigFrom(config), src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	stats := &utils.TimingStats{}
	net.Stats = stats

	recs, closeAll, err := buildRecorders()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeAll()

	inputs, desired := lines.Split()
	start := time.Now()
	if err := net.Train(config.Iterations, inputs, desired, record.Multi(recs.all()...)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeAll()
		os.Exit(1)
	}
	end := time.Now()
	fmt.Printf("\nTraining complete! Total time: %.2fs\n", end.Sub(start).Seconds())

	if *verbose {
		utils.PrintTimingStats(stats, config.Iterations)
	}

	accuracy, err := net.Accuracy(inputs, desired)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing accuracy: %v\n", err)
	} else {
		fmt.Printf("Accuracy %.2f%%\n", accuracy)
	}

	if recs.sealed != nil && config.Iterations > 0 {
		last := config.Iterations - 1
		drift, err := recs.sealed.Drift(0, last)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading sealed snapshots: %v\n", err)
		} else {
			for i, d := range drift {
				fmt.Printf("Layer %d weight drift over %d iterations: %.4f\n", i+1, last, maxAbs(d))
			}
		}
	}

	if *weightsFile != "" {
		fmt.Printf("\nSaving weights to %s...\n", *weightsFile)
		if err := utils.SaveWeights(*weightsFile, finalWeights(net, config.Iterations)); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Done!")
	}

	if *runLog != "" {
		err := record.AppendRun(*runLog, record.Run{
			Name:         config.Name,
			Architecture: config.Architecture,
			Iterations:   config.Iterations,
			LearningRate: config.LearningRate,
			Threshold:    config.Threshold,
			Seed:         config.Seed,
			End:          end,
			Duration:     end.Sub(start),
			Samples:      stats.Samples,
			Skipped:      stats.Skipped,
			Accuracy:     accuracy,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing run log: %v\n", err)
			os.Exit(1)
		}
	}
}

func loadConfig() (*utils.Config, m.Lines, error) {
	config := &utils.Config{
		Name:         *modelName,
		DataFile:     *dataFile,
		Iterations:   *iterations,
		LearningRate: *learningRate,
		Threshold:    *threshold,
		Seed:         *seed,
	}

	arch := *archStr
	if arch == "" && config.DataFile == "" {
		arch = defaultArchitectures[config.Name]
	}
	if arch == "" {
		return nil, nil, fmt.Errorf("--arch is required for %q", config.Name)
	}
	var err error
	if config.Architecture, err = utils.ParseArchitecture(arch); err != nil {
		return nil, nil, fmt.Errorf("parsing architecture: %w", err)
	}
	if err := utils.ValidateConfig(config); err != nil {
		return nil, nil, err
	}

	var lines m.Lines
	if config.DataFile != "" {
		config.Name = strings.TrimSuffix(config.DataFile, ".csv")
		lines, err = m.GetLinesFile(config.DataFile, config.InputCount(), config.OutputCount())
		if err != nil {
			return nil, nil, fmt.Errorf("loading %s: %w", config.DataFile, err)
		}
	} else {
		dataset, ok := m.DatasetLookup[config.Name]
		if !ok {
			return nil, nil, fmt.Errorf("unknown dataset %q", config.Name)
		}
		lines = dataset()
	}
	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("dataset %s is empty", config.Name)
	}
	return config, lines, nil
}

type recorders struct {
	text   *record.Text
	sealed *record.Sealed
}

func (r recorders) all() []nn.Recorder {
	var out []nn.Recorder
	if r.text != nil {
		out = append(out, r.text)
	}
	if r.sealed != nil {
		out = append(out, r.sealed)
	}
	return out
}

func buildRecorders() (recorders, func(), error) {
	var recs recorders
	var closers []func() error
	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				fmt.Fprintf(os.Stderr, "Error closing: %v\n", err)
			}
		}
		closers = nil
	}

	if *outputFile != "" {
		text, err := record.NewTextFile(*outputFile)
		if err != nil {
			return recs, closeAll, err
		}
		recs.text = text
		closers = append(closers, text.Close)
	}

	if *sealed {
		fmt.Println("Initializing HE context...")
		start := time.Now()
		he, err := ckkswrapper.NewHeContextWithLogN(*logN)
		if err != nil {
			closeAll()
			return recs, closeAll, err
		}
		fmt.Printf("HE initialization: %.2fs\n", time.Since(start).Seconds())

		var ctOut *os.File
		if *ctFile != "" {
			if ctOut, err = os.Create(*ctFile); err != nil {
				closeAll()
				return recs, closeAll, err
			}
			closers = append(closers, ctOut.Close)
		}
		if ctOut != nil {
			recs.sealed = record.NewSealed(he, ctOut)
		} else {
			recs.sealed = record.NewSealed(he, nil)
		}
	}
	return recs, closeAll, nil
}

// finalWeights tags the saved weights with the last iteration that ran, or 0 when none did.
func finalWeights(net *nn.Network, iterations int) *utils.ModelWeights {
	return net.Snapshot(max(iterations-1, 0)).ModelWeights()
}

func maxAbs(values []float64) float64 {
	var best float64
	for _, v := range values {
		if v < 0 {
			v = -v
		}
		best = max(best, v)
	}
	return best
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"bpnet/m"
	"bpnet/nn"
	"bpnet/record"
	"bpnet/utils"
)

var (
	outDir  = flag.String("dir", ".", "directory the weight dumps are appended to")
	seed    = flag.Uint64("seed", 0, "weight initialisation seed, 0 seeds from the clock")
	verbose = flag.Bool("verbose", true, "print progress")
)

type demo struct {
	file    string
	config  nn.Config
	dataset func() m.Lines
}

var demos = []demo{
	{
		file:    "xor_output.txt",
		config:  nn.Config{InputCount: 2, OutputCount: 1, HiddenSizes: []int{2}, LearningRate: 0.1, Threshold: 0.5},
		dataset: m.XOR,
	},
	{
		file:    "mynet_output1.txt",
		config:  nn.Config{InputCount: 6, OutputCount: 7, HiddenSizes: []int{8, 8, 8, 8, 8, 8}, LearningRate: 0.1, Threshold: 0.5},
		dataset: m.Assignment,
	},
}

const iterations = 50

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	for _, d := range demos {
		if err := run(d); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", d.file, err)
			os.Exit(1)
		}
	}
}

func run(d demo) error {
	src := m.NewTimeSeededWeightSource()
	if *seed != 0 {
		src = m.NewWeightSource(*seed)
	}
	net, err := nn.NewNetwork(d.config, src)
	if err != nil {
		return err
	}

	path := filepath.Join(*outDir, d.file)
	text, err := record.NewTextFile(path)
	if err != nil {
		return err
	}
	err = train(net, d, text)
	if cerr := text.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		utils.Logf("weights appended to %s\n", path)
	}
	return err
}

func train(net *nn.Network, d demo, rec nn.Recorder) error {
	inputs, desired := d.dataset().Split()
	if err := net.Train(iterations, inputs, desired, rec); err != nil {
		return err
	}
	accuracy, err := net.Accuracy(inputs, desired)
	if err != nil {
		return err
	}
	utils.Logf("%v: accuracy %.2f%%\n", d.config.Architecture(), accuracy)
	return nil
}

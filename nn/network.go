// Package nn implements a fully connected feedforward network of boolean
// perceptrons trained online with backpropagation.
//
// A Network owns every Layer and Node it is built with. Nodes are addressed by
// (layer, position); layer 0 holds InputTerminals, the last layer holds
// OutputPerceptrons and any layers in between hold plain Sigmoid Perceptrons.
// The topology never changes after NewNetwork returns.
package nn

import (
	"math"
	"slices"

	"bpnet/m"
	"bpnet/utils"

	"github.com/pkg/errors"
)

// Config describes the topology and training hyperparameters of a Network.
type Config struct {
	InputCount   int
	OutputCount  int
	HiddenSizes  []int // may be empty
	LearningRate float64
	Threshold    float64 // shared by every non-input node
}

// Architecture lists every layer width from input to output.
func (c Config) Architecture() []int {
	arch := make([]int, 0, len(c.HiddenSizes)+2)
	arch = append(arch, c.InputCount)
	arch = append(arch, c.HiddenSizes...)
	return append(arch, c.OutputCount)
}

// Validate checks the size constraints the construction relies on.
func (c Config) Validate() error {
	if c.InputCount <= 0 {
		return errors.Errorf("input count must be positive, got %d", c.InputCount)
	}
	if c.OutputCount <= 0 {
		return errors.Errorf("output count must be positive, got %d", c.OutputCount)
	}
	for i, size := range c.HiddenSizes {
		if size <= 0 {
			return errors.Errorf("hidden layer %d must have a positive size, got %d", i, size)
		}
	}
	if math.IsNaN(c.LearningRate) || math.IsInf(c.LearningRate, 0) {
		return errors.Errorf("learning rate must be finite, got %v", c.LearningRate)
	}
	if math.IsNaN(c.Threshold) {
		return errors.New("threshold must be a number")
	}
	return nil
}

// ConfigFrom converts a trainer configuration into a network configuration.
func ConfigFrom(c *utils.Config) Config {
	return Config{
		InputCount:   c.InputCount(),
		OutputCount:  c.OutputCount(),
		HiddenSizes:  c.HiddenSizes(),
		LearningRate: c.LearningRate,
		Threshold:    c.Threshold,
	}
}

// Network is an input layer, zero or more hidden layers and an output layer.
type Network struct {
	config Config
	layers []*Layer

	// typed views onto the first and last layers
	inputs  []*InputTerminal
	outputs []*OutputPerceptron

	// Stats, when set, accumulates per-phase durations and sample counts.
	Stats *utils.TimingStats
}

// NewNetwork builds the layers bottom-up and draws every initial weight from src.
func NewNetwork(c Config, src *m.WeightSource) (*Network, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid network config")
	}
	if src == nil {
		return nil, errors.New("nil weight source")
	}
	c.HiddenSizes = slices.Clone(c.HiddenSizes)

	net := &Network{
		config: c,
		layers: make([]*Layer, len(c.HiddenSizes)+2),
	}
	net.buildInputLayer()
	net.buildHiddenLayers(src)
	net.buildOutputLayer(src)
	return net, nil
}

func (net *Network) buildInputLayer() {
	layer := NewLayer(0, net.config.InputCount)
	net.inputs = make([]*InputTerminal, net.config.InputCount)
	for i := range net.inputs {
		t := NewInputTerminal()
		net.inputs[i] = t
		layer.Set(i, t)
	}
	net.layers[0] = layer
}

func (net *Network) buildHiddenLayers(src *m.WeightSource) {
	for i, size := range net.config.HiddenSizes {
		prevSize := net.layers[i].Len()
		layer := NewLayer(i+1, size)
		for j := 0; j < size; j++ {
			p := NewPerceptron(prevSize, m.Sigmoid, net.config.Threshold)
			copy(p.weights, m.RandomWeights(prevSize, src))
			layer.Set(j, p)
		}
		net.layers[i+1] = layer
	}
}

// buildOutputLayer reads its input size from whatever layer precedes it, which is
// the input layer when there are no hidden layers.
func (net *Network) buildOutputLayer(src *m.WeightSource) {
	outputIndex := len(net.layers) - 1
	prevSize := net.layers[outputIndex-1].Len()
	layer := NewLayer(outputIndex, net.config.OutputCount)
	net.outputs = make([]*OutputPerceptron, net.config.OutputCount)
	for i := range net.outputs {
		o := NewOutputPerceptron(prevSize, net.config.Threshold)
		copy(o.weights, m.RandomWeights(prevSize, src))
		net.outputs[i] = o
		layer.Set(i, o)
	}
	net.layers[outputIndex] = layer
}

// Config returns a copy of the configuration the network was built with.
func (net *Network) Config() Config {
	c := net.config
	c.HiddenSizes = slices.Clone(c.HiddenSizes)
	return c
}

func (net *Network) InputCount() int {
	return net.config.InputCount
}

func (net *Network) OutputCount() int {
	return net.config.OutputCount
}

// LayerCount is the number of hidden layers plus two.
func (net *Network) LayerCount() int {
	return len(net.layers)
}

func (net *Network) Layer(i int) *Layer {
	checkIndex(i, len(net.layers), "network")
	return net.layers[i]
}

// Node returns the node at position pos of layer l.
func (net *Network) Node(l, pos int) Node {
	return net.Layer(l).Get(pos)
}

func (net *Network) lastIndex() int {
	return len(net.layers) - 1
}

// LoadWeights overwrites every non-input weight from w after checking that w was
// saved from a network of the same architecture.
func (net *Network) LoadWeights(w *utils.ModelWeights) error {
	if w == nil {
		return errors.New("nil weights")
	}
	if !slices.Equal(w.Architecture, net.config.Architecture()) {
		return errors.Errorf("architecture mismatch: network is %v, weights are %v",
			net.config.Architecture(), w.Architecture)
	}
	// validate everything before touching a single weight
	matrices := make([][]float64, len(net.layers))
	for i := 1; i < len(net.layers); i++ {
		layer := net.layers[i]
		lw, ok := w.Layers[utils.LayerKey(i)]
		if !ok || lw.Weight == nil {
			return errors.Errorf("missing weights for layer %d", i)
		}
		rows, cols := layer.Len(), net.layers[i-1].Len()
		if !slices.Equal(lw.Weight.Shape, []int{rows, cols}) {
			return errors.Errorf("layer %d shape mismatch: expected [%d %d], got %v", i, rows, cols, lw.Weight.Shape)
		}
		if len(lw.Weight.Data) != rows*cols {
			return errors.Errorf("layer %d has %d weights, expected %d", i, len(lw.Weight.Data), rows*cols)
		}
		matrices[i] = lw.Weight.Data
	}
	for i := 1; i < len(net.layers); i++ {
		layer := net.layers[i]
		cols := net.layers[i-1].Len()
		for j := 0; j < layer.Len(); j++ {
			node := layer.Get(j)
			for k := 0; k < cols; k++ {
				node.SetWeight(k, matrices[i][j*cols+k])
			}
		}
	}
	return nil
}

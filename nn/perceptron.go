package nn

import (
	"bpnet/m"

	"github.com/pkg/errors"
)

// ErrOutOfRange is wrapped by the panics raised on index accesses outside a node or layer.
// Such a panic is a topology bug, never a data problem.
var ErrOutOfRange = errors.New("index out of range")

func checkIndex(i, size int, what string) {
	if i < 0 || i >= size {
		panic(errors.Wrapf(ErrOutOfRange, "%d is out of %s range, size is %d", i, what, size))
	}
}

// Node is the capability set the forward and backward passes dispatch over.
// It is implemented by *Perceptron (hidden layers), *InputTerminal and *OutputPerceptron.
type Node interface {
	// ComputeOutput refreshes the weighted sum and the stored boolean output
	// from the current inputs.
	ComputeOutput()
	// GradientFactor is the activation derivative at the stored weighted sum.
	GradientFactor() float64

	InputSize() int
	Input(i int) bool
	SetInput(i int, v bool)
	Weight(i int) float64
	SetWeight(i int, w float64)
	Weights() []float64
	Bias() float64
	Threshold() float64
	Activation() m.Activation
	Delta() float64
	SetDelta(d float64)
	Output() bool
	WeightedSum() float64
}

// Perceptron is a node with a fixed number of boolean inputs and one weight per input.
type Perceptron struct {
	inputs  []bool
	weights []float64

	bias       float64
	threshold  float64
	activation m.Activation

	// per-sample state, overwritten on every pass
	weightedSum float64
	output      bool
	delta       float64
}

// NewPerceptron creates a node with inputSize zeroed weights and a zero bias.
func NewPerceptron(inputSize int, activation m.Activation, threshold float64) *Perceptron {
	return newPerceptron(inputSize, 0.0, activation, threshold)
}

func newPerceptron(inputSize int, bias float64, activation m.Activation, threshold float64) *Perceptron {
	return &Perceptron{
		inputs:     make([]bool, inputSize),
		weights:    make([]float64, inputSize),
		bias:       bias,
		threshold:  threshold,
		activation: activation,
	}
}

// ComputeOutput sets the weighted sum to dot(weights, inputs) and the output to
// sigmoid(sum) >= threshold. A sum that lands exactly on the threshold yields true.
// It does nothing for Linear nodes.
func (p *Perceptron) ComputeOutput() {
	if p.activation != m.Sigmoid {
		return
	}
	p.weightedSum = m.WeightedSum(p.weights, p.inputs)
	p.output = p.activation.Activator().Activate(p.weightedSum) >= p.threshold
}

// GradientFactor returns DiffSigmoid(weightedSum) for Sigmoid nodes and 0 for Linear ones.
func (p *Perceptron) GradientFactor() float64 {
	return p.activation.Activator().Deactivate(p.weightedSum)
}

func (p *Perceptron) InputSize() int {
	return len(p.inputs)
}

func (p *Perceptron) Input(i int) bool {
	checkIndex(i, len(p.inputs), "input")
	return p.inputs[i]
}

func (p *Perceptron) SetInput(i int, v bool) {
	checkIndex(i, len(p.inputs), "input")
	p.inputs[i] = v
}

func (p *Perceptron) Weight(i int) float64 {
	checkIndex(i, len(p.weights), "input")
	return p.weights[i]
}

func (p *Perceptron) SetWeight(i int, w float64) {
	checkIndex(i, len(p.weights), "input")
	p.weights[i] = w
}

// Weights returns a copy of the weight vector.
func (p *Perceptron) Weights() []float64 {
	return append([]float64(nil), p.weights...)
}

func (p *Perceptron) Bias() float64 {
	return p.bias
}

func (p *Perceptron) Threshold() float64 {
	return p.threshold
}

func (p *Perceptron) Activation() m.Activation {
	return p.activation
}

func (p *Perceptron) Delta() float64 {
	return p.delta
}

func (p *Perceptron) SetDelta(d float64) {
	p.delta = d
}

func (p *Perceptron) Output() bool {
	return p.output
}

func (p *Perceptron) WeightedSum() float64 {
	return p.weightedSum
}

package nn

import "bpnet/m"

// InputTerminal is a single-input, Linear node whose output is exactly the value fed to it.
type InputTerminal struct {
	Perceptron
}

func NewInputTerminal() *InputTerminal {
	t := &InputTerminal{Perceptron: *newPerceptron(1, 0.0, m.Linear, 0.0)}
	t.SetWeight(0, 1.0)
	return t
}

// SetValue loads v into the terminal's input slot and its stored output at once.
func (t *InputTerminal) SetValue(v bool) {
	t.SetInput(0, v)
	t.output = v
}

// ComputeOutput is a no-op: the output was fixed by SetValue.
func (t *InputTerminal) ComputeOutput() {}

// OutputPerceptron is a Sigmoid node that also carries the desired value for the current sample.
type OutputPerceptron struct {
	Perceptron
	desired bool
}

func NewOutputPerceptron(inputSize int, threshold float64) *OutputPerceptron {
	return &OutputPerceptron{Perceptron: *newPerceptron(inputSize, 0.0, m.Sigmoid, threshold)}
}

func (o *OutputPerceptron) SetDesired(v bool) {
	o.desired = v
}

func (o *OutputPerceptron) Desired() bool {
	return o.desired
}

package nn

import (
	"slices"
	"time"

	"bpnet/m"

	"github.com/pkg/errors"
)

// TrainSample runs one load, forward, backward and update cycle on a single sample.
//
// When len(inputs) differs from the input width or len(desired) from the output
// width the sample is skipped: nothing is mutated and false is returned.
func (net *Network) TrainSample(inputs, desired []bool) bool {
	if len(inputs) != net.config.InputCount || len(desired) != net.config.OutputCount {
		if net.Stats != nil {
			net.Stats.Skipped++
		}
		return false
	}

	start := time.Now()
	net.load(inputs)
	net.loadDesired(desired)
	loaded := time.Now()
	net.forward()
	forwarded := time.Now()
	net.backward()
	backwarded := time.Now()
	net.update()

	if net.Stats != nil {
		net.Stats.LoadTime += loaded.Sub(start)
		net.Stats.ForwardPassTime += forwarded.Sub(loaded)
		net.Stats.BackwardPassTime += backwarded.Sub(forwarded)
		net.Stats.UpdateTime += time.Since(backwarded)
		net.Stats.Samples++
	}
	return true
}

func (net *Network) load(inputs []bool) {
	for i, v := range inputs {
		net.inputs[i].SetValue(v)
	}
}

func (net *Network) loadDesired(desired []bool) {
	for i, v := range desired {
		net.outputs[i].SetDesired(v)
	}
}

// forward recomputes every layer from 1 onwards; layer 0 already holds the loaded inputs.
func (net *Network) forward() {
	for l := 1; l < len(net.layers); l++ {
		prev, curr := net.layers[l-1], net.layers[l]
		for j := 0; j < curr.Len(); j++ {
			node := curr.Get(j)
			for k := 0; k < prev.Len(); k++ {
				node.SetInput(k, prev.Get(k).Output())
			}
			node.ComputeOutput()
		}
	}
}

// backward sets the output deltas to desired - actual and then, from the last
// hidden layer down to layer 1, each delta to the sum over the next layer of
// weight(k) * delta. Input terminals never get a delta.
func (net *Network) backward() {
	for _, o := range net.outputs {
		o.SetDelta(m.BoolToFloat(o.Desired()) - m.BoolToFloat(o.Output()))
	}

	for j := len(net.layers) - 2; j > 0; j-- {
		curr, next := net.layers[j], net.layers[j+1]
		for k := 0; k < curr.Len(); k++ {
			delta := 0.0
			for l := 0; l < next.Len(); l++ {
				n := next.Get(l)
				delta += n.Weight(k) * n.Delta()
			}
			curr.Get(k).SetDelta(delta)
		}
	}
}

// update applies w += learningRate * delta * gradientFactor * input to every
// non-input weight. Every delta is final before it runs and the gradient factor
// comes from the weighted sum stored by forward, so no update observes another.
func (net *Network) update() {
	lr := net.config.LearningRate
	for i := 1; i < len(net.layers); i++ {
		layer := net.layers[i]
		for j := 0; j < layer.Len(); j++ {
			node := layer.Get(j)
			delta := node.Delta()
			grad := node.GradientFactor()
			for k := 0; k < node.InputSize(); k++ {
				node.SetWeight(k, node.Weight(k)+lr*delta*grad*m.BoolToFloat(node.Input(k)))
			}
		}
	}
}

// Predict loads inputs, runs the forward pass and returns the output layer's values.
// Weights are left untouched.
func (net *Network) Predict(inputs []bool) ([]bool, error) {
	if len(inputs) != net.config.InputCount {
		return nil, errors.Errorf("expected %d inputs, got %d", net.config.InputCount, len(inputs))
	}
	net.load(inputs)
	net.forward()
	out := make([]bool, len(net.outputs))
	for i, o := range net.outputs {
		out[i] = o.Output()
	}
	return out, nil
}

// Accuracy is the percentage of rows whose predicted vector equals the desired one.
func (net *Network) Accuracy(inputs, desired [][]bool) (float64, error) {
	if len(inputs) != len(desired) {
		return 0, errors.Errorf("%d input rows but %d desired rows", len(inputs), len(desired))
	}
	if len(inputs) == 0 {
		return 0, errors.New("empty dataset")
	}
	var correct float64
	for i := range inputs {
		if len(desired[i]) != net.config.OutputCount {
			return 0, errors.Errorf("row %d: expected %d desired outputs, got %d", i, net.config.OutputCount, len(desired[i]))
		}
		prediction, err := net.Predict(inputs[i])
		if err != nil {
			return 0, errors.Wrapf(err, "row %d", i)
		}
		if slices.Equal(prediction, desired[i]) {
			correct++
		}
	}
	return 100 * (correct / float64(len(inputs))), nil
}

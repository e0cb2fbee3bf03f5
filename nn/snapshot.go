package nn

import (
	"fmt"
	"slices"

	"bpnet/utils"

	"gonum.org/v1/gonum/mat"
)

// Snapshot is a read-only copy of the weight state after a training iteration.
// It covers every layer except the input layer.
type Snapshot struct {
	Iteration    int
	InputCount   int
	OutputCount  int
	HiddenSizes  []int
	LearningRate float64
	Threshold    float64
	Layers       []LayerSnapshot
}

type LayerSnapshot struct {
	Index int
	Nodes []NodeSnapshot
}

type NodeSnapshot struct {
	InputCount int
	Weights    []float64
}

// Snapshot copies the current weights, tagged with iteration.
func (net *Network) Snapshot(iteration int) Snapshot {
	s := Snapshot{
		Iteration:    iteration,
		InputCount:   net.config.InputCount,
		OutputCount:  net.config.OutputCount,
		HiddenSizes:  slices.Clone(net.config.HiddenSizes),
		LearningRate: net.config.LearningRate,
		Threshold:    net.config.Threshold,
		Layers:       make([]LayerSnapshot, 0, len(net.layers)-1),
	}
	for i := 1; i < len(net.layers); i++ {
		layer := net.layers[i]
		ls := LayerSnapshot{
			Index: layer.Index(),
			Nodes: make([]NodeSnapshot, layer.Len()),
		}
		for j := range ls.Nodes {
			node := layer.Get(j)
			ls.Nodes[j] = NodeSnapshot{
				InputCount: node.InputSize(),
				Weights:    node.Weights(),
			}
		}
		s.Layers = append(s.Layers, ls)
	}
	return s
}

// Architecture lists every layer width from input to output.
func (s Snapshot) Architecture() []int {
	return Config{InputCount: s.InputCount, OutputCount: s.OutputCount, HiddenSizes: s.HiddenSizes}.Architecture()
}

// InputCount is the number of weights per node in this layer.
func (ls LayerSnapshot) InputCount() int {
	if len(ls.Nodes) == 0 {
		return 0
	}
	return ls.Nodes[0].InputCount
}

// Flatten returns the layer's weights node by node.
func (ls LayerSnapshot) Flatten() []float64 {
	data := make([]float64, 0, len(ls.Nodes)*ls.InputCount())
	for _, n := range ls.Nodes {
		data = append(data, n.Weights...)
	}
	return data
}

// Matrix returns the layer's weights with one row per node and one column per input.
func (ls LayerSnapshot) Matrix() *mat.Dense {
	return mat.NewDense(len(ls.Nodes), ls.InputCount(), ls.Flatten())
}

// ModelWeights converts the snapshot into the JSON weights file layout.
func (s Snapshot) ModelWeights() *utils.ModelWeights {
	w := &utils.ModelWeights{
		Version:      utils.WeightsVersion,
		Architecture: s.Architecture(),
		LearningRate: s.LearningRate,
		Threshold:    s.Threshold,
		Iteration:    s.Iteration,
		Layers:       make(map[string]utils.LayerWeight, len(s.Layers)),
	}
	for _, ls := range s.Layers {
		w.Layers[utils.LayerKey(ls.Index)] = utils.LayerWeight{
			Index: ls.Index,
			Weight: &utils.WeightData{
				Name:  fmt.Sprintf("layer%d_weight", ls.Index),
				Shape: []int{len(ls.Nodes), ls.InputCount()},
				Data:  ls.Flatten(),
			},
		}
	}
	return w
}

// Recorder receives a snapshot after every training iteration. Errors are the
// recorder's to report; Train stops at the first one without undoing any update.
type Recorder interface {
	Record(s Snapshot) error
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(s Snapshot) error

func (f RecorderFunc) Record(s Snapshot) error {
	return f(s)
}

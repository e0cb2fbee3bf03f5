package nn

import (
	"errors"
	"os"
	"testing"

	"bpnet/m"
	"bpnet/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(mm *testing.M) {
	utils.Verbose = false
	os.Exit(mm.Run())
}

func xorConfig() Config {
	return Config{InputCount: 2, OutputCount: 1, HiddenSizes: []int{2}, LearningRate: 0.1, Threshold: 0.5}
}

func newTestNetwork(t *testing.T, c Config, seed uint64) *Network {
	t.Helper()
	net, err := NewNetwork(c, m.NewWeightSource(seed))
	require.NoError(t, err)
	return net
}

// fillWeights sets every non-input weight of net to v through LoadWeights.
func fillWeights(t *testing.T, net *Network, v float64) {
	t.Helper()
	w := net.Snapshot(0).ModelWeights()
	for _, lw := range w.Layers {
		for i := range lw.Weight.Data {
			lw.Weight.Data[i] = v
		}
	}
	require.NoError(t, net.LoadWeights(w))
}

// setWeights assigns weights[l-1][j] to node j of layer l.
func setWeights(net *Network, weights [][][]float64) {
	for l, layer := range weights {
		for j, node := range layer {
			for k, w := range node {
				net.Node(l+1, j).SetWeight(k, w)
			}
		}
	}
}

func TestNewNetworkTopology(t *testing.T) {
	c := Config{InputCount: 3, OutputCount: 2, HiddenSizes: []int{4, 5}, LearningRate: 0.1, Threshold: 0.6}
	net := newTestNetwork(t, c, 42)

	require.Equal(t, 4, net.LayerCount())
	require.Equal(t, 3, net.InputCount())
	require.Equal(t, 2, net.OutputCount())
	require.Equal(t, []int{3, 4, 5, 2}, c.Architecture())

	for l, width := range c.Architecture() {
		layer := net.Layer(l)
		require.Equal(t, l, layer.Index())
		require.Equal(t, width, layer.Len())
		require.True(t, layer.Complete())
	}

	for pos := 0; pos < 3; pos++ {
		node := net.Node(0, pos)
		require.IsType(t, &InputTerminal{}, node)
		assert.Equal(t, 1, node.InputSize())
		assert.Equal(t, 1.0, node.Weight(0))
		assert.Equal(t, m.Linear, node.Activation())
	}
	for l := 1; l <= 2; l++ {
		for pos := 0; pos < net.Layer(l).Len(); pos++ {
			node := net.Node(l, pos)
			require.IsType(t, &Perceptron{}, node)
			assert.Equal(t, m.Sigmoid, node.Activation())
			assert.Equal(t, 0.6, node.Threshold())
			assert.Equal(t, 0.0, node.Bias())
			assert.Equal(t, net.Layer(l-1).Len(), node.InputSize())
		}
	}
	for pos := 0; pos < 2; pos++ {
		node := net.Node(3, pos)
		require.IsType(t, &OutputPerceptron{}, node)
		assert.Equal(t, 0.6, node.Threshold())
		assert.Equal(t, 5, node.InputSize())
	}
}

func TestNewNetworkWeightRange(t *testing.T) {
	net := newTestNetwork(t, Config{InputCount: 6, OutputCount: 7, HiddenSizes: []int{8, 8, 8}, LearningRate: 0.1, Threshold: 0.5}, 3)
	for _, ls := range net.Snapshot(0).Layers {
		for _, w := range ls.Flatten() {
			require.GreaterOrEqual(t, w, -1.0)
			require.Less(t, w, 1.0)
		}
	}
}

func TestNewNetworkZeroHiddenLayers(t *testing.T) {
	c := Config{InputCount: 3, OutputCount: 2, LearningRate: 0.1, Threshold: 0.5}
	net := newTestNetwork(t, c, 1)
	require.Equal(t, 2, net.LayerCount())
	require.Equal(t, 3, net.Node(1, 0).InputSize())
	require.Equal(t, 3, net.Node(1, 1).InputSize())

	require.True(t, net.TrainSample([]bool{true, false, true}, []bool{false, true}))
	out, err := net.Predict([]bool{true, true, true})
	require.NoError(t, err)
	require.Len(t, out, 2)
}

func TestNewNetworkInvalidConfig(t *testing.T) {
	src := m.NewWeightSource(1)
	configs := map[string]Config{
		"no inputs":     {InputCount: 0, OutputCount: 1},
		"no outputs":    {InputCount: 1, OutputCount: 0},
		"empty hidden":  {InputCount: 1, OutputCount: 1, HiddenSizes: []int{2, 0}},
		"negative size": {InputCount: -1, OutputCount: 1},
	}
	for name, c := range configs {
		_, err := NewNetwork(c, src)
		require.Error(t, err, name)
	}

	_, err := NewNetwork(xorConfig(), nil)
	require.Error(t, err)
}

func TestNewNetworkDeterministic(t *testing.T) {
	c := Config{InputCount: 6, OutputCount: 7, HiddenSizes: []int{8, 8}, LearningRate: 0.1, Threshold: 0.5}
	a := newTestNetwork(t, c, 7)
	b := newTestNetwork(t, c, 7)
	require.Equal(t, a.Snapshot(0), b.Snapshot(0))

	other := newTestNetwork(t, c, 8)
	require.NotEqual(t, a.Snapshot(0).Layers, other.Snapshot(0).Layers)
}

func TestNetworkConfigIsACopy(t *testing.T) {
	hidden := []int{3}
	net := newTestNetwork(t, Config{InputCount: 2, OutputCount: 1, HiddenSizes: hidden, LearningRate: 0.1, Threshold: 0.5}, 1)
	hidden[0] = 10
	require.Equal(t, []int{3}, net.Config().HiddenSizes)

	c := net.Config()
	c.HiddenSizes[0] = 11
	require.Equal(t, []int{3}, net.Config().HiddenSizes)
}

func TestNetworkNodeOutOfRange(t *testing.T) {
	net := newTestNetwork(t, xorConfig(), 1)
	for _, access := range []func(){
		func() { net.Node(3, 0) },
		func() { net.Node(1, 2) },
		func() { net.Node(-1, 0) },
		func() { net.Layer(2).Get(1) },
	} {
		err := recoverError(t, access)
		require.True(t, errors.Is(err, ErrOutOfRange))
	}
}

func TestConfigFrom(t *testing.T) {
	c := ConfigFrom(&utils.Config{Architecture: []int{6, 8, 8, 7}, LearningRate: 0.2, Threshold: 0.4})
	require.Equal(t, Config{InputCount: 6, OutputCount: 7, HiddenSizes: []int{8, 8}, LearningRate: 0.2, Threshold: 0.4}, c)
}

func TestLoadWeights(t *testing.T) {
	src := newTestNetwork(t, xorConfig(), 1)
	dst := newTestNetwork(t, xorConfig(), 2)
	require.NotEqual(t, src.Snapshot(0).Layers, dst.Snapshot(0).Layers)

	require.NoError(t, dst.LoadWeights(src.Snapshot(0).ModelWeights()))
	require.Equal(t, src.Snapshot(0), dst.Snapshot(0))
}

func TestLoadWeightsRejectsWithoutMutating(t *testing.T) {
	net := newTestNetwork(t, Config{InputCount: 2, OutputCount: 1, HiddenSizes: []int{3}, LearningRate: 0.1, Threshold: 0.5}, 1)
	before := net.Snapshot(0)

	cases := map[string]func(w *utils.ModelWeights){
		"architecture": func(w *utils.ModelWeights) { w.Architecture = []int{2, 4, 1} },
		"missing layer": func(w *utils.ModelWeights) {
			delete(w.Layers, utils.LayerKey(2))
		},
		"shape": func(w *utils.ModelWeights) {
			w.Layers[utils.LayerKey(2)].Weight.Shape = []int{3, 1}
		},
		"data length": func(w *utils.ModelWeights) {
			lw := w.Layers[utils.LayerKey(2)]
			lw.Weight.Data = lw.Weight.Data[:2]
		},
	}
	for name, corrupt := range cases {
		w := net.Snapshot(0).ModelWeights()
		// layer 1 is valid and would be written first
		for i := range w.Layers[utils.LayerKey(1)].Weight.Data {
			w.Layers[utils.LayerKey(1)].Weight.Data[i] = 0.25
		}
		corrupt(w)
		require.Error(t, net.LoadWeights(w), name)
		require.Equal(t, before, net.Snapshot(0), name)
	}
	require.Error(t, net.LoadWeights(nil))
}

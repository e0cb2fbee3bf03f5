package main

import (
	"testing"

	"bpnet/m"
	"bpnet/nn"
	"bpnet/utils"

	"github.com/stretchr/testify/require"
)

func TestFinalWeightsIteration(t *testing.T) {
	utils.Verbose = false
	net, err := nn.NewNetwork(nn.Config{InputCount: 2, OutputCount: 1, HiddenSizes: []int{2}, LearningRate: 0.1, Threshold: 0.5}, m.NewWeightSource(1))
	require.NoError(t, err)

	untrained := finalWeights(net, 0)
	require.Equal(t, 0, untrained.Iteration)
	require.Equal(t, []int{2, 2, 1}, untrained.Architecture)

	inputs, desired := m.XOR().Split()
	require.NoError(t, net.Train(5, inputs, desired, nil))
	require.Equal(t, 4, finalWeights(net, 5).Iteration)
}

func TestMaxAbs(t *testing.T) {
	require.Equal(t, 0.0, maxAbs(nil))
	require.Equal(t, 0.75, maxAbs([]float64{0.5, -0.75, 0.25}))
}

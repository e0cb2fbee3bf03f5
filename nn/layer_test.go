package nn

import (
	"errors"
	"testing"

	"bpnet/m"

	"github.com/stretchr/testify/require"
)

func TestLayerGetSet(t *testing.T) {
	l := NewLayer(2, 3)
	require.Equal(t, 2, l.Index())
	require.Equal(t, 3, l.Len())
	require.False(t, l.Complete())

	nodes := make([]Node, 3)
	for i := range nodes {
		nodes[i] = NewPerceptron(4, m.Sigmoid, 0.5)
		l.Set(i, nodes[i])
	}
	require.True(t, l.Complete())
	for i := range nodes {
		require.Same(t, nodes[i], l.Get(i))
	}
}

func TestLayerOutOfRange(t *testing.T) {
	l := NewLayer(0, 2)
	for _, i := range []int{2, 3, -1} {
		err := recoverError(t, func() { l.Get(i) })
		require.True(t, errors.Is(err, ErrOutOfRange), "Get(%d)", i)
		err = recoverError(t, func() { l.Set(i, NewInputTerminal()) })
		require.True(t, errors.Is(err, ErrOutOfRange), "Set(%d)", i)
	}
	require.PanicsWithError(t, "2 is out of layer range, size is 2: index out of range", func() {
		l.Get(2)
	})
}

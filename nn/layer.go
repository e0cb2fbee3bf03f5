package nn

// Layer is a fixed-capacity, positionally addressed group of nodes at one depth.
type Layer struct {
	index int
	nodes []Node
}

// NewLayer allocates capacity empty slots for the layer at position index in its network.
func NewLayer(index, capacity int) *Layer {
	return &Layer{
		index: index,
		nodes: make([]Node, capacity),
	}
}

func (l *Layer) Get(i int) Node {
	checkIndex(i, len(l.nodes), "layer")
	return l.nodes[i]
}

func (l *Layer) Set(i int, node Node) {
	checkIndex(i, len(l.nodes), "layer")
	l.nodes[i] = node
}

// Len is the layer's capacity, which is also the input size of every node in the next layer.
func (l *Layer) Len() int {
	return len(l.nodes)
}

func (l *Layer) Index() int {
	return l.index
}

// Complete reports whether every slot holds a node.
func (l *Layer) Complete() bool {
	for _, n := range l.nodes {
		if n == nil {
			return false
		}
	}
	return true
}

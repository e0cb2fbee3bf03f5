package m

import (
	"strings"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// WeightSource draws initial weights uniformly from [-1.0, 1.0).
// It is not safe for concurrent use; a network is built from a single call site.
type WeightSource struct {
	dist distuv.Uniform
}

// NewWeightSource returns a reproducible source for the given seed.
func NewWeightSource(seed uint64) *WeightSource {
	return &WeightSource{
		dist: distuv.Uniform{
			Min: -1.0,
			Max: 1.0,
			Src: rand.NewSource(seed),
		},
	}
}

// NewTimeSeededWeightSource seeds from the wall clock, for demo runs.
func NewTimeSeededWeightSource() *WeightSource {
	return NewWeightSource(uint64(time.Now().UnixNano()))
}

// Next returns the next weight.
func (w *WeightSource) Next() float64 {
	return w.dist.Rand()
}

// RandomWeights returns size fresh weights from src.
func RandomWeights(size int, src *WeightSource) []float64 {
	data := make([]float64, size)
	for i := range data {
		data[i] = src.Next()
	}
	return data
}

func BoolToFloat(value bool) float64 {
	if value {
		return 1.0
	}
	return 0.0
}

func BoolsToFloats(values []bool) []float64 {
	o := make([]float64, len(values))
	for i, v := range values {
		o[i] = BoolToFloat(v)
	}
	return o
}

// WeightedSum is the dot product of weights and the {0,1} cast of inputs.
func WeightedSum(weights []float64, inputs []bool) float64 {
	return floats.Dot(weights, BoolsToFloats(inputs))
}

// BoolsToString renders a boolean vector as a string of 0s and 1s.
func BoolsToString(values []bool) string {
	var sb strings.Builder
	sb.Grow(len(values))
	for _, v := range values {
		if v {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

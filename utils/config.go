package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Config holds training configuration
type Config struct {
	Name         string
	Architecture []int // input width, hidden widths..., output width
	DataFile     string
	Iterations   int
	LearningRate float64
	Threshold    float64
	Seed         uint64
}

// InputCount is the width of the input layer.
func (c *Config) InputCount() int {
	return c.Architecture[0]
}

// OutputCount is the width of the output layer.
func (c *Config) OutputCount() int {
	return c.Architecture[len(c.Architecture)-1]
}

// HiddenSizes are the widths between the input and output layers, possibly none.
func (c *Config) HiddenSizes() []int {
	return append([]int(nil), c.Architecture[1:len(c.Architecture)-1]...)
}

// ParseArchitecture parses architecture string into slice of integers.
// Fields may be separated by spaces or commas: "2 2 1", "6,8,8,7".
func ParseArchitecture(archStr string) ([]int, error) {
	archParts := strings.FieldsFunc(archStr, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	arch := make([]int, len(archParts))
	for i, s := range archParts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		arch[i] = n
	}
	return arch, nil
}

// ValidateConfig validates training configuration
func ValidateConfig(config *Config) error {
	if len(config.Architecture) < 2 {
		return fmt.Errorf("architecture must have at least 2 layers (input and output)")
	}

	for i, n := range config.Architecture {
		if n <= 0 {
			return fmt.Errorf("layer %d must have a positive width, got %d", i, n)
		}
	}

	if config.Iterations < 0 {
		return fmt.Errorf("iterations must not be negative")
	}

	if math.IsNaN(config.LearningRate) || math.IsInf(config.LearningRate, 0) {
		return fmt.Errorf("learning rate must be finite")
	}

	if math.IsNaN(config.Threshold) {
		return fmt.Errorf("threshold must be a number")
	}

	return nil
}

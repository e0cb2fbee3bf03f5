package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseArchitecture(t *testing.T) {
	arch, err := ParseArchitecture("2 2 1")
	require.NoError(t, err)
	require.Equal(t, []int{2, 2, 1}, arch)

	arch, err = ParseArchitecture("6,8, 8,7")
	require.NoError(t, err)
	require.Equal(t, []int{6, 8, 8, 7}, arch)

	_, err = ParseArchitecture("2 two 1")
	require.Error(t, err)
}

func TestConfigLayerWidths(t *testing.T) {
	c := &Config{Architecture: []int{6, 8, 8, 7}}
	require.Equal(t, 6, c.InputCount())
	require.Equal(t, 7, c.OutputCount())
	require.Equal(t, []int{8, 8}, c.HiddenSizes())

	c = &Config{Architecture: []int{3, 2}}
	require.Empty(t, c.HiddenSizes())
}

func TestValidateConfig(t *testing.T) {
	valid := Config{Architecture: []int{2, 2, 1}, Iterations: 50, LearningRate: 0.1, Threshold: 0.5}
	require.NoError(t, ValidateConfig(&valid))

	zeroHidden := valid
	zeroHidden.Architecture = []int{2, 1}
	require.NoError(t, ValidateConfig(&zeroHidden))

	cases := map[string]func(c *Config){
		"single layer":   func(c *Config) { c.Architecture = []int{2} },
		"zero width":     func(c *Config) { c.Architecture = []int{2, 0, 1} },
		"negative iters": func(c *Config) { c.Iterations = -1 },
		"nan rate":       func(c *Config) { c.LearningRate = math.NaN() },
		"infinite rate":  func(c *Config) { c.LearningRate = math.Inf(1) },
		"nan threshold":  func(c *Config) { c.Threshold = math.NaN() },
	}
	for name, mutate := range cases {
		c := valid
		c.Architecture = append([]int(nil), valid.Architecture...)
		mutate(&c)
		require.Error(t, ValidateConfig(&c), name)
	}
}

package utils

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
)

const WeightsVersion = "1.0"

// WeightData represents serializable weight data for a layer
type WeightData struct {
	Name  string    `json:"name"`
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

// ModelWeights represents all weights in a network together with the topology they belong to
type ModelWeights struct {
	Version      string                 `json:"version"`
	Architecture []int                  `json:"architecture"`
	LearningRate float64                `json:"learning_rate"`
	Threshold    float64                `json:"threshold"`
	Iteration    int                    `json:"iteration"`
	Layers       map[string]LayerWeight `json:"layers"`
}

// LayerWeight contains the weights of one non-input layer
type LayerWeight struct {
	Index  int         `json:"index"`
	Weight *WeightData `json:"weight,omitempty"`
}

// LayerKey is the map key used for the layer at index.
func LayerKey(index int) string {
	return fmt.Sprintf("layer%d", index)
}

// SaveWeights saves model weights to a JSON file
func SaveWeights(filepath string, weights *ModelWeights) error {
	data, err := json.MarshalIndent(weights, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal weights: %w", err)
	}
	return os.WriteFile(filepath, data, 0644)
}

// LoadWeights loads model weights from a JSON file
func LoadWeights(filepath string) (*ModelWeights, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read weights file: %w", err)
	}
	var weights ModelWeights
	if err := json.Unmarshal(data, &weights); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weights: %w", err)
	}
	if weights.Version != WeightsVersion {
		return nil, fmt.Errorf("unsupported weights version %q", weights.Version)
	}
	return &weights, nil
}

// CiphertextData represents serializable ciphertext (base64 encoded)
type CiphertextData struct {
	Iteration int    `json:"iteration"`
	Layer     int    `json:"layer"`
	Chunk     int    `json:"chunk"`
	Level     int    `json:"level"`
	Data      string `json:"data"` // base64 encoded
}

// EncodeBytes encodes raw bytes to base64 string
func EncodeBytes(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBytes decodes base64 string to raw bytes
func DecodeBytes(encoded string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(encoded)
}

package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadWeights(t *testing.T) {
	weightsFile := filepath.Join(t.TempDir(), "test_weights.json")

	weights := &ModelWeights{
		Version:      WeightsVersion,
		Architecture: []int{2, 2, 1},
		LearningRate: 0.1,
		Threshold:    0.5,
		Iteration:    49,
		Layers: map[string]LayerWeight{
			LayerKey(1): {
				Index: 1,
				Weight: &WeightData{
					Name:  "layer1_weight",
					Shape: []int{2, 2},
					Data:  []float64{0.1, -0.2, 0.3, -0.4},
				},
			},
			LayerKey(2): {
				Index: 2,
				Weight: &WeightData{
					Name:  "layer2_weight",
					Shape: []int{1, 2},
					Data:  []float64{0.5, 0.6},
				},
			},
		},
	}

	if err := SaveWeights(weightsFile, weights); err != nil {
		t.Fatalf("SaveWeights failed: %v", err)
	}

	loaded, err := LoadWeights(weightsFile)
	if err != nil {
		t.Fatalf("LoadWeights failed: %v", err)
	}

	if loaded.Version != WeightsVersion {
		t.Errorf("Version = %s, want %s", loaded.Version, WeightsVersion)
	}
	if loaded.Iteration != 49 {
		t.Errorf("Iteration = %d, want 49", loaded.Iteration)
	}
	if len(loaded.Layers) != 2 {
		t.Fatalf("Layers count = %d, want 2", len(loaded.Layers))
	}
	layer1 := loaded.Layers["layer1"]
	if layer1.Weight == nil {
		t.Fatal("layer1 weight is nil")
	}
	if layer1.Weight.Shape[0] != 2 || layer1.Weight.Shape[1] != 2 {
		t.Errorf("layer1 weight shape = %v, want [2, 2]", layer1.Weight.Shape)
	}
	if layer1.Weight.Data[3] != -0.4 {
		t.Errorf("layer1.Weight.Data[3] = %f, want -0.4", layer1.Weight.Data[3])
	}
}

func TestLoadWeightsErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadWeights(filepath.Join(dir, "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWeights(bad); err == nil {
		t.Error("expected error for malformed JSON")
	}

	old := filepath.Join(dir, "old.json")
	if err := os.WriteFile(old, []byte(`{"version":"0.1"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWeights(old); err == nil {
		t.Error("expected error for unsupported version")
	}
}

func TestEncodeDecodeBytes(t *testing.T) {
	raw := []byte{0, 1, 2, 250, 255}
	decoded, err := DecodeBytes(EncodeBytes(raw))
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	if string(decoded) != string(raw) {
		t.Errorf("round trip = %v, want %v", decoded, raw)
	}
}

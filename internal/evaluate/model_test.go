package evaluate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWeightedModelScore(t *testing.T) {
	m := &WeightedModel{ModelName: "lin", Weights: []float64{2, -1}, Bias: 0.5}

	got, err := m.Score([][]float64{{1, 0}, {0, 1}, {1, 1}})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	want := []float64{2.5, -0.5, 1.5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scores (-want +got):\n%s", diff)
	}
}

func TestWeightedModelDimensionMismatch(t *testing.T) {
	m := &WeightedModel{Weights: []float64{1, 2}}
	if _, err := m.Score([][]float64{{1}}); err == nil {
		t.Fatal("dimension mismatch should error")
	}
}

func TestWeightedModelName(t *testing.T) {
	if got := (&WeightedModel{}).Name(); got != "weighted" {
		t.Errorf("default name = %q, want weighted", got)
	}
	if got := (&WeightedModel{ModelName: "xgb-baseline"}).Name(); got != "xgb-baseline" {
		t.Errorf("name = %q, want xgb-baseline", got)
	}
}

func TestLoadModelYAML(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, filepath.Join(dir, "model.yaml"),
		"name: lin\nweights: [1.0, 2.0]\nbias: 0.25\n")

	m, err := LoadModel(dir)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if m.Name() != "lin" || m.Bias != 0.25 || len(m.Weights) != 2 {
		t.Errorf("unexpected model: %+v", m)
	}
}

func TestLoadModelJSON(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, filepath.Join(dir, "model.json"),
		`{"name": "lin", "weights": [3.0], "bias": 0}`)

	m, err := LoadModel(dir)
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if len(m.Weights) != 1 || m.Weights[0] != 3.0 {
		t.Errorf("unexpected model: %+v", m)
	}
}

func TestLoadModelMissing(t *testing.T) {
	if _, err := LoadModel(t.TempDir()); err == nil {
		t.Fatal("missing model file should error")
	}
}

func TestLoadModelRejectsEmptyWeights(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, filepath.Join(dir, "model.yaml"), "name: empty\nweights: []\n")
	if _, err := LoadModel(dir); err == nil {
		t.Fatal("model without weights should error")
	}
}

func writeModel(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

// Package evaluate scores candidate configurations per tuning group with a
// ranking model and reports top-k accuracy and gap statistics against the
// measured baseline.
package evaluate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"rankbench/internal/dataset"
)

// Model ranks candidate feature vectors. Lower score = better candidate;
// sorting scores ascending yields the model's preference order.
// Implementations must be safe for concurrent Score calls when the
// evaluator runs with parallel workers.
type Model interface {
	// Score returns one score per candidate, aligned by index.
	Score(candidates [][]float64) ([]float64, error)
	// Name identifies the model in reports and logs.
	Name() string
}

// WeightedModel is a linear ranking model: score = w·x + bias.
// The on-disk contract is a plain weights file, loadable from YAML or JSON.
type WeightedModel struct {
	ModelName string    `yaml:"name" json:"name"`
	Weights   []float64 `yaml:"weights" json:"weights"`
	Bias      float64   `yaml:"bias" json:"bias"`
}

func (m *WeightedModel) Name() string {
	if m.ModelName == "" {
		return "weighted"
	}
	return m.ModelName
}

func (m *WeightedModel) Score(candidates [][]float64) ([]float64, error) {
	scores := make([]float64, len(candidates))
	for i, x := range candidates {
		if len(x) != len(m.Weights) {
			return nil, fmt.Errorf("candidate %d has %d features, model expects %d",
				i, len(x), len(m.Weights))
		}
		s := m.Bias
		for j, v := range x {
			s += m.Weights[j] * v
		}
		scores[i] = s
	}
	return scores, nil
}

// modelExts are the recognised model file extensions, in probe order.
var modelExts = []string{".yaml", ".yml", ".json"}

// LoadModel reads a weighted model from dir/model.{yaml,yml,json}.
func LoadModel(dir string) (*WeightedModel, error) {
	for _, ext := range modelExts {
		path := filepath.Join(dir, "model"+ext)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read model: %w", err)
		}
		return parseModel(data, ext, path)
	}
	return nil, fmt.Errorf("no model file found in %s", dir)
}

func parseModel(data []byte, ext, path string) (*WeightedModel, error) {
	var m WeightedModel
	if err := unmarshalModel(data, ext, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("%s: model has no weights", path)
	}
	return &m, nil
}

func unmarshalModel(data []byte, ext string, m *WeightedModel) error {
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, m); err != nil {
			return fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, m); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
	}
	return nil
}

// scoreGroup applies the model to a single group and returns its labels
// reordered by ascending score (the model's preference order).
func scoreGroup(m Model, g dataset.Group) ([]float64, error) {
	scores, err := m.Score(g.X)
	if err != nil {
		return nil, fmt.Errorf("score qid %d: %w", g.QID, err)
	}
	if len(scores) != len(g.Y) {
		return nil, fmt.Errorf("score qid %d: got %d scores for %d candidates",
			g.QID, len(scores), len(g.Y))
	}
	return labelsByScore(g.Y, scores), nil
}

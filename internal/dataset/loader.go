package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dataset bundles the two splits of a prepared ranking dataset.
type Dataset struct {
	Train *Split
	Test  *Split
}

// splitExts are the recognised file extensions, in probe order.
var splitExts = []string{".yaml", ".yml", ".json"}

// LoadSplit reads a split file (YAML or JSON) and validates it.
// Format is detected by extension, or by content when the extension is unknown.
func LoadSplit(path string) (*Split, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read split: %w", err)
	}
	s, err := ParseSplit(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseSplit parses split data. ext is the file extension for a format hint;
// empty = detect from content (JSON if the first non-space char is '{').
func ParseSplit(data []byte, ext string) (*Split, error) {
	var s Split
	if err := unmarshalByExt(data, ext, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func unmarshalByExt(data []byte, ext string, v any) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
		return nil
	case ".json":
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse json: %w", err)
		}
		return nil
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse json: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

// LoadDir loads train and test splits from dir (train.yaml/.yml/.json and
// the test counterpart) and verifies qid disjointness between them.
func LoadDir(dir string) (*Dataset, error) {
	train, err := loadNamed(dir, "train")
	if err != nil {
		return nil, err
	}
	test, err := loadNamed(dir, "test")
	if err != nil {
		return nil, err
	}
	if err := CheckDisjoint(train, test); err != nil {
		return nil, err
	}
	return &Dataset{Train: train, Test: test}, nil
}

func loadNamed(dir, name string) (*Split, error) {
	for _, ext := range splitExts {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return LoadSplit(path)
		}
	}
	return nil, fmt.Errorf("no %s split found in %s (tried %s)", name, dir, strings.Join(splitExts, ", "))
}

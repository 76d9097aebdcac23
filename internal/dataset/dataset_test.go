package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func validSplit() *Split {
	return &Split{
		X:         [][]float64{{1, 0}, {0, 1}, {1, 1}, {2, 0}},
		Y:         []float64{0.9, 0.5, 0.7, 0.4},
		YBaseline: []float64{0.6, 0.6, 0.6, 0.5},
		QID:       []int{7, 7, 7, 3},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Split)
		wantErr string
	}{
		{"valid", func(s *Split) {}, ""},
		{"empty", func(s *Split) { *s = Split{} }, ""},
		{"short y", func(s *Split) { s.Y = s.Y[:2] }, "misaligned"},
		{"short baseline", func(s *Split) { s.YBaseline = s.YBaseline[:1] }, "misaligned"},
		{"non-contiguous qid", func(s *Split) { s.QID = []int{7, 3, 7, 3} }, "not contiguous"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSplit()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGroupsSortedByQID(t *testing.T) {
	groups := validSplit().Groups()
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	// qid 3 sorts before qid 7 even though it appears later in the file
	if groups[0].QID != 3 || groups[1].QID != 7 {
		t.Errorf("group order = [%d %d], want [3 7]", groups[0].QID, groups[1].QID)
	}
	want := Group{QID: 7, X: [][]float64{{1, 0}, {0, 1}, {1, 1}}, Y: []float64{0.9, 0.5, 0.7}, Baseline: 0.6}
	if diff := cmp.Diff(want, groups[1]); diff != "" {
		t.Errorf("group 7 mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupsEmptySplit(t *testing.T) {
	if got := (&Split{}).Groups(); got != nil {
		t.Errorf("empty split should yield no groups, got %v", got)
	}
}

func TestCheckDisjoint(t *testing.T) {
	train := &Split{QID: []int{1, 1, 2}}
	tests := []struct {
		name    string
		testIDs []int
		wantErr bool
	}{
		{"disjoint", []int{3, 3, 4}, false},
		{"both empty", nil, false},
		{"overlap", []int{2, 2, 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDisjoint(train, &Split{QID: tt.testIDs})
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckDisjoint() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseSplitFormats(t *testing.T) {
	yamlData := []byte("x:\n  - [1, 0]\ny: [0.9]\ny_baseline: [0.6]\nqid: [7]\n")
	jsonData := []byte(`{"x": [[1, 0]], "y": [0.9], "y_baseline": [0.6], "qid": [7]}`)

	tests := []struct {
		name string
		data []byte
		ext  string
	}{
		{"yaml by ext", yamlData, ".yaml"},
		{"json by ext", jsonData, ".json"},
		{"json detected", jsonData, ""},
		{"yaml detected", yamlData, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSplit(tt.data, tt.ext)
			if err != nil {
				t.Fatalf("ParseSplit: %v", err)
			}
			if s.Len() != 1 || s.QID[0] != 7 || s.Y[0] != 0.9 {
				t.Errorf("unexpected split: %+v", s)
			}
		})
	}
}

func TestParseSplitRejectsInvalid(t *testing.T) {
	_, err := ParseSplit([]byte("x: [[1]]\ny: [0.9, 0.5]\ny_baseline: [0.6]\nqid: [7]\n"), ".yaml")
	if err == nil {
		t.Fatal("misaligned split should fail to parse")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "train.yaml"),
		"x:\n  - [1]\n  - [2]\ny: [0.9, 0.5]\ny_baseline: [0.6, 0.6]\nqid: [1, 1]\n")
	writeFile(t, filepath.Join(dir, "test.json"),
		`{"x": [[3]], "y": [0.7], "y_baseline": [0.8], "qid": [9]}`)

	ds, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if ds.Train.Len() != 2 || ds.Test.Len() != 1 {
		t.Errorf("split sizes = %d/%d, want 2/1", ds.Train.Len(), ds.Test.Len())
	}
}

func TestLoadDirRejectsOverlap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "train.yaml"),
		"x:\n  - [1]\ny: [0.9]\ny_baseline: [0.6]\nqid: [1]\n")
	writeFile(t, filepath.Join(dir, "test.yaml"),
		"x:\n  - [2]\ny: [0.5]\ny_baseline: [0.6]\nqid: [1]\n")

	if _, err := LoadDir(dir); err == nil || !strings.Contains(err.Error(), "overlap") {
		t.Fatalf("LoadDir = %v, want qid overlap error", err)
	}
}

func TestLoadDirMissingSplit(t *testing.T) {
	if _, err := LoadDir(t.TempDir()); err == nil {
		t.Fatal("empty dir should fail")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

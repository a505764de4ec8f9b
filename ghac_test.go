package phrasecluster

import (
	"testing"
)

// blockMatrix returns a 4x4 matrix where documents {0,1} and {2,3} form blocks.
func blockMatrix(t *testing.T, cross float32) *SimilarityMatrix {
	t.Helper()
	m, err := NewSimilarityMatrixFromRows([][]float32{
		{1},
		{0.9, 1},
		{cross, cross, 1},
		{cross, cross, 0.8, 1},
	}, FullPrecision)
	if err != nil {
		t.Fatalf("NewSimilarityMatrixFromRows() error = %v", err)
	}
	return m
}

func TestGHAC(t *testing.T) {
	tests := []struct {
		name  string
		cross float32
		want  string
	}{
		{name: "separate blocks", cross: 0, want: "[[0 1] [2 3]]"},
		{name: "negative cross similarity", cross: -0.5, want: "[[0 1] [2 3]]"},
		{name: "weak link joins all", cross: 0.1, want: "[[0 1 2 3]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, iterations := GHAC(blockMatrix(t, tt.cross), 0)
			if s := setsString(t, got); s != tt.want {
				t.Errorf("GHAC() = %s, want %s", s, tt.want)
			}
			if iterations < 1 {
				t.Errorf("iterations = %d", iterations)
			}
		})
	}
}

func TestGHACIterationBound(t *testing.T) {
	got, iterations := GHAC(blockMatrix(t, 0.1), 1)
	if iterations != 1 {
		t.Errorf("iterations = %d, want 1", iterations)
	}
	// only the closest pair merged
	if s := setsString(t, got); s != "[[2] [3] [0 1]]" {
		t.Errorf("GHAC() = %s", s)
	}
}

func TestGHACEmpty(t *testing.T) {
	m, _ := NewSimilarityMatrixFromRows(nil, FullPrecision)
	if got, iterations := GHAC(m, 0); got != nil || iterations != 0 {
		t.Errorf("GHAC(empty) = %v, %d", got, iterations)
	}
}

package phrasecluster

import (
	"context"
	"math"
	"testing"
)

func TestSimilarityMatrix(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{1, 1, 0},
		{0, 0, 1},
	}

	for _, precision := range []MatrixPrecision{FullPrecision, HalfPrecision} {
		t.Run(string(precision), func(t *testing.T) {
			m, err := NewSimilarityMatrix(vectors, Cosine, precision)
			if err != nil {
				t.Fatalf("NewSimilarityMatrix() error = %v", err)
			}
			if m.Size() != 3 || m.Kind() != Cosine || m.Precision() != precision {
				t.Fatalf("matrix = size %d kind %q precision %q", m.Size(), m.Kind(), m.Precision())
			}

			// float16 keeps about three decimal digits
			tol := 1e-6
			if precision == HalfPrecision {
				tol = 1e-3
			}
			want := [][]float64{
				{1, 1 / math.Sqrt2, 0},
				{1 / math.Sqrt2, 1, 0},
				{0, 0, 1},
			}
			for i := range want {
				for j := range want[i] {
					if got := float64(m.At(i, j)); math.Abs(got-want[i][j]) > tol {
						t.Errorf("At(%d, %d) = %v, want %v", i, j, got, want[i][j])
					}
					if m.At(i, j) != m.At(j, i) {
						t.Errorf("At(%d, %d) != At(%d, %d)", i, j, j, i)
					}
				}
			}
		})
	}
}

func TestSimilarityMatrixErrors(t *testing.T) {
	if _, err := NewSimilarityMatrix([][]float32{{1}}, SimilarityKind("bogus"), FullPrecision); err == nil {
		t.Error("unknown kind accepted")
	}
	if _, err := NewSimilarityMatrix([][]float32{{1}}, Cosine, MatrixPrecision("int8")); err == nil {
		t.Error("unknown precision accepted")
	}
	if _, err := NewSimilarityMatrix([][]float32{{1, 2}, {1}}, Cosine, FullPrecision); err == nil {
		t.Error("ragged vectors accepted")
	}
	if _, err := NewSimilarityMatrixFromRows([][]float32{{1}, {0.5}}, FullPrecision); err == nil {
		t.Error("short row accepted")
	}
}

func TestSimilarityMatrixFromRows(t *testing.T) {
	m, err := NewSimilarityMatrixFromRows([][]float32{
		{1},
		{0.25, 1},
		{0.5, 0.75, 1},
	}, HalfPrecision)
	if err != nil {
		t.Fatalf("NewSimilarityMatrixFromRows() error = %v", err)
	}
	// quarters are exact in float16
	if m.At(0, 2) != 0.5 || m.At(1, 2) != 0.75 || m.At(1, 0) != 0.25 {
		t.Errorf("unexpected cells: %v %v %v", m.At(0, 2), m.At(1, 2), m.At(1, 0))
	}
}

func TestPhraseVectors(t *testing.T) {
	tree := buildTree(t, [][]Symbol{{1, 2, 3}, {1, 2, 4}, {5}})
	idx, err := tree.Index(context.Background())
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	vecs := PhraseVectors(idx, 3)
	if len(vecs) != 3 {
		t.Fatalf("got %d vectors, want 3", len(vecs))
	}
	for d, v := range vecs {
		if len(v) != idx.Len() {
			t.Fatalf("vector %d has %d dimensions, want %d", d, len(v), idx.Len())
		}
	}
	// document 2 shares nothing
	for j, w := range vecs[2] {
		if w != 0 {
			t.Errorf("vecs[2][%d] = %v, want 0", j, w)
		}
	}
	for j := range vecs[0] {
		if vecs[0][j] == 0 || vecs[0][j] != vecs[1][j] {
			t.Errorf("dimension %d: %v vs %v", j, vecs[0][j], vecs[1][j])
		}
	}
}

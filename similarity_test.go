package phrasecluster

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-5

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestNewSimilarity(t *testing.T) {
	tests := []struct {
		kind    SimilarityKind
		wantErr bool
	}{
		{Cosine, false},
		{Euclidean, false},
		{Correlation, false},
		{SimilarityKind("manhattan"), true},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			sim, err := NewSimilarity(tt.kind)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownSimilarityKind) {
					t.Errorf("NewSimilarity(%q) error = %v, want ErrUnknownSimilarityKind", tt.kind, err)
				}
				if !IsConfigurationError(err) {
					t.Error("unknown kind should be a configuration error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSimilarity(%q) error = %v", tt.kind, err)
			}
			if sim.Kind() != tt.kind {
				t.Errorf("Kind() = %q, want %q", sim.Kind(), tt.kind)
			}
		})
	}
}

func TestSimilarityCalculate(t *testing.T) {
	tests := []struct {
		name string
		kind SimilarityKind
		a, b []float32
		want float32
	}{
		{name: "cosine identical", kind: Cosine, a: []float32{1, 2, 3}, b: []float32{2, 4, 6}, want: 1},
		{name: "cosine orthogonal", kind: Cosine, a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "cosine zero vector", kind: Cosine, a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
		{name: "cosine 45 degrees", kind: Cosine, a: []float32{1, 0}, b: []float32{1, 1}, want: float32(1 / math.Sqrt2)},
		{name: "euclidean identical", kind: Euclidean, a: []float32{1, 2}, b: []float32{1, 2}, want: 1},
		{name: "euclidean 3-4-5", kind: Euclidean, a: []float32{0, 0}, b: []float32{3, 4}, want: 1.0 / 6},
		{name: "correlation perfect", kind: Correlation, a: []float32{1, 2, 3}, b: []float32{2, 4, 6}, want: 0},
		{name: "correlation inverse", kind: Correlation, a: []float32{1, 2, 3}, b: []float32{3, 2, 1}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, _ := NewSimilarity(tt.kind)
			if got := sim.Calculate(tt.a, tt.b); !approxEqual(got, tt.want) {
				t.Errorf("Calculate(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCorrelationConstantVector(t *testing.T) {
	sim, _ := NewSimilarity(Correlation)
	if got := sim.Calculate([]float32{1, 1, 1}, []float32{1, 2, 3}); !math.IsNaN(float64(got)) {
		t.Errorf("Calculate() = %v, want NaN", got)
	}
}

func TestTFIDFWeight(t *testing.T) {
	tests := []struct {
		name            string
		tf, df, numDocs int
		want            float32
	}{
		{name: "single occurrence", tf: 1, df: 1, numDocs: 1, want: float32(math.Log(2))},
		{name: "repeated term", tf: 3, df: 2, numDocs: 4, want: float32((1 + math.Log(3)) * math.Log(3))},
		{name: "absent", tf: 0, df: 2, numDocs: 4, want: 0},
		{name: "no documents", tf: 1, df: 0, numDocs: 4, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TFIDFWeight(tt.tf, tt.df, tt.numDocs); !approxEqual(got, tt.want) {
				t.Errorf("TFIDFWeight(%d, %d, %d) = %v, want %v", tt.tf, tt.df, tt.numDocs, got, tt.want)
			}
		})
	}
}

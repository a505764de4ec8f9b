package phrasecluster

import (
	"context"
	"testing"
)

func TestPhraseWeight(t *testing.T) {
	tests := []struct {
		length int
		want   float64
	}{
		{1, 0.5},
		{2, 2},
		{3, 3},
		{6, 6},
		{7, 10},
		{50, 10},
	}
	for _, tt := range tests {
		if got := PhraseWeight(tt.length); got != tt.want {
			t.Errorf("PhraseWeight(%d) = %v, want %v", tt.length, got, tt.want)
		}
	}
}

func TestPhraseScoreFormula(t *testing.T) {
	tests := []struct {
		name  string
		docs  [][]Symbol
		label []Symbol
		want  float64
	}{
		{
			name:  "length 1",
			docs:  [][]Symbol{{1, 2}, {1, 3}, {4, 1}},
			label: []Symbol{1},
			want:  3 * 0.5,
		},
		{
			name:  "length 2 with repeats",
			docs:  [][]Symbol{{1, 2, 1, 2}, {1, 2, 3}},
			label: []Symbol{1, 2},
			want:  3 * 2,
		},
		{
			name:  "length 6",
			docs:  [][]Symbol{{1, 2, 3, 4, 5, 6, 9}, {1, 2, 3, 4, 5, 6, 8}},
			label: []Symbol{1, 2, 3, 4, 5, 6},
			want:  2 * 6,
		},
		{
			name:  "length 8",
			docs:  [][]Symbol{{1, 2, 3, 4, 5, 6, 7, 8, 9}, {0, 1, 2, 3, 4, 5, 6, 7, 8}},
			label: []Symbol{1, 2, 3, 4, 5, 6, 7, 8},
			want:  2 * 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := buildTree(t, tt.docs)
			idx, err := tree.Index(context.Background())
			if err != nil {
				t.Fatalf("Index() error = %v", err)
			}
			p, ok := phraseByLabel(tree, idx, tt.label...)
			if !ok {
				t.Fatalf("no phrase for %v", tt.label)
			}
			if p.Score != tt.want {
				t.Errorf("score = %v, want %v", p.Score, tt.want)
			}
			if p.Score != float64(p.Total)*PhraseWeight(p.Length) {
				t.Errorf("score %v is not total %d times weight", p.Score, p.Total)
			}
		})
	}
}

func TestPhraseIndexAccessors(t *testing.T) {
	tree := buildTree(t, [][]Symbol{{1, 2, 3}, {1, 2, 4}, {2, 3}})
	idx, err := tree.Index(context.Background())
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	occ := idx.Occurrences()
	scores := idx.Scores()
	if len(occ) != idx.Len() || len(scores) != idx.Len() {
		t.Fatalf("misaligned outputs: %d tables, %d scores, %d phrases", len(occ), len(scores), idx.Len())
	}
	for i := 0; i < idx.Len(); i++ {
		p := idx.Phrase(i)
		if scores[i] != p.Score {
			t.Errorf("Scores()[%d] = %v, want %v", i, scores[i], p.Score)
		}
		if len(occ[i]) != int(p.Documents.GetCardinality()) {
			t.Errorf("Occurrences()[%d] has %d documents, bitmap %d", i, len(occ[i]), p.Documents.GetCardinality())
		}
	}
}

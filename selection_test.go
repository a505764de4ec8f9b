package phrasecluster

import (
	"context"
	"testing"
)

func selectionFixture(t *testing.T) *PhraseIndex {
	t.Helper()
	tree := buildTree(t, [][]Symbol{
		{1, 2, 3, 4},
		{1, 2, 3, 5},
		{1, 2, 6},
		{7, 1, 8},
	})
	idx, err := tree.Index(context.Background())
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	return idx
}

func TestSelectionDefaultsKeepDiscoveryOrder(t *testing.T) {
	idx := selectionFixture(t)
	got := idx.NewSelection().Execute()
	if len(got) != idx.Len() {
		t.Fatalf("Execute() returned %d clusters, want %d", len(got), idx.Len())
	}
	for i, c := range got {
		if c.Phrase != i {
			t.Errorf("cluster %d is phrase %d, want %d", i, c.Phrase, i)
		}
		if c.Documents != idx.Phrase(i).Documents {
			t.Errorf("cluster %d does not share the phrase bitmap", i)
		}
	}
}

func TestSelectionTopK(t *testing.T) {
	idx := selectionFixture(t)

	tests := []struct {
		name     string
		k        int
		minScore float64
		wantLen  int
	}{
		{name: "top 1", k: 1, wantLen: 1},
		{name: "top 2", k: 2, wantLen: 2},
		{name: "k above phrase count", k: 100, wantLen: idx.Len()},
		{name: "min score filters", k: 100, minScore: 6, wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := idx.NewSelection().WithK(tt.k).WithMinScore(tt.minScore).Execute()
			if len(got) != tt.wantLen {
				t.Fatalf("Execute() returned %d clusters, want %d", len(got), tt.wantLen)
			}
			for i := 1; i < len(got); i++ {
				if got[i-1].Score < got[i].Score {
					t.Errorf("clusters not ranked: %v before %v", got[i-1].Score, got[i].Score)
				}
			}
			for _, c := range got {
				if c.Score < tt.minScore {
					t.Errorf("cluster with score %v below minimum %v", c.Score, tt.minScore)
				}
			}
		})
	}
}

func TestSelectionBestPhrase(t *testing.T) {
	idx := selectionFixture(t)
	best := idx.NewSelection().WithK(1).Execute()[0]

	// "1 2 3" in two documents: 2 × 3 = 6; "1 2" in three: 3 × 2 = 6; "1" in four: 4 × 0.5 = 2.
	// Equal scores keep discovery order, and preorder reaches "1 2" before "1 2 3".
	if best.Score != 6 {
		t.Errorf("best score = %v, want 6", best.Score)
	}
}

func TestSelectionAutocut(t *testing.T) {
	idx := selectionFixture(t)
	all := idx.NewSelection().WithK(idx.Len()).Execute()
	cut := idx.NewSelection().WithK(idx.Len()).WithAutocut(1).Execute()
	if len(cut) > len(all) {
		t.Errorf("autocut grew the selection: %d > %d", len(cut), len(all))
	}
	for i := range cut {
		if cut[i].Phrase != all[i].Phrase {
			t.Errorf("autocut reordered clusters at %d", i)
		}
	}
}

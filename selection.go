package phrasecluster

import (
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// BaseCluster is the seed cluster contributed by one shared phrase: the set of
// documents containing it, ranked by the phrase score.
type BaseCluster struct {
	Phrase    int // index into the PhraseIndex
	Documents *roaring.Bitmap
	Score     float64
}

// Selection picks base clusters out of a PhraseIndex.
//
// Example:
//
//	top := phrases.NewSelection().WithK(10).Execute()
type Selection struct {
	index    *PhraseIndex
	k        int
	minScore float64
	cutoff   int
}

// NewSelection creates a selection builder. By default every phrase is selected,
// in discovery order.
func (p *PhraseIndex) NewSelection() *Selection {
	return &Selection{
		index:  p,
		cutoff: -1,
	}
}

// WithK keeps the k best scored phrases. k <= 0 keeps all of them in discovery
// order, without ranking.
func (s *Selection) WithK(k int) *Selection {
	s.k = k
	return s
}

// WithMinScore drops phrases scoring below min.
func (s *Selection) WithMinScore(min float64) *Selection {
	s.minScore = min
	return s
}

// WithAutocut cuts the ranked list at the given score-distribution extremum.
// -1 (default) disables it. Only applies together with WithK.
func (s *Selection) WithAutocut(cutoff int) *Selection {
	s.cutoff = cutoff
	return s
}

// Execute returns the selected base clusters. Document bitmaps are shared with the
// PhraseIndex and must not be modified.
func (s *Selection) Execute() []BaseCluster {
	clusters := make([]BaseCluster, 0, s.index.Len())
	for i, ph := range s.index.phrases {
		if ph.Score < s.minScore {
			continue
		}
		clusters = append(clusters, BaseCluster{Phrase: i, Documents: ph.Documents, Score: ph.Score})
	}
	if s.k <= 0 {
		return clusters
	}

	sort.SliceStable(clusters, func(a, b int) bool {
		return clusters[a].Score > clusters[b].Score
	})
	clusters = limitClusters(clusters, s.k)
	return autocutClusters(clusters, s.cutoff)
}

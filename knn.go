package phrasecluster

import (
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// DefaultNeighbors is the number of neighbors KNN votes with when k <= 0.
var DefaultNeighbors = 10

// KNN clusters documents by repeated majority vote among nearest neighbors.
//
// # K-NEAREST-NEIGHBOR REASSIGNMENT
//
// Every document starts in its own cluster. Each step visits the documents in
// order; a document moves to the cluster holding most of its k most similar
// documents. Moves take effect immediately, so later documents in the same step
// see them. Clustering stops when a full step moves nothing, or after maxIter
// steps. Empty clusters are dropped from the result.
//
// Ties:
//   - neighbors with equal similarity rank by ascending position
//   - clusters with equal votes resolve to the lowest cluster index
//   - NaN similarities rank below every number
//
// Parameters:
//   - matrix: document similarity matrix
//   - k: neighbors per vote, <= 0 means DefaultNeighbors, capped at n-1
//   - maxIter: maximum number of steps, <= 0 means DefaultMaxIterations
//
// Returns:
//   - the non-empty clusters in cluster index order
//   - the number of steps run
func KNN(matrix *SimilarityMatrix, k, maxIter int) ([]*roaring.Bitmap, int) {
	// ═══════════════════════════════════════════════════════════════════════════
	// INPUT VALIDATION
	// ═══════════════════════════════════════════════════════════════════════════
	n := matrix.Size()
	if n == 0 {
		return nil, 0
	}
	if k <= 0 {
		k = DefaultNeighbors
	}
	if k > n-1 {
		k = n - 1
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// STEP 1: NEIGHBOR LISTS
	// ═══════════════════════════════════════════════════════════════════════════
	// The matrix never changes, so every document's k nearest neighbors are fixed.
	neighbors := make([][]int, n)
	for doc := 0; doc < n; doc++ {
		neighbors[doc] = nearest(matrix, doc, k)
	}

	// assignment[doc] = cluster index; cluster i starts as {i}
	assignment := make([]int, n)
	for i := range assignment {
		assignment[i] = i
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// STEP 2: REASSIGN UNTIL STABLE
	// ═══════════════════════════════════════════════════════════════════════════
	iterations := 0
	votes := make([]int, n)
	for iterations < maxIter {
		iterations++
		moved := 0
		for doc := 0; doc < n; doc++ {
			if len(neighbors[doc]) == 0 {
				continue
			}
			for _, nb := range neighbors[doc] {
				votes[assignment[nb]]++
			}
			winner, most := -1, 0
			for _, nb := range neighbors[doc] {
				c := assignment[nb]
				if votes[c] > most || (votes[c] == most && c < winner) {
					winner, most = c, votes[c]
				}
			}
			for _, nb := range neighbors[doc] {
				votes[assignment[nb]] = 0
			}
			if winner != assignment[doc] {
				assignment[doc] = winner
				moved++
			}
		}
		if moved == 0 {
			break
		}
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// STEP 3: COLLECT NON-EMPTY CLUSTERS
	// ═══════════════════════════════════════════════════════════════════════════
	members := make([]*roaring.Bitmap, n)
	for doc, c := range assignment {
		if members[c] == nil {
			members[c] = roaring.New()
		}
		members[c].Add(uint32(doc))
	}
	clusters := make([]*roaring.Bitmap, 0, n)
	for _, m := range members {
		if m != nil {
			clusters = append(clusters, m)
		}
	}
	return clusters, iterations
}

// nearest returns the k documents most similar to doc, excluding doc itself.
func nearest(matrix *SimilarityMatrix, doc, k int) []int {
	others := make([]int, 0, matrix.Size()-1)
	for i := 0; i < matrix.Size(); i++ {
		if i != doc {
			others = append(others, i)
		}
	}
	key := func(i int) float64 {
		v := float64(matrix.At(doc, i))
		if math.IsNaN(v) {
			return math.Inf(-1)
		}
		return v
	}
	sort.SliceStable(others, func(a, b int) bool {
		return key(others[a]) > key(others[b])
	})
	return others[:k]
}

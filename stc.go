package phrasecluster

import (
	"github.com/RoaringBitmap/roaring"
)

var (
	// DefaultMergeThreshold is the Jaccard overlap above which two base clusters merge.
	DefaultMergeThreshold = 0.5

	// DefaultMaxIterations bounds the iterative clustering algorithms.
	DefaultMaxIterations = 10000
)

// MergeBaseClusters runs the merge phase of suffix tree clustering.
//
// # SUFFIX TREE CLUSTERING MERGE
//
// Every base cluster is the document set of one shared phrase. Two clusters are
// connected when the Jaccard overlap of their document sets exceeds threshold.
// Each step replaces the clusters by the unions of the connected components of
// that graph; steps repeat until the cluster count stops shrinking.
//
// Parameters:
//   - base: base clusters, usually from PhraseIndex.NewSelection
//   - threshold: Jaccard overlap needed to connect two clusters (typical: 0.5)
//   - maxIter: iteration bound, <= 0 means DefaultMaxIterations
//
// Returns:
//   - the final clusters; input bitmaps are not modified
//   - the number of steps run
func MergeBaseClusters(base []BaseCluster, threshold float64, maxIter int) ([]*roaring.Bitmap, int) {
	if len(base) == 0 {
		return nil, 0
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	clusters := make([]*roaring.Bitmap, len(base))
	for i, b := range base {
		clusters[i] = b.Documents.Clone()
	}

	iterations := 0
	for iterations < maxIter {
		iterations++
		merged := mergeConnected(clusters, threshold)
		shrunk := len(merged) < len(clusters)
		clusters = merged
		if !shrunk {
			break
		}
	}
	return clusters, iterations
}

// mergeConnected performs one merge step: connected components over the
// "overlap above threshold" graph, each component unioned into one cluster.
// Components come out in order of their first member.
func mergeConnected(clusters []*roaring.Bitmap, threshold float64) []*roaring.Bitmap {
	n := len(clusters)
	adjacent := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if Jaccard(clusters[i], clusters[j]) > threshold {
				adjacent[i] = append(adjacent[i], j)
				adjacent[j] = append(adjacent[j], i)
			}
		}
	}

	marked := make([]bool, n)
	var out []*roaring.Bitmap
	for i := 0; i < n; i++ {
		if marked[i] {
			continue
		}
		component := clusters[i].Clone()
		marked[i] = true
		stack := []int{i}
		for len(stack) > 0 {
			c := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, next := range adjacent[c] {
				if !marked[next] {
					marked[next] = true
					component.Or(clusters[next])
					stack = append(stack, next)
				}
			}
		}
		out = append(out, component)
	}
	return out
}

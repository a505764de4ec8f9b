package phrasecluster

import (
	"github.com/RoaringBitmap/roaring"
)

// GHAC performs greedy hierarchical agglomerative clustering with average linkage.
//
// # AVERAGE-LINK AGGLOMERATION
//
// Every document starts in its own cluster. Each step finds the pair of clusters
// with the highest average pairwise similarity and merges them. Clustering stops
// when no pair has a strictly positive average similarity, or after maxIter steps.
//
// The average similarity of clusters A and B is
//
//	sum(sim(a, b) for a in A, b in B) / (|A| × |B|)
//
// Pairwise sums are kept per cluster pair, so a merge costs O(c) to update and a
// step O(c²) to scan, c being the current number of clusters.
//
// NaN similarities (Correlation over constant vectors) never win a comparison,
// so clusters involving them are not merged.
//
// Parameters:
//   - matrix: document similarity matrix
//   - maxIter: maximum number of merge steps, <= 0 means DefaultMaxIterations
//
// Returns:
//   - the final clusters of document positions
//   - the number of steps run
func GHAC(matrix *SimilarityMatrix, maxIter int) ([]*roaring.Bitmap, int) {
	// ═══════════════════════════════════════════════════════════════════════════
	// INPUT VALIDATION
	// ═══════════════════════════════════════════════════════════════════════════
	n := matrix.Size()
	if n == 0 {
		return nil, 0
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// STEP 1: SINGLETON CLUSTERS
	// ═══════════════════════════════════════════════════════════════════════════
	clusters := singletons(n)
	sums := make([][]float64, n)
	for i := range sums {
		sums[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if i != j {
				sums[i][j] = float64(matrix.At(i, j))
			}
		}
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// STEP 2: MERGE THE MOST SIMILAR PAIR UNTIL NONE IS POSITIVE
	// ═══════════════════════════════════════════════════════════════════════════
	iterations := 0
	for iterations < maxIter {
		iterations++

		best := 0.0
		m1, m2 := -1, -1
		for i := range clusters {
			sizeI := float64(clusters[i].GetCardinality())
			for j := i + 1; j < len(clusters); j++ {
				avg := sums[i][j] / (sizeI * float64(clusters[j].GetCardinality()))
				if avg > best {
					best = avg
					m1, m2 = i, j
				}
			}
		}
		if m1 < 0 {
			break
		}

		clusters, sums = mergePair(clusters, sums, m1, m2)
	}
	return clusters, iterations
}

// mergePair removes clusters m1 < m2 and appends their union, carrying the pairwise
// similarity sums along.
func mergePair(clusters []*roaring.Bitmap, sums [][]float64, m1, m2 int) ([]*roaring.Bitmap, [][]float64) {
	merged := roaring.Or(clusters[m1], clusters[m2])

	keep := make([]int, 0, len(clusters)-1)
	for i := range clusters {
		if i != m1 && i != m2 {
			keep = append(keep, i)
		}
	}

	nextClusters := make([]*roaring.Bitmap, 0, len(keep)+1)
	nextSums := make([][]float64, len(keep)+1)
	last := len(keep)
	nextSums[last] = make([]float64, len(keep)+1)
	for a, i := range keep {
		nextClusters = append(nextClusters, clusters[i])
		row := make([]float64, len(keep)+1)
		for b, j := range keep {
			row[b] = sums[i][j]
		}
		row[last] = sums[i][m1] + sums[i][m2]
		nextSums[last][a] = row[last]
		nextSums[a] = row
	}
	nextClusters = append(nextClusters, merged)
	return nextClusters, nextSums
}

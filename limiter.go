package phrasecluster

// sanitizeK ensures k is within valid bounds [1, maxResults].
//
// If k is <= 0 or exceeds maxResults, it returns maxResults.
//
// Usage:
//
//	k := sanitizeK(requestedK, len(clusters))
//	return clusters[:k]
func sanitizeK(k, maxResults int) int {
	if k <= 0 || k > maxResults {
		return maxResults
	}
	return k
}

// limitClusters applies k-limiting to a cluster slice.
func limitClusters(clusters []BaseCluster, k int) []BaseCluster {
	k = sanitizeK(k, len(clusters))
	return clusters[:k]
}

// autocutClusters cuts score-sorted clusters at the first natural break in their
// score distribution. A cutoff of -1 disables the cut.
//
// Usage:
//
//	return autocutClusters(clusters, 1)  // cut at the first extremum
//	return autocutClusters(clusters, -1) // no-op
func autocutClusters(clusters []BaseCluster, cutoff int) []BaseCluster {
	if cutoff == -1 || len(clusters) == 0 {
		return clusters
	}

	scores := make([]float64, len(clusters))
	for i, c := range clusters {
		scores[i] = c.Score
	}
	return clusters[:Autocut(scores, cutoff)]
}

// Autocut determines optimal cutoff point in a score distribution.
//
// It compares the normalized scores against an ideal linear distribution and
// returns the index before the Nth local maximum of the difference, where N is
// cutOff. Flat distributions are never cut.
//
// Parameters:
//   - yValues: scores, sorted
//   - cutOff: number of extrema to encounter before cutting
//
// Returns the index at which to cut.
func Autocut(yValues []float64, cutOff int) int {
	if len(yValues) <= 1 {
		return len(yValues)
	}
	span := yValues[len(yValues)-1] - yValues[0]
	if span == 0 {
		return len(yValues)
	}

	diff := make([]float64, len(yValues))
	step := 1. / (float64(len(yValues)) - 1.)

	for i := range yValues {
		xValue := float64(i) * step
		yValueNorm := (yValues[i] - yValues[0]) / span
		diff[i] = yValueNorm - xValue
	}

	extremaCount := 0
	for i := range diff {
		if i == 0 {
			continue // we want the index _before_ the extrema
		}

		if i == len(diff)-1 {
			if len(diff) > 2 && diff[i] > diff[i-1] && diff[i] > diff[i-2] {
				extremaCount++
				if extremaCount >= cutOff {
					return i
				}
			}
		} else if diff[i] > diff[i-1] && diff[i] > diff[i+1] {
			extremaCount++
			if extremaCount >= cutOff {
				return i
			}
		}
	}
	return len(yValues)
}

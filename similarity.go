package phrasecluster

import (
	"errors"
	"math"
)

// ErrUnknownSimilarityKind is returned when an unknown similarity kind is provided to NewSimilarity.
var ErrUnknownSimilarityKind = errors.New("unknown similarity kind")

// SimilarityKind names a document similarity measure over term-weight vectors.
// Higher values mean more similar for every kind except Correlation, which is
// reported as a dissimilarity (1 - r), the way the clustering experiments used it.
type SimilarityKind string

const (
	// Cosine similarity: dot(a,b) / (||a|| * ||b||), 0 when either vector is zero.
	Cosine SimilarityKind = "cosine"

	// Euclidean similarity: 1 / (1 + ||a - b||).
	// Range: (0, 1] where 1 = identical vectors.
	Euclidean SimilarityKind = "euclidean"

	// Correlation: 1 - Pearson r. NaN when either vector is constant.
	Correlation SimilarityKind = "correlation"
)

// Singleton instances of similarity strategies.
// These are stateless and can be safely reused across goroutines.
var (
	cosineSimilarityImpl      = cosine{}
	euclideanSimilarityImpl   = euclidean{}
	correlationSimilarityImpl = correlation{}
)

// Similarity computes the similarity of two equally sized vectors.
type Similarity interface {
	Calculate(a, b []float32) float32
	Kind() SimilarityKind
}

// NewSimilarity returns the singleton Similarity for kind.
// Returns ErrUnknownSimilarityKind if the kind is not recognized.
//
// Example:
//
//	sim, err := NewSimilarity(Cosine)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	s := sim.Calculate([]float32{1, 0}, []float32{1, 1})
func NewSimilarity(kind SimilarityKind) (Similarity, error) {
	switch kind {
	case Cosine:
		return cosineSimilarityImpl, nil
	case Euclidean:
		return euclideanSimilarityImpl, nil
	case Correlation:
		return correlationSimilarityImpl, nil
	default:
		return nil, ErrUnknownSimilarityKind
	}
}

// cosine implements Similarity using the cosine of the angle between vectors.
type cosine struct{}

func (cosine) Kind() SimilarityKind { return Cosine }

// Calculate computes dot(a,b) / (||a|| * ||b||).
// Time complexity: O(n) where n is the vector dimension
func (cosine) Calculate(a, b []float32) float32 {
	var sumXY, sumX2, sumY2 float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		sumXY += x * y
		sumX2 += x * x
		sumY2 += y * y
	}
	if sumX2 == 0 || sumY2 == 0 {
		return 0
	}
	return float32(sumXY / math.Sqrt(sumX2*sumY2))
}

// euclidean implements Similarity as an inverse of the L2 distance.
type euclidean struct{}

func (euclidean) Kind() SimilarityKind { return Euclidean }

func (euclidean) Calculate(a, b []float32) float32 {
	var sum float64
	for i := range a {
		diff := float64(a[i] - b[i])
		sum += diff * diff
	}
	return float32(1 / (1 + math.Sqrt(sum)))
}

// correlation implements Similarity as 1 - Pearson correlation.
type correlation struct{}

func (correlation) Kind() SimilarityKind { return Correlation }

func (correlation) Calculate(a, b []float32) float32 {
	if len(a) == 0 {
		return float32(math.NaN())
	}
	var sumX, sumY float64
	for i := range a {
		sumX += float64(a[i])
		sumY += float64(b[i])
	}
	meanX := sumX / float64(len(a))
	meanY := sumY / float64(len(b))

	var sumXY, sumX2, sumY2 float64
	for i := range a {
		x, y := float64(a[i])-meanX, float64(b[i])-meanY
		sumXY += x * y
		sumX2 += x * x
		sumY2 += y * y
	}
	if sumX2 == 0 || sumY2 == 0 {
		return float32(math.NaN())
	}
	return float32(1 - sumXY/math.Sqrt(sumX2*sumY2))
}

// TFIDFWeight weighs a term seen tf times in a document and in df of numDocs
// documents: (1 + ln tf) * ln(1 + numDocs/df). Zero when tf or df is zero.
func TFIDFWeight(tf, df, numDocs int) float32 {
	if tf <= 0 || df <= 0 {
		return 0
	}
	return float32((1 + math.Log(float64(tf))) * math.Log(1+float64(numDocs)/float64(df)))
}

// PhraseVectors returns one vector per document position, one dimension per shared
// phrase, weighted by tf-idf of the phrase's occurrence count. Phrase occurrence
// tables are keyed by document id; ids at or above numDocs are ignored.
func PhraseVectors(phrases *PhraseIndex, numDocs int) [][]float32 {
	vecs := make([][]float32, numDocs)
	for i := range vecs {
		vecs[i] = make([]float32, phrases.Len())
	}
	for j, ph := range phrases.phrases {
		df := len(ph.Occurrences)
		for doc, tf := range ph.Occurrences {
			if int(doc) >= numDocs {
				continue
			}
			vecs[doc][j] = TFIDFWeight(tf, df, numDocs)
		}
	}
	return vecs
}

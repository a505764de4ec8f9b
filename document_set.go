package phrasecluster

import (
	"github.com/RoaringBitmap/roaring"
)

// NewDocumentSet creates a document set from a list of document ids.
func NewDocumentSet(documentIDs ...uint32) *roaring.Bitmap {
	return roaring.BitmapOf(documentIDs...)
}

// Jaccard returns |a ∩ b| / |a ∪ b|, 0 when both sets are empty.
func Jaccard(a, b *roaring.Bitmap) float64 {
	union := a.OrCardinality(b)
	if union == 0 {
		return 0
	}
	return float64(a.AndCardinality(b)) / float64(union)
}

// singletons returns one cluster per document position 0..n-1.
func singletons(n int) []*roaring.Bitmap {
	out := make([]*roaring.Bitmap, n)
	for i := range out {
		out[i] = roaring.BitmapOf(uint32(i))
	}
	return out
}

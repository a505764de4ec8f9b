package phrasecluster

import (
	"github.com/RoaringBitmap/roaring"
)

// TermIndex keeps word-level statistics of a corpus: which documents contain each
// word and how often. It backs the word-based similarity matrix, next to the
// phrase-based one built from the suffix tree.
//
// Documents are addressed by position (0..N-1). A TermIndex is not safe for
// concurrent mutation.
type TermIndex struct {
	// inverted index: term -> document positions
	postings map[Symbol]*roaring.Bitmap
	// term frequencies: term -> document -> tf
	tf map[Symbol]map[uint32]int
	// number of documents seen
	numDocs int
}

// NewTermIndex creates an empty term index.
func NewTermIndex() *TermIndex {
	return &TermIndex{
		postings: make(map[Symbol]*roaring.Bitmap),
		tf:       make(map[Symbol]map[uint32]int),
	}
}

// Add records the words of document doc. Terminators are ignored.
func (ix *TermIndex) Add(doc uint32, symbols []Symbol) {
	if int(doc)+1 > ix.numDocs {
		ix.numDocs = int(doc) + 1
	}
	for _, s := range symbols {
		if s.IsTerminator() {
			continue
		}
		// bitmap
		if ix.postings[s] == nil {
			ix.postings[s] = roaring.New()
		}
		ix.postings[s].Add(doc)
		// tf
		if ix.tf[s] == nil {
			ix.tf[s] = make(map[uint32]int)
		}
		ix.tf[s][doc]++
	}
}

// DocumentCount returns one past the highest document position added.
func (ix *TermIndex) DocumentCount() int {
	return ix.numDocs
}

// TermCount returns the number of distinct words.
func (ix *TermIndex) TermCount() int {
	return len(ix.postings)
}

// DocumentFrequency returns the number of documents containing s.
func (ix *TermIndex) DocumentFrequency(s Symbol) int {
	if b := ix.postings[s]; b != nil {
		return int(b.GetCardinality())
	}
	return 0
}

// TermFrequency returns how often s occurs in document doc.
func (ix *TermIndex) TermFrequency(s Symbol, doc uint32) int {
	return ix.tf[s][doc]
}

// Vectors returns one tf-idf vector per document, one dimension per word code
// below vocabulary.
func (ix *TermIndex) Vectors(vocabulary int) [][]float32 {
	vecs := make([][]float32, ix.numDocs)
	for i := range vecs {
		vecs[i] = make([]float32, vocabulary)
	}
	for term, docs := range ix.tf {
		if int(term) >= vocabulary {
			continue
		}
		df := len(docs)
		for doc, tf := range docs {
			vecs[doc][term] = TFIDFWeight(tf, df, ix.numDocs)
		}
	}
	return vecs
}

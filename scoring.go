package phrasecluster

import (
	"github.com/RoaringBitmap/roaring"
)

// Phrase length weights. Single words are penalized, long phrases saturate.
const (
	singleWordWeight = 0.5
	longPhraseWeight = 10
	longPhraseLength = 6
)

// PhraseWeight returns the length weight of a phrase of n words:
//
//	0.5 for n == 1
//	n   for 2 <= n <= 6
//	10  for n > 6
func PhraseWeight(n int) float64 {
	switch {
	case n <= 1:
		return singleWordWeight
	case n <= longPhraseLength:
		return float64(n)
	default:
		return longPhraseWeight
	}
}

// Phrase is an internal node whose path label occurs in two or more documents.
type Phrase struct {
	Node        NodeID
	Length      int            // label length in words
	Occurrences map[uint32]int // document id -> occurrence count, nonzero only
	Total       int            // sum of Occurrences
	Score       float64        // Total * PhraseWeight(Length)
	Documents   *roaring.Bitmap
}

func newPhrase(n NodeID, length int, occurrences map[uint32]int) Phrase {
	docs := roaring.New()
	total := 0
	for id, c := range occurrences {
		docs.Add(id)
		total += c
	}
	return Phrase{
		Node:        n,
		Length:      length,
		Occurrences: occurrences,
		Total:       total,
		Score:       float64(total) * PhraseWeight(length),
		Documents:   docs,
	}
}

// PhraseIndex is the scored output of Tree.Index, in node discovery order.
// It is immutable.
type PhraseIndex struct {
	phrases []Phrase
}

// Len returns the number of shared phrases.
func (p *PhraseIndex) Len() int {
	return len(p.phrases)
}

// Phrase returns the i-th phrase.
func (p *PhraseIndex) Phrase(i int) Phrase {
	return p.phrases[i]
}

// Phrases returns all phrases in discovery order.
func (p *PhraseIndex) Phrases() []Phrase {
	return append([]Phrase(nil), p.phrases...)
}

// Occurrences returns the per-node document occurrence tables, index-aligned with
// Scores.
func (p *PhraseIndex) Occurrences() []map[uint32]int {
	out := make([]map[uint32]int, len(p.phrases))
	for i, ph := range p.phrases {
		out[i] = ph.Occurrences
	}
	return out
}

// Scores returns the phrase scores, index-aligned with Occurrences.
func (p *PhraseIndex) Scores() []float64 {
	out := make([]float64, len(p.phrases))
	for i, ph := range p.phrases {
		out[i] = ph.Score
	}
	return out
}

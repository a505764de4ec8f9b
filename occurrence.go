package phrasecluster

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Index computes, for every internal node, how often its phrase occurs in each
// document, keeps the nodes shared by at least two documents and scores them.
//
// Index runs once: the first call seals the tree and later calls return the same
// *PhraseIndex. Nodes are visited in discovery order (preorder, children by first
// symbol) and that order is kept in the result.
//
// The per-node counting is read-only and fans out over GOMAXPROCS goroutines.
// Cancelling ctx aborts the pass and leaves the tree unsealed.
//
// Time Complexity: O(internal nodes × corpus length)
//
// Thread-safety: Acquires exclusive lock
func (t *Tree) Index(ctx context.Context) (*PhraseIndex, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTreeCorrupted, t.err)
	}
	if t.index != nil {
		return t.index, nil
	}

	var candidates []NodeID
	for _, n := range t.Nodes() {
		if t.nodes[n].kind == InternalNode {
			candidates = append(candidates, n)
		}
	}

	tables := make([]map[uint32]int, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, n := range candidates {
		i, n := i, n
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tables[i] = t.occurrences(t.PathLabel(n))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("indexing occurrences: %w", err)
	}

	idx := &PhraseIndex{}
	for i, n := range candidates {
		if len(tables[i]) < 2 {
			continue
		}
		idx.phrases = append(idx.phrases, newPhrase(n, t.PathLength(n), tables[i]))
	}
	t.index = idx
	return idx, nil
}

// occurrences counts label in every document and keeps the nonzero counts,
// keyed by document id.
func (t *Tree) occurrences(label []Symbol) map[uint32]int {
	table := make(map[uint32]int)
	for i, d := range t.buf.docs {
		if c := CountOccurrences(t.buf.document(i), label); c > 0 {
			table[d.id] = c
		}
	}
	return table
}

// CountOccurrences counts needle in haystack, overlapping matches included: the
// scan resumes one position after the start of each match, so "aa" occurs twice
// in "aaa".
func CountOccurrences(haystack, needle []Symbol) int {
	n := len(needle)
	if n == 0 || n > len(haystack) {
		return 0
	}
	count := 0
	for i := 0; i+n <= len(haystack); i++ {
		if haystack[i] != needle[0] {
			continue
		}
		match := true
		for k := 1; k < n; k++ {
			if haystack[i+k] != needle[k] {
				match = false
				break
			}
		}
		if match {
			count++
		}
	}
	return count
}

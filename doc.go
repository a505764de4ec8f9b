/*
Package phrasecluster finds the phrases a collection of documents share and
clusters the documents by them.

The core is a generalized suffix tree built online with Ukkonen's algorithm over
word-coded documents. Every internal node of the tree is a phrase that repeats in
the corpus; the occurrence indexer counts it per document and the scorer weighs
it by phrase length and document coverage. Phrases shared by two or more
documents become base clusters for suffix tree clustering (STC).

# Quick Start

Build a tree over three tiny documents and list the shared phrases:

	package main

	import (
	    "context"
	    "fmt"
	    "log"

	    "github.com/wizenheimer/phrasecluster"
	)

	func main() {
	    alphabet, err := phrasecluster.NewAlphabet()
	    if err != nil {
	        log.Fatal(err)
	    }
	    tree := phrasecluster.NewTree()

	    for id, doc := range [][]string{{"x", "y"}, {"x", "y"}, {"x", "z"}} {
	        symbols, err := alphabet.Encode(doc)
	        if err != nil {
	            log.Fatal(err)
	        }
	        if err := tree.AddSequence(symbols, uint32(id)); err != nil {
	            log.Fatal(err)
	        }
	    }

	    phrases, err := tree.Index(context.Background())
	    if err != nil {
	        log.Fatal(err)
	    }
	    for _, p := range phrases.Phrases() {
	        fmt.Println(alphabet.Decode(tree.PathLabel(p.Node)), p.Score, p.Documents)
	    }
	}

# Documents and Terminators

Documents are slices of Symbol, one symbol per word. A sequence passed to
AddSequence may hold several documents separated by Terminator; they receive
consecutive ids starting at the given one. Ids must strictly increase across
calls. Inside the tree every document ends with its own sentinel, so no path
ever crosses a document boundary and two documents ending in the same words
still share an internal node.

# Phrase Scores

A phrase of n words occurring c times across the corpus scores c × w(n), where

	w(n) = 0.5   n = 1
	w(n) = n     2 <= n <= 6
	w(n) = 10    n > 6

Only phrases occurring in at least two documents are indexed. Occurrence counts
include overlapping matches: "a a" occurs twice in "a a a".

# Selecting Base Clusters

	clusters := phrases.NewSelection().
	    WithK(10).
	    WithMinScore(1).
	    WithAutocut(1).
	    Execute()

	merged, _ := phrasecluster.MergeBaseClusters(clusters, phrasecluster.DefaultMergeThreshold, 0)

# Other Algorithms

A Pipeline handles cleaning and encoding of raw text and keeps word statistics
next to the tree. Its Result yields document similarity matrices over word or
phrase tf-idf vectors, in full or half precision, for GHAC and KNN. Diagnose
compares any clustering with reference classes by F-measure, purity and entropy.

# Thread Safety

Tree methods are safe for concurrent use. Index seals the tree: later
AddSequence calls return ErrTreeSealed. An internal consistency failure during
construction poisons the tree; every later call returns ErrTreeCorrupted.
*/
package phrasecluster

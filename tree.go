package phrasecluster

import (
	"fmt"
	"sync"
)

// Tree is a generalized suffix tree over word-coded documents.
//
// Documents are added one at a time with AddSequence; each one is inserted online
// with Ukkonen's algorithm, so the whole corpus is built in amortized linear time.
// Once every document is in, Index computes which documents share each internal
// node's phrase and scores those phrases. Indexing seals the tree.
//
// Node labels are never copied: every node stores an interval into the shared
// sequence buffer and the accessors return sub-slices of it. Callers must not
// modify returned slices.
//
// AddSequence and Index are serialized by an internal lock. Read accessors are safe
// for concurrent use once the tree is sealed.
type Tree struct {
	mu sync.Mutex

	buf   sequenceBuffer
	nodes []node
	// e is the global end cursor read by open leaves.
	e int

	build *builder

	lastID  uint32
	hasDocs bool

	index *PhraseIndex
	err   error
}

// NewTree returns an empty tree holding only its root.
//
// Example:
//
//	tree := NewTree()
//	_ = tree.AddSequence([]Symbol{1, 2}, 0)
//	_ = tree.AddSequence([]Symbol{1, 3}, 1)
//	phrases, _ := tree.Index(ctx)
func NewTree() *Tree {
	t := &Tree{
		nodes: []node{{kind: RootNode, parent: NoNode}},
	}
	t.build = newBuilder(t)
	return t
}

// NodeCount returns the number of nodes, root included.
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

// DocumentCount returns the number of documents inserted so far.
func (t *Tree) DocumentCount() int {
	return len(t.buf.docs)
}

// Document returns the id and terminator-included symbols of the i-th inserted
// document. The last symbol is that document's own sentinel.
func (t *Tree) Document(i int) (uint32, []Symbol) {
	return t.buf.docs[i].id, t.buf.document(i)
}

// Len returns the total number of symbols in the buffer, terminators included.
func (t *Tree) Len() int {
	return t.buf.len()
}

// Kind returns the kind of node n.
func (t *Tree) Kind(n NodeID) NodeKind {
	return t.nodes[n].kind
}

// IsLeaf reports whether n is a leaf.
func (t *Tree) IsLeaf(n NodeID) bool {
	return t.nodes[n].kind == LeafNode
}

// IsRoot reports whether n is the root.
func (t *Tree) IsRoot(n NodeID) bool {
	return n == RootID
}

// Parent returns the parent of n, NoNode for the root.
func (t *Tree) Parent(n NodeID) NodeID {
	return t.nodes[n].parent
}

// Child returns the child of n whose edge starts with s.
func (t *Tree) Child(n NodeID, s Symbol) (NodeID, bool) {
	return t.nodes[n].children.get(s)
}

// Children returns the children of n ordered by the first symbol of their edge.
func (t *Tree) Children(n NodeID) []NodeID {
	c := t.nodes[n].children
	out := make([]NodeID, len(c))
	for i, e := range c {
		out[i] = e.node
	}
	return out
}

// Leaf returns the document and suffix a leaf stands for.
func (t *Tree) Leaf(n NodeID) (LeafInfo, bool) {
	nd := &t.nodes[n]
	if nd.kind != LeafNode {
		return LeafInfo{}, false
	}
	return LeafInfo{DocumentID: nd.documentID, SuffixIndex: nd.suffixIndex}, true
}

// pathEnd resolves an open leaf end to the global cursor.
func (t *Tree) pathEnd(n NodeID) int {
	if end := t.nodes[n].end; end != openEnd {
		return end
	}
	return t.e
}

// PathLength returns the number of symbols from the root to the end of n's label.
func (t *Tree) PathLength(n NodeID) int {
	return t.pathEnd(n) - t.nodes[n].start
}

// EdgeLength returns the length of the edge entering n.
func (t *Tree) EdgeLength(n NodeID) int {
	if n == RootID {
		return 0
	}
	return t.PathLength(n) - t.PathLength(t.nodes[n].parent)
}

// EdgeLabel returns the symbols on the edge entering n.
func (t *Tree) EdgeLabel(n NodeID) []Symbol {
	end := t.pathEnd(n)
	return t.buf.symbols[end-t.EdgeLength(n) : end]
}

// PathLabel returns the symbols spelled from the root down to n.
func (t *Tree) PathLabel(n NodeID) []Symbol {
	return t.buf.symbols[t.nodes[n].start:t.pathEnd(n)]
}

// Contains reports whether pattern occurs in some inserted document. A Terminator
// in the pattern matches the end of any document.
func (t *Tree) Contains(pattern []Symbol) bool {
	cur := RootID
	i := 0
	for i < len(pattern) {
		next, ok := t.childMatching(cur, pattern[i])
		if !ok {
			return false
		}
		for _, s := range t.EdgeLabel(next) {
			if i == len(pattern) {
				return true
			}
			if !symbolsMatch(s, pattern[i]) {
				return false
			}
			i++
		}
		cur = next
	}
	return true
}

func (t *Tree) childMatching(n NodeID, s Symbol) (NodeID, bool) {
	if s != Terminator {
		return t.Child(n, s)
	}
	// sentinels sort after every word code
	c := t.nodes[n].children
	if i := c.search(sentinelBase); i < len(c) {
		return c[i].node, true
	}
	return NoNode, false
}

func symbolsMatch(stored, pattern Symbol) bool {
	if pattern == Terminator {
		return stored.IsTerminator()
	}
	return stored == pattern
}

// Nodes returns every node handle in preorder, children visited by ascending first
// symbol. The walk uses an explicit stack so depth is bounded by memory, not the
// goroutine stack.
func (t *Tree) Nodes() []NodeID {
	out := make([]NodeID, 0, len(t.nodes))
	stack := []NodeID{RootID}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n)
		c := t.nodes[n].children
		for i := len(c) - 1; i >= 0; i-- {
			stack = append(stack, c[i].node)
		}
	}
	return out
}

// String summarizes the tree for debugging.
func (t *Tree) String() string {
	return fmt.Sprintf("Tree{documents=%d symbols=%d nodes=%d}", len(t.buf.docs), t.buf.len(), len(t.nodes))
}

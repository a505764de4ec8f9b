package phrasecluster

import "fmt"

// extension is the structural outcome of walking one suffix s[j..i+1) down the tree.
type extension uint8

const (
	// extendAtLeaf: the suffix ends exactly at an existing leaf.
	extendAtLeaf extension = iota + 1
	// newLeaf: the walk stopped at a node with no edge for the next symbol.
	newLeaf
	// edgeSplit: the last symbol diverges inside an edge.
	edgeSplit
	// insideEdge: the suffix is already present, ending inside an edge.
	insideEdge
	// atNode: the suffix is already present, ending exactly at an internal node.
	atNode
)

// showStopper reports whether the outcome ends the current phase: the suffix, and
// therefore every shorter one, is already in the tree.
func (x extension) showStopper() bool {
	return x == extendAtLeaf || x == insideEdge || x == atNode
}

// builder carries construction-only state. Nothing here is reachable through the
// Tree's read accessors.
type builder struct {
	t *Tree

	// suffixLinks[n] is the node whose path is n's path minus its first symbol.
	// Links stay valid across documents because path labels never change.
	suffixLinks []NodeID

	// open leaves of the document being inserted
	openLeaves []NodeID
}

func newBuilder(t *Tree) *builder {
	return &builder{
		t:           t,
		suffixLinks: []NodeID{NoNode},
	}
}

// AddSequence inserts a document (or several, separated by Terminator) into the tree.
//
// A missing final Terminator is appended. Each terminated piece becomes its own
// document; pieces get ids id, id+1, ... and ids must keep increasing across calls.
// Empty input is ignored.
//
// Errors:
//   - ErrAlphabetOverflow when a symbol is outside the word code space
//   - ErrDocumentOrder when id does not exceed the last id used
//   - ErrTreeSealed after Index
//   - an *InvariantError if construction reaches an impossible state; the tree is then
//     unusable and every later call fails with ErrTreeCorrupted
//
// Time Complexity: amortized O(m) for m symbols
//
// Thread-safety: Acquires exclusive lock
func (t *Tree) AddSequence(seq []Symbol, id uint32) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.err != nil {
		return fmt.Errorf("%w: %w", ErrTreeCorrupted, t.err)
	}
	if t.index != nil {
		return ErrTreeSealed
	}
	if len(seq) == 0 {
		return nil
	}
	if err := ValidateSymbols(seq); err != nil {
		return err
	}

	docs := splitDocuments(seq)
	if len(docs) == 0 {
		return nil
	}
	if t.hasDocs && id <= t.lastID {
		return fmt.Errorf("%w: got %d after %d", ErrDocumentOrder, id, t.lastID)
	}
	if last := id + uint32(len(docs)-1); last < id {
		return fmt.Errorf("%w: %d documents from id %d overflow uint32", ErrDocumentOrder, len(docs), id)
	}

	for i, doc := range docs {
		docID := id + uint32(i)
		if err := t.build.insert(doc, docID); err != nil {
			t.err = err
			return err
		}
		t.lastID = docID
		t.hasDocs = true
	}
	return nil
}

// insert runs the phases of one document. Phase i makes every suffix s[j..i+1)
// implicit in the tree; extensions j that already hold a leaf are never revisited.
func (b *builder) insert(doc []Symbol, id uint32) error {
	t := b.t
	k := t.buf.append(doc, id)
	end := t.buf.len()

	i, j := k, k
	cur := RootID
	linkJump := false
	pending := NoNode

	for ; i < end; i++ {
		t.e++

		for ; j <= i; j++ {
			created := NoNode

			// climb to the first node at or above the last position that is the root
			// or holds a suffix link
			if linkJump {
				for cur != RootID && b.suffixLinks[cur] == NoNode {
					cur = t.nodes[cur].parent
				}
			}

			var (
				out extension
				err error
			)
			if cur == RootID {
				cur, out, err = b.jumpTo(RootID, j, i+1)
			} else {
				if linkJump {
					cur = b.suffixLinks[cur]
				}
				cur, out, err = b.jumpTo(cur, j+t.PathLength(cur), i+1)
			}
			if err != nil {
				return err
			}

			switch out {
			case newLeaf:
				b.addLeaf(cur, i, j, id, j-k)
			case edgeSplit:
				created = b.split(cur, i, j)
				b.addLeaf(created, i, j, id, j-k)
				cur = created
			}

			if out.showStopper() {
				cur = t.nodes[cur].parent
				if cur == NoNode {
					return &InvariantError{Op: "extend", Node: RootID, Detail: "walked above the root"}
				}
			}

			if pending != NoNode {
				if t.nodes[cur].kind == LeafNode {
					cur = t.nodes[cur].parent
				}
				b.suffixLinks[pending] = cur
			}
			pending = created

			if out.showStopper() {
				pending = NoNode
				linkJump = false
				break
			}
			linkJump = true
		}
	}

	b.finishAddition(end)
	return nil
}

// jumpTo walks s[from..to) down from start using skip/count: only the last symbol
// of the target is compared, since everything before it is known to be present.
// It returns the node where the walk stopped and the extension rule to apply.
func (b *builder) jumpTo(start NodeID, from, to int) (NodeID, extension, error) {
	t := b.t
	if from == to {
		return start, atNode, nil
	}
	syms := t.buf.symbols

	cur := start
	for {
		if t.nodes[cur].kind == LeafNode {
			return NoNode, 0, &InvariantError{
				Op:     "descend",
				Node:   cur,
				Detail: fmt.Sprintf("walk of [%d,%d) reached a leaf", from, to),
			}
		}

		next, ok := t.nodes[cur].children.get(syms[from])
		if !ok {
			return cur, newLeaf, nil
		}

		edgeLen := t.EdgeLength(next)
		if edgeLen <= 0 {
			return NoNode, 0, &InvariantError{
				Op:     "descend",
				Node:   next,
				Detail: fmt.Sprintf("edge length %d", edgeLen),
			}
		}

		if remaining := to - from; edgeLen >= remaining {
			at := t.pathEnd(next) - edgeLen + remaining - 1
			switch {
			case syms[at] != syms[to-1]:
				return next, edgeSplit, nil
			case edgeLen > remaining:
				return next, insideEdge, nil
			case t.nodes[next].kind == LeafNode:
				return next, extendAtLeaf, nil
			default:
				return next, atNode, nil
			}
		}

		from += edgeLen
		cur = next
	}
}

// newNode appends a node to the arena.
func (b *builder) newNode(n node) NodeID {
	t := b.t
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	b.suffixLinks = append(b.suffixLinks, NoNode)
	return id
}

// addLeaf hangs an open leaf for suffix s[suffixStart..) below parent. The new edge
// starts at position pos.
func (b *builder) addLeaf(parent NodeID, pos, suffixStart int, id uint32, suffixIndex int) NodeID {
	t := b.t
	leaf := b.newNode(node{
		kind:        LeafNode,
		start:       suffixStart,
		end:         openEnd,
		parent:      parent,
		documentID:  id,
		suffixIndex: suffixIndex,
	})
	t.nodes[parent].children.put(t.buf.symbols[pos], leaf)
	b.openLeaves = append(b.openLeaves, leaf)
	return leaf
}

// split inserts an internal node with path s[suffixStart..pos) on the edge entering
// child. The child keeps its path label; only its parent changes.
func (b *builder) split(child NodeID, pos, suffixStart int) NodeID {
	t := b.t
	parent := t.nodes[child].parent
	edgeStart := t.pathEnd(child) - t.EdgeLength(child)

	middle := b.newNode(node{
		kind:   InternalNode,
		start:  suffixStart,
		end:    pos,
		parent: parent,
	})
	x := t.buf.symbols[edgeStart]
	y := t.buf.symbols[edgeStart+t.EdgeLength(middle)]

	t.nodes[parent].children.put(x, middle)
	t.nodes[middle].children.put(y, child)
	t.nodes[child].parent = middle
	return middle
}

// finishAddition closes the open leaves of the document just inserted at the buffer
// length as of its end, so later documents never stretch them.
func (b *builder) finishAddition(end int) {
	for _, leaf := range b.openLeaves {
		b.t.nodes[leaf].end = end
	}
	b.openLeaves = b.openLeaves[:0]
}

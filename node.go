package phrasecluster

import "sort"

// NodeID is a stable handle into the tree's node arena.
type NodeID int32

const (
	// RootID is the handle of the root node.
	RootID NodeID = 0
	// NoNode is the absent handle (the root's parent, a missing child).
	NoNode NodeID = -1
)

// openEnd marks a leaf whose label grows with the tree's global end cursor.
const openEnd = -1

// NodeKind tells root, internal and leaf nodes apart.
type NodeKind uint8

const (
	RootNode NodeKind = iota
	InternalNode
	LeafNode
)

func (k NodeKind) String() string {
	switch k {
	case RootNode:
		return "root"
	case InternalNode:
		return "internal"
	case LeafNode:
		return "leaf"
	default:
		return "unknown"
	}
}

// childEdge is one entry of a node's child table.
type childEdge struct {
	first Symbol
	node  NodeID
}

// childTable maps the first symbol of each outgoing edge to its child.
// Entries are kept sorted by symbol.
type childTable []childEdge

func (c childTable) search(s Symbol) int {
	return sort.Search(len(c), func(i int) bool { return c[i].first >= s })
}

func (c childTable) get(s Symbol) (NodeID, bool) {
	i := c.search(s)
	if i < len(c) && c[i].first == s {
		return c[i].node, true
	}
	return NoNode, false
}

// put inserts or replaces the child for s.
func (c *childTable) put(s Symbol, n NodeID) {
	t := *c
	i := t.search(s)
	if i < len(t) && t[i].first == s {
		t[i].node = n
		return
	}
	t = append(t, childEdge{})
	copy(t[i+1:], t[i:])
	t[i] = childEdge{first: s, node: n}
	*c = t
}

// node is an arena slot. start/end delimit the node's path label (root to node),
// not its edge label: the edge label is the path label's last EdgeLength symbols.
type node struct {
	kind     NodeKind
	start    int
	end      int
	parent   NodeID
	children childTable

	// leaf bookkeeping; split nodes record zeros
	documentID  uint32
	suffixIndex int
}

// LeafInfo identifies the suffix a leaf stands for.
type LeafInfo struct {
	DocumentID  uint32 // id given to AddSequence
	SuffixIndex int    // start offset of the suffix inside its document
}

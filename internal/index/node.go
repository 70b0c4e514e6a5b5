package index

// NodeKind tags the active member of a Node.
type NodeKind int

const (
	_ NodeKind = iota

	Leaf   // holds a row ordinal
	Branch // holds ordered children
)

// Node is one level of a nested index: either a leaf pointing at a row or
// a branch mapping keys to deeper nodes. Branch children keep the order in
// which their keys were first inserted.
type Node struct {
	Kind NodeKind
	// Row is the 0-based row ordinal of a leaf.
	Row int

	keys     []Key
	children map[Key]*Node
}

func newBranch() *Node {
	return &Node{Kind: Branch, children: map[Key]*Node{}}
}

func newLeaf(row int) *Node {
	return &Node{Kind: Leaf, Row: row}
}

// Keys returns the child keys of a branch in insertion order.
func (n *Node) Keys() []Key {
	return n.keys
}

// Child returns the node stored under k, or nil.
func (n *Node) Child(k Key) *Node {
	return n.children[k]
}

// Len returns the number of children of a branch.
func (n *Node) Len() int {
	return len(n.keys)
}

func (n *Node) insert(k Key, child *Node) {
	if !k.Valid() {
		panic("bug: inserting an invalid key")
	}

	n.keys = append(n.keys, k)
	n.children[k] = child
}
